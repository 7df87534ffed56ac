package kafka

import (
	"encoding/json"
	"time"
)

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string
}

// DealStatusMessage is a deal status-change event from the deals service
type DealStatusMessage struct {
	EventType  string    `json:"event_type"` // deal.status_changed
	DealID     string    `json:"deal_id"`
	StartupID  string    `json:"startup_id"`
	InvestorID *string   `json:"investor_id,omitempty"`
	FirmID     *string   `json:"firm_id,omitempty"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// ParseDealStatusMessage parses the message value as a deal status change
func (m *IncomingMessage) ParseDealStatusMessage() (*DealStatusMessage, error) {
	var msg DealStatusMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Package processor handles incoming deal status messages. It keeps a local
// copy of deal state and forwards terminal outcomes to the matching engine so
// match history reflects real-world results.
package processor

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	dealrepo "github.com/Ramsey-B/clover/internal/repositories/deal"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Processor handles deal status-change messages
type Processor struct {
	logger   ectologger.Logger
	dealRepo *dealrepo.Repository
	engine   *matching.Engine
	emitter  *events.Emitter
}

// NewProcessor creates a new deal message processor
func NewProcessor(logger ectologger.Logger, dealRepo *dealrepo.Repository, engine *matching.Engine, emitter *events.Emitter) *Processor {
	return &Processor{
		logger:   logger,
		dealRepo: dealRepo,
		engine:   engine,
		emitter:  emitter,
	}
}

// HandleMessage processes a single deal status-change message. It is wired as
// the consumer's MessageHandler; returning an error leaves the message
// uncommitted for redelivery.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.HandleMessage")
	defer span.End()

	dealMsg, err := msg.ParseDealStatusMessage()
	if err != nil {
		// Malformed payloads will never parse on retry; log and commit.
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"topic":  msg.Topic,
			"offset": msg.Offset,
		}).Error("Failed to parse deal status message, skipping")
		metrics.ConsumerMessages.WithLabelValues(msg.Topic, "invalid").Inc()
		return nil
	}

	if dealMsg.DealID == "" {
		p.logger.WithContext(ctx).Warn("Deal status message missing deal_id, skipping")
		metrics.ConsumerMessages.WithLabelValues(msg.Topic, "invalid").Inc()
		return nil
	}

	deal := models.Deal{
		ID:         dealMsg.DealID,
		StartupID:  dealMsg.StartupID,
		InvestorID: dealMsg.InvestorID,
		FirmID:     dealMsg.FirmID,
		Status:     dealMsg.Status,
	}

	if err := p.dealRepo.Upsert(ctx, &deal); err != nil {
		metrics.ConsumerMessages.WithLabelValues(msg.Topic, "error").Inc()
		return fmt.Errorf("failed to upsert deal %s: %w", deal.ID, err)
	}

	if err := p.engine.ProcessDealOutcome(ctx, deal); err != nil {
		metrics.ConsumerMessages.WithLabelValues(msg.Topic, "error").Inc()
		return fmt.Errorf("failed to process deal outcome %s: %w", deal.ID, err)
	}

	if deal.Status == models.DealStatusWon || deal.Status == models.DealStatusLost {
		if err := p.emitter.EmitDealFeedback(ctx, deal); err != nil {
			// Feedback is already persisted; emission failures are not
			// worth a redelivery that would reapply it.
			p.logger.WithContext(ctx).WithError(err).Warn("Failed to emit deal.feedback event")
		}
	}

	metrics.ConsumerMessages.WithLabelValues(msg.Topic, "success").Inc()
	return nil
}

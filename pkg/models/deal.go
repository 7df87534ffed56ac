package models

import (
	"time"
)

// Deal statuses the feedback propagator reacts to. Other statuses exist in
// the deals service but are ignored here.
const (
	DealStatusWon  = "won"
	DealStatusLost = "lost"
)

// Deal is a read-only trigger input from the deals service. A transition to
// won/lost feeds the match feedback propagator.
type Deal struct {
	ID         string    `json:"id" db:"id"`
	StartupID  string    `json:"startup_id" db:"startup_id"`
	InvestorID *string   `json:"investor_id,omitempty" db:"investor_id"`
	FirmID     *string   `json:"firm_id,omitempty" db:"firm_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// DealOutcomeRequest is the request to synchronously propagate a deal outcome
type DealOutcomeRequest struct {
	DealID     string  `json:"deal_id" validate:"required"`
	StartupID  string  `json:"startup_id" validate:"required"`
	InvestorID *string `json:"investor_id,omitempty"`
	FirmID     *string `json:"firm_id,omitempty"`
	Status     string  `json:"status" validate:"required,oneof=won lost"`
}

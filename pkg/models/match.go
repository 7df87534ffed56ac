package models

import (
	"time"

	"github.com/Ramsey-B/clover/pkg/database"
)

// Match statuses. Status reflects founder-recorded intent; a deal outcome
// only ever advances it (won -> converted), never downgrades it.
const (
	MatchStatusSuggested = "suggested"
	MatchStatusSaved     = "saved"
	MatchStatusContacted = "contacted"
	MatchStatusPassed    = "passed"
	MatchStatusConverted = "converted"
)

// FeedbackRating values for explicit or deal-derived match feedback
const (
	FeedbackRatingPositive = "positive"
	FeedbackRatingNegative = "negative"
)

// FactorBreakdown holds the five per-factor 0-100 scores persisted with each
// match so the weight adapter can learn from history. Fields missing from
// older rows are treated as 50 at read time.
type FactorBreakdown struct {
	Location     int `json:"location"`
	Industry     int `json:"industry"`
	Stage        int `json:"stage"`
	InvestorType int `json:"investor_type"`
	CheckSize    int `json:"check_size"`
}

// UserFeedback is founder or deal-outcome feedback attached to a match.
// Updates merge into the existing record rather than replacing it.
type UserFeedback struct {
	Rating      string     `json:"rating,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	DealID      *string    `json:"deal_id,omitempty"`
	DealOutcome *string    `json:"deal_outcome,omitempty"`
}

// Merge applies the non-empty fields of other on top of f
func (f *UserFeedback) Merge(other UserFeedback) {
	if other.Rating != "" {
		f.Rating = other.Rating
	}
	if other.Reason != "" {
		f.Reason = other.Reason
	}
	if other.Timestamp != nil {
		f.Timestamp = other.Timestamp
	}
	if other.DealID != nil {
		f.DealID = other.DealID
	}
	if other.DealOutcome != nil {
		f.DealOutcome = other.DealOutcome
	}
}

// Match is a persisted scoring result for a (startup, investor, firm)
// identity. At least one of InvestorID/FirmID is present. Rows are
// append-only; the engine never deletes scoring history.
type Match struct {
	ID           string                          `json:"id" db:"id"`
	StartupID    string                          `json:"startup_id" db:"startup_id"`
	InvestorID   *string                         `json:"investor_id,omitempty" db:"investor_id"`
	FirmID       *string                         `json:"firm_id,omitempty" db:"firm_id"`
	MatchScore   int                             `json:"match_score" db:"match_score"`
	MatchReasons StringList                      `json:"match_reasons" db:"match_reasons"`
	Status       string                          `json:"status" db:"status"`
	Breakdown    database.JSONB[FactorBreakdown] `json:"breakdown" db:"breakdown"`
	UserFeedback *database.JSONB[UserFeedback]   `json:"user_feedback,omitempty" db:"user_feedback"`
	CreatedAt    time.Time                       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time                       `json:"updated_at" db:"updated_at"`
}

// JSONBBreakdown wraps a breakdown for storage in the jsonb column
func JSONBBreakdown(b FactorBreakdown) database.JSONB[FactorBreakdown] {
	return database.NewJSONB(b)
}

// JSONBFeedback wraps user feedback for storage in the jsonb column
func JSONBFeedback(f UserFeedback) database.JSONB[UserFeedback] {
	return database.NewJSONB(f)
}

// PairKey identifies the investor-firm pair for deduplication
func (m *Match) PairKey() string {
	investorID := ""
	if m.InvestorID != nil {
		investorID = *m.InvestorID
	}
	firmID := ""
	if m.FirmID != nil {
		firmID = *m.FirmID
	}
	return investorID + "-" + firmID
}

// MatchResult is an unsaved scoring outcome from the generator. Callers save
// results explicitly via the match repository's bulk insert.
type MatchResult struct {
	InvestorID *string         `json:"investor_id,omitempty"`
	FirmID     *string         `json:"firm_id,omitempty"`
	Score      int             `json:"score"`
	Reasons    []string        `json:"reasons"`
	Breakdown  FactorBreakdown `json:"breakdown"`
}

// GenerateMatchesRequest is the request to generate matches for a startup
type GenerateMatchesRequest struct {
	Limit             int  `json:"limit,omitempty" validate:"omitempty,gt=0,lte=200"`
	UseLearnedWeights bool `json:"use_learned_weights,omitempty"`
}

// SaveMatchesRequest is the request to persist generated match results
type SaveMatchesRequest struct {
	Results []MatchResult `json:"results" validate:"required,min=1,dive"`
}

// UpdateMatchStatusRequest is the request to update a match status
type UpdateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=saved contacted passed"`
}

// MatchFeedbackRequest is the request to record explicit match feedback
type MatchFeedbackRequest struct {
	Rating string `json:"rating" validate:"required,oneof=positive negative"`
	Reason string `json:"reason,omitempty"`
}

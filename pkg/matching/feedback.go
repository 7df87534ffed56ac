package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// ProcessDealOutcome stamps deal-derived feedback onto the matches that led
// to the deal. Correlation failures are expected for deals outside the
// matchmaking funnel, so they log and return rather than erroring.
func (e *Engine) ProcessDealOutcome(ctx context.Context, deal models.Deal) error {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.ProcessDealOutcome")
	defer span.End()

	log := e.logger.WithContext(ctx).WithFields(map[string]any{
		"deal_id":     deal.ID,
		"deal_status": deal.Status,
	})

	if deal.Status != models.DealStatusWon && deal.Status != models.DealStatusLost {
		return nil
	}
	if deal.StartupID == "" || (deal.InvestorID == nil && deal.FirmID == nil) {
		log.Warn("Deal outcome cannot be correlated to a match, skipping")
		return nil
	}

	matches, err := e.matches.ListForDeal(ctx, deal.StartupID, deal.InvestorID, deal.FirmID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	outcome := deal.Status
	rating := models.FeedbackRatingPositive
	reason := fmt.Sprintf("Deal %s won", deal.ID)
	if deal.Status == models.DealStatusLost {
		rating = models.FeedbackRatingNegative
		reason = fmt.Sprintf("Deal %s lost", deal.ID)
	}

	for i := range matches {
		match := &matches[i]

		feedback := models.UserFeedback{}
		if match.UserFeedback != nil {
			feedback = match.UserFeedback.Data
		}
		feedback.Merge(models.UserFeedback{
			Rating:      rating,
			Reason:      reason,
			Timestamp:   &now,
			DealID:      &deal.ID,
			DealOutcome: &outcome,
		})

		// A won deal advances the match to converted. A lost deal never
		// downgrades founder-recorded status; it only adds feedback.
		status := match.Status
		if deal.Status == models.DealStatusWon {
			status = models.MatchStatusConverted
		}

		if err := e.matches.SetFeedback(ctx, match.ID, status, feedback); err != nil {
			log.WithError(err).WithFields(map[string]any{"match_id": match.ID}).Error("Failed to apply deal feedback")
			return err
		}
	}

	metrics.DealFeedback.WithLabelValues(deal.Status).Inc()
	log.WithFields(map[string]any{"matches": len(matches)}).Info("Applied deal outcome feedback")
	return nil
}

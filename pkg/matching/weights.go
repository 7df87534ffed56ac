package matching

import (
	"context"

	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Signal weights for the feedback buckets. A match can land in several
// buckets; each contribution is summed.
const (
	signalWonDeal   = 3.0
	signalPositive  = 1.0
	signalLostDeal  = -1.0
	signalNegative  = -0.5
	neutralFactor   = 50.0
	missingFeedback = 0
)

type outcomeSignal struct {
	breakdown models.FactorBreakdown
	weight    float64
}

// AdjustFromFeedback recomputes the weight vector for a user from observed
// match outcomes. With fewer than the configured minimum signals the default
// vector is returned unchanged. The result is ephemeral; callers pass it
// into the next generation run, nothing is persisted.
func (e *Engine) AdjustFromFeedback(ctx context.Context, userID string) (Weights, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.AdjustFromFeedback")
	defer span.End()

	log := e.logger.WithContext(ctx).WithFields(map[string]any{"user_id": userID})

	startups, err := e.startups.ListByUser(ctx, userID)
	if err != nil {
		return Weights{}, err
	}
	if len(startups) == 0 {
		metrics.WeightAdaptations.WithLabelValues("default").Inc()
		return DefaultWeights(), nil
	}

	startupIDs := make([]string, 0, len(startups))
	for _, startup := range startups {
		startupIDs = append(startupIDs, startup.ID)
	}

	matches, err := e.matches.ListByStartups(ctx, startupIDs)
	if err != nil {
		return Weights{}, err
	}
	deals, err := e.deals.ListByStartups(ctx, startupIDs, []string{models.DealStatusWon, models.DealStatusLost})
	if err != nil {
		return Weights{}, err
	}

	signals := collectSignals(matches, deals)
	if len(signals) < e.cfg.MinFeedbackSignals {
		log.WithFields(map[string]any{"signals": len(signals)}).Debug("Insufficient feedback signals, using default weights")
		metrics.WeightAdaptations.WithLabelValues("default").Inc()
		return DefaultWeights(), nil
	}

	learned, ok := averagePositiveSignals(signals)
	if !ok {
		metrics.WeightAdaptations.WithLabelValues("default").Inc()
		return DefaultWeights(), nil
	}

	blended := blend(normalize(learned), DefaultWeights(), e.cfg.BlendRatio)
	metrics.WeightAdaptations.WithLabelValues("learned").Inc()
	log.WithFields(map[string]any{"signals": len(signals)}).Info("Computed learned weight vector")
	return blended, nil
}

// collectSignals buckets historical matches by outcome quality. Only
// non-suggested matches carry user intent.
func collectSignals(matches []models.Match, deals []models.Deal) []outcomeSignal {
	signals := make([]outcomeSignal, 0)
	for i := range matches {
		match := &matches[i]
		if match.Status == models.MatchStatusSuggested {
			continue
		}
		breakdown := match.Breakdown.Data

		rating := ""
		if match.UserFeedback != nil {
			rating = match.UserFeedback.Data.Rating
		}

		if linkedToDeal(match, deals, models.DealStatusWon) {
			signals = append(signals, outcomeSignal{breakdown: breakdown, weight: signalWonDeal})
		}
		switch match.Status {
		case models.MatchStatusSaved, models.MatchStatusContacted, models.MatchStatusConverted:
			signals = append(signals, outcomeSignal{breakdown: breakdown, weight: signalPositive})
		default:
			if rating == models.FeedbackRatingPositive {
				signals = append(signals, outcomeSignal{breakdown: breakdown, weight: signalPositive})
			}
		}
		if linkedToDeal(match, deals, models.DealStatusLost) {
			signals = append(signals, outcomeSignal{breakdown: breakdown, weight: signalLostDeal})
		}
		if match.Status == models.MatchStatusPassed || rating == models.FeedbackRatingNegative {
			signals = append(signals, outcomeSignal{breakdown: breakdown, weight: signalNegative})
		}
	}
	return signals
}

func linkedToDeal(match *models.Match, deals []models.Deal, status string) bool {
	for i := range deals {
		deal := &deals[i]
		if deal.Status != status || deal.StartupID != match.StartupID {
			continue
		}
		if deal.InvestorID != nil && match.InvestorID != nil && *deal.InvestorID == *match.InvestorID {
			return true
		}
		if deal.FirmID != nil && match.FirmID != nil && *deal.FirmID == *match.FirmID {
			return true
		}
	}
	return false
}

// averagePositiveSignals computes the per-factor weighted average over
// positive signals only. Negative signals gate the minimum-evidence check
// but do not pull factors down. Missing breakdown fields read as neutral 50.
func averagePositiveSignals(signals []outcomeSignal) (Weights, bool) {
	var sum Weights
	total := 0.0
	for _, signal := range signals {
		if signal.weight <= 0 {
			continue
		}
		sum.Location += orNeutral(signal.breakdown.Location) * signal.weight
		sum.Industry += orNeutral(signal.breakdown.Industry) * signal.weight
		sum.Stage += orNeutral(signal.breakdown.Stage) * signal.weight
		sum.InvestorType += orNeutral(signal.breakdown.InvestorType) * signal.weight
		sum.CheckSize += orNeutral(signal.breakdown.CheckSize) * signal.weight
		total += signal.weight
	}
	if total == 0 {
		return Weights{}, false
	}
	return Weights{
		Location:     sum.Location / total,
		Industry:     sum.Industry / total,
		Stage:        sum.Stage / total,
		InvestorType: sum.InvestorType / total,
		CheckSize:    sum.CheckSize / total,
	}, true
}

// orNeutral reads a breakdown field, treating the zero value of rows
// persisted before a factor existed as the neutral 50.
func orNeutral(value int) float64 {
	if value == missingFeedback {
		return neutralFactor
	}
	return float64(value)
}

func normalize(w Weights) Weights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	return Weights{
		Location:     w.Location / sum,
		Industry:     w.Industry / sum,
		Stage:        w.Stage / sum,
		InvestorType: w.InvestorType / sum,
		CheckSize:    w.CheckSize / sum,
	}
}

func blend(learned, defaults Weights, ratio float64) Weights {
	inverse := 1 - ratio
	return Weights{
		Location:     learned.Location*ratio + defaults.Location*inverse,
		Industry:     learned.Industry*ratio + defaults.Industry*inverse,
		Stage:        learned.Stage*ratio + defaults.Stage*inverse,
		InvestorType: learned.InvestorType*ratio + defaults.InvestorType*inverse,
		CheckSize:    learned.CheckSize*ratio + defaults.CheckSize*inverse,
	}
}

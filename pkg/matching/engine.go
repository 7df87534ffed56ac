package matching

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Config contains configuration for the matching engine
type Config struct {
	DefaultLimit       int     // Maximum results per generation run (default: 50)
	InclusionScore     int     // Minimum score to keep a candidate with no matched factor (default: 20)
	BlendRatio         float64 // Learned share when blending weight vectors (default: 0.7)
	MinFeedbackSignals int     // Signals required before learned weights apply (default: 3)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		DefaultLimit:       50,
		InclusionScore:     20,
		BlendRatio:         0.7,
		MinFeedbackSignals: 3,
	}
}

// Engine orchestrates composite scoring across the investor/firm candidate
// set, adapts the weight vector from feedback, and propagates deal outcomes
// onto match records.
type Engine struct {
	logger    ectologger.Logger
	startups  StartupStore
	investors InvestorStore
	firms     FirmStore
	documents DocumentStore
	matches   MatchStore
	deals     DealStore
	cfg       Config
}

// NewEngine creates a new matching engine
func NewEngine(
	logger ectologger.Logger,
	startups StartupStore,
	investors InvestorStore,
	firms FirmStore,
	documents DocumentStore,
	matches MatchStore,
	deals DealStore,
	cfg Config,
) *Engine {
	return &Engine{
		logger:    logger,
		startups:  startups,
		investors: investors,
		firms:     firms,
		documents: documents,
		matches:   matches,
		deals:     deals,
		cfg:       cfg,
	}
}

// GenerateForStartup scores one startup against every active investor and
// returns the ranked results. Nothing is persisted; callers save results
// explicitly via SaveResults.
func (e *Engine) GenerateForStartup(ctx context.Context, startupID string, weights Weights, limit int) ([]models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.GenerateForStartup")
	defer span.End()

	start := time.Now()
	log := e.logger.WithContext(ctx).WithFields(map[string]any{
		"startup_id": startupID,
	})

	results, err := e.generate(ctx, startupID, weights, limit)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if httperror.GetStatusCode(err) == http.StatusNotFound {
			outcome = "not_found"
		}
		metrics.MatchGenerations.WithLabelValues(outcome).Inc()
		log.WithError(err).Error("Match generation failed")
		return nil, err
	}

	metrics.MatchGenerations.WithLabelValues("success").Inc()
	log.WithFields(map[string]any{
		"results":  len(results),
		"duration": time.Since(start),
	}).Info("Generated matches")
	return results, nil
}

func (e *Engine) generate(ctx context.Context, startupID string, weights Weights, limit int) ([]models.MatchResult, error) {
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	startup, err := e.startups.Get(ctx, startupID)
	if err != nil {
		return nil, err
	}

	// Enrich the industry signal with keywords mined from uploaded
	// documents. Richer signal than structured tags alone.
	documents, err := e.documents.ListByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	industries := unionIndustries(startup.Industries, MineIndustryKeywords(documents))

	investors, err := e.investors.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	firms, err := e.firms.List(ctx)
	if err != nil {
		return nil, err
	}
	firmsByID := make(map[string]*models.InvestmentFirm, len(firms))
	for i := range firms {
		firmsByID[firms[i].ID] = &firms[i]
	}

	existing, err := e.matches.ListByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].PairKey()] = true
	}

	results := make([]models.MatchResult, 0)
	scored := 0
	for i := range investors {
		investor := &investors[i]
		candidate := Candidate{Investor: investor}
		if investor.FirmID != nil {
			candidate.Firm = firmsByID[*investor.FirmID]
		}

		key := pairKey(investor)
		if seen[key] {
			continue
		}
		seen[key] = true

		result := ScoreCandidate(startup, industries, candidate, weights)
		scored++
		if result.Score >= e.cfg.InclusionScore || len(result.Reasons) > 0 {
			results = append(results, result)
		}
	}
	metrics.CandidatesScored.Observe(float64(scored))

	// Rank by score; equal scores break by investor id ascending so top-N
	// boundaries are deterministic.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return derefID(results[i].InvestorID) < derefID(results[j].InvestorID)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SaveResults bulk-inserts generated results as suggested matches. Always
// inserts; the generator has already deduplicated against existing rows.
func (e *Engine) SaveResults(ctx context.Context, startupID string, results []models.MatchResult) ([]models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.SaveResults")
	defer span.End()

	rows := make([]models.Match, 0, len(results))
	for _, result := range results {
		rows = append(rows, models.Match{
			StartupID:    startupID,
			InvestorID:   result.InvestorID,
			FirmID:       result.FirmID,
			MatchScore:   result.Score,
			MatchReasons: result.Reasons,
			Status:       models.MatchStatusSuggested,
			Breakdown:    models.JSONBBreakdown(result.Breakdown),
		})
	}

	saved, err := e.matches.CreateBatch(ctx, rows)
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to save match results")
		return nil, err
	}

	metrics.MatchesSaved.Add(float64(len(saved)))
	e.logger.WithContext(ctx).WithFields(map[string]any{
		"startup_id": startupID,
		"saved":      len(saved),
	}).Info("Saved match results")
	return saved, nil
}

func unionIndustries(tags []string, keywords []string) []string {
	seen := make(map[string]bool, len(tags)+len(keywords))
	union := make([]string, 0, len(tags)+len(keywords))
	for _, list := range [][]string{tags, keywords} {
		for _, tag := range list {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			union = append(union, tag)
		}
	}
	return union
}

func pairKey(investor *models.Investor) string {
	firmID := ""
	if investor.FirmID != nil {
		firmID = *investor.FirmID
	}
	return investor.ID + "-" + firmID
}

func derefID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

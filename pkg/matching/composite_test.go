package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func perfectFitCandidate() Candidate {
	return Candidate{
		Investor: &models.Investor{
			ID:           "inv-1",
			Location:     strPtr("Bay Area"),
			Sectors:      models.StringList{"fintech"},
			Stages:       models.StringList{"Seed"},
			InvestorType: strPtr("Venture Capital"),
			CheckSizeMin: floatPtr(500_000),
			CheckSizeMax: floatPtr(2_000_000),
		},
	}
}

func seedFintechStartup() *models.Startup {
	return &models.Startup{
		ID:           "startup-1",
		Location:     strPtr("San Francisco"),
		Industries:   models.StringList{"fintech"},
		Stage:        strPtr("Seed"),
		TargetAmount: floatPtr(1_000_000),
	}
}

func TestScoreCandidatePerfectFit(t *testing.T) {
	startup := seedFintechStartup()
	result := ScoreCandidate(startup, startup.Industries, perfectFitCandidate(), DefaultWeights())

	assert.Equal(t, 100, result.Score)
	require.Len(t, result.Reasons, 5)

	// Reason ordering is industry, stage, location, check size, investor type
	assert.Contains(t, result.Reasons[0], "Sector match")
	assert.Contains(t, result.Reasons[1], "Stage match")
	assert.Contains(t, result.Reasons[2], "Location match")
	assert.Contains(t, result.Reasons[3], "Check size")
	assert.Contains(t, result.Reasons[4], "Investor type")

	assert.Equal(t, 100, result.Breakdown.Location)
	assert.Equal(t, 100, result.Breakdown.Industry)
	assert.Equal(t, 100, result.Breakdown.Stage)
	assert.Equal(t, 100, result.Breakdown.CheckSize)
	assert.Equal(t, 100, result.Breakdown.InvestorType)
}

func TestScoreCandidateNoFit(t *testing.T) {
	startup := seedFintechStartup()
	candidate := Candidate{
		Investor: &models.Investor{
			ID:       "inv-2",
			Location: strPtr("Singapore"),
			Sectors:  models.StringList{"biotech"},
			Stages:   models.StringList{"Series-C"},
		},
	}

	result := ScoreCandidate(startup, startup.Industries, candidate, DefaultWeights())

	assert.LessOrEqual(t, result.Score, 20)
	assert.Empty(t, result.Reasons)
}

func TestScoreCandidateUnionsFirmSignals(t *testing.T) {
	startup := seedFintechStartup()
	firm := &models.InvestmentFirm{
		ID:       "firm-1",
		Location: strPtr("Bay Area"),
		Sectors:  models.StringList{"fintech"},
		Stages:   models.StringList{"Seed"},
	}
	candidate := Candidate{
		Investor: &models.Investor{ID: "inv-3", FirmID: strPtr("firm-1")},
		Firm:     firm,
	}

	result := ScoreCandidate(startup, startup.Industries, candidate, DefaultWeights())

	assert.Equal(t, 100, result.Breakdown.Location)
	assert.Equal(t, 100, result.Breakdown.Industry)
	assert.Equal(t, 100, result.Breakdown.Stage)
	require.NotNil(t, result.FirmID)
	assert.Equal(t, "firm-1", *result.FirmID)
}

func TestScoreCandidateSparseProfileStaysNeutral(t *testing.T) {
	startup := &models.Startup{ID: "startup-2"}
	candidate := Candidate{Investor: &models.Investor{ID: "inv-4"}}

	result := ScoreCandidate(startup, nil, candidate, DefaultWeights())

	assert.Equal(t, 50, result.Score)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, 50, result.Breakdown.Location)
	assert.Equal(t, 50, result.Breakdown.Industry)
	assert.Equal(t, 50, result.Breakdown.Stage)
	assert.Equal(t, 50, result.Breakdown.CheckSize)
	assert.Equal(t, 50, result.Breakdown.InvestorType)
}

func TestScoreCandidateMonotonicInWeights(t *testing.T) {
	// Industry hits, everything else misses. Raising the industry weight
	// must not decrease the composite score.
	startup := &models.Startup{
		ID:         "startup-3",
		Industries: models.StringList{"fintech"},
	}
	candidate := Candidate{
		Investor: &models.Investor{
			ID:      "inv-5",
			Sectors: models.StringList{"fintech"},
		},
	}

	low := DefaultWeights()
	high := low
	high.Industry += 0.2

	lowScore := ScoreCandidate(startup, startup.Industries, candidate, low).Score
	highScore := ScoreCandidate(startup, startup.Industries, candidate, high).Score
	assert.GreaterOrEqual(t, highScore, lowScore)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 0.0001)
}

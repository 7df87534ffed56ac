package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func savedMatch(id, startupID string, breakdown models.FactorBreakdown) models.Match {
	investorID := "inv-" + id
	return models.Match{
		ID:         id,
		StartupID:  startupID,
		InvestorID: &investorID,
		Status:     models.MatchStatusSaved,
		Breakdown:  models.JSONBBreakdown(breakdown),
	}
}

func weightsFixture() (*fakeStores, string) {
	stores := newFakeStores()
	userID := "user-1"
	startup := &models.Startup{ID: "startup-1", UserID: userID}
	stores.startups[startup.ID] = startup
	stores.byUser[userID] = []models.Startup{*startup}
	return stores, userID
}

func TestAdjustFromFeedbackInsufficientSignals(t *testing.T) {
	stores, userID := weightsFixture()
	stores.matches = []models.Match{
		savedMatch("m-1", "startup-1", models.FactorBreakdown{Location: 80, Industry: 90, Stage: 70, InvestorType: 50, CheckSize: 60}),
		savedMatch("m-2", "startup-1", models.FactorBreakdown{Location: 80, Industry: 90, Stage: 70, InvestorType: 50, CheckSize: 60}),
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), weights)
}

func TestAdjustFromFeedbackNoStartups(t *testing.T) {
	engine := newTestEngine(newFakeStores())
	weights, err := engine.AdjustFromFeedback(context.Background(), "user-unknown")
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), weights)
}

func TestAdjustFromFeedbackSuggestedMatchesCarryNoSignal(t *testing.T) {
	stores, userID := weightsFixture()
	for _, id := range []string{"m-1", "m-2", "m-3", "m-4"} {
		match := savedMatch(id, "startup-1", models.FactorBreakdown{Industry: 100})
		match.Status = models.MatchStatusSuggested
		stores.matches = append(stores.matches, match)
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), weights)
}

func TestAdjustFromFeedbackLearnsFromPositiveOutcomes(t *testing.T) {
	stores, userID := weightsFixture()
	breakdown := models.FactorBreakdown{Location: 10, Industry: 100, Stage: 10, InvestorType: 10, CheckSize: 10}
	stores.matches = []models.Match{
		savedMatch("m-1", "startup-1", breakdown),
		savedMatch("m-2", "startup-1", breakdown),
		savedMatch("m-3", "startup-1", breakdown),
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)

	// Learned vector is normalized then blended 70/30 with the default.
	defaults := DefaultWeights()
	assert.InDelta(t, 1.0, weights.Sum(), 0.0001)
	assert.Greater(t, weights.Industry, defaults.Industry)
	assert.Less(t, weights.Stage, defaults.Stage)

	// industry: learned 100/140, blended with default 0.40
	expectedIndustry := 0.7*(100.0/140.0) + 0.3*defaults.Industry
	assert.InDelta(t, expectedIndustry, weights.Industry, 0.0001)
}

func TestAdjustFromFeedbackNegativeOnlySignalsUseDefaults(t *testing.T) {
	stores, userID := weightsFixture()
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		match := savedMatch(id, "startup-1", models.FactorBreakdown{Industry: 100})
		match.Status = models.MatchStatusPassed
		stores.matches = append(stores.matches, match)
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), weights)
}

func TestAdjustFromFeedbackMissingBreakdownReadsNeutral(t *testing.T) {
	stores, userID := weightsFixture()
	stores.matches = []models.Match{
		savedMatch("m-1", "startup-1", models.FactorBreakdown{}),
		savedMatch("m-2", "startup-1", models.FactorBreakdown{}),
		savedMatch("m-3", "startup-1", models.FactorBreakdown{}),
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)

	// All factors read as 50, normalize to 0.2 each, blended with defaults.
	defaults := DefaultWeights()
	assert.InDelta(t, 0.7*0.2+0.3*defaults.Location, weights.Location, 0.0001)
	assert.InDelta(t, 0.7*0.2+0.3*defaults.Industry, weights.Industry, 0.0001)
	assert.InDelta(t, 1.0, weights.Sum(), 0.0001)
}

func TestAdjustFromFeedbackWonDealsOutweighSavedMatches(t *testing.T) {
	stores, userID := weightsFixture()
	wonBreakdown := models.FactorBreakdown{Location: 100, Industry: 10, Stage: 10, InvestorType: 10, CheckSize: 10}
	savedBreakdown := models.FactorBreakdown{Location: 10, Industry: 100, Stage: 10, InvestorType: 10, CheckSize: 10}

	won := savedMatch("m-won", "startup-1", wonBreakdown)
	won.Status = models.MatchStatusConverted
	stores.matches = []models.Match{
		won,
		savedMatch("m-2", "startup-1", savedBreakdown),
		savedMatch("m-3", "startup-1", savedBreakdown),
	}
	stores.deals = []models.Deal{
		{ID: "deal-1", StartupID: "startup-1", InvestorID: won.InvestorID, Status: models.DealStatusWon},
	}

	engine := newTestEngine(stores)
	weights, err := engine.AdjustFromFeedback(context.Background(), userID)
	require.NoError(t, err)

	// The won match contributes +3 (deal) +1 (converted) = 4 of 6 total
	// positive weight, so location should pull ahead of industry.
	assert.Greater(t, weights.Location, weights.Industry)
}

package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestProcessDealOutcomeIgnoresNonTerminalStatus(t *testing.T) {
	stores := newFakeStores()
	engine := newTestEngine(stores)

	investorID := "inv-1"
	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:         "deal-1",
		StartupID:  "startup-1",
		InvestorID: &investorID,
		Status:     "negotiating",
	})
	require.NoError(t, err)
	assert.Empty(t, stores.updates)
}

func TestProcessDealOutcomeSkipsUncorrelatableDeals(t *testing.T) {
	stores := newFakeStores()
	engine := newTestEngine(stores)

	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:        "deal-1",
		StartupID: "startup-1",
		Status:    models.DealStatusWon,
	})
	require.NoError(t, err)
	assert.Empty(t, stores.updates)

	investorID := "inv-1"
	err = engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:         "deal-2",
		InvestorID: &investorID,
		Status:     models.DealStatusWon,
	})
	require.NoError(t, err)
	assert.Empty(t, stores.updates)
}

func TestProcessDealOutcomeWonAdvancesToConverted(t *testing.T) {
	stores := newFakeStores()
	investorID := "inv-1"
	stores.matches = []models.Match{
		{ID: "m-1", StartupID: "startup-1", InvestorID: &investorID, Status: models.MatchStatusContacted},
	}
	engine := newTestEngine(stores)

	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:         "deal-1",
		StartupID:  "startup-1",
		InvestorID: &investorID,
		Status:     models.DealStatusWon,
	})
	require.NoError(t, err)
	require.Len(t, stores.updates, 1)

	update := stores.updates[0]
	assert.Equal(t, "m-1", update.matchID)
	assert.Equal(t, models.MatchStatusConverted, update.status)
	assert.Equal(t, models.FeedbackRatingPositive, update.feedback.Rating)
	require.NotNil(t, update.feedback.DealID)
	assert.Equal(t, "deal-1", *update.feedback.DealID)
	require.NotNil(t, update.feedback.DealOutcome)
	assert.Equal(t, models.DealStatusWon, *update.feedback.DealOutcome)
	assert.NotNil(t, update.feedback.Timestamp)
}

func TestProcessDealOutcomeLostNeverDowngradesStatus(t *testing.T) {
	stores := newFakeStores()
	firmID := "firm-1"
	stores.matches = []models.Match{
		{ID: "m-1", StartupID: "startup-1", FirmID: &firmID, Status: models.MatchStatusSaved},
	}
	engine := newTestEngine(stores)

	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:        "deal-1",
		StartupID: "startup-1",
		FirmID:    &firmID,
		Status:    models.DealStatusLost,
	})
	require.NoError(t, err)
	require.Len(t, stores.updates, 1)

	update := stores.updates[0]
	assert.Equal(t, models.MatchStatusSaved, update.status)
	assert.Equal(t, models.FeedbackRatingNegative, update.feedback.Rating)
}

func TestProcessDealOutcomeMergesExistingFeedback(t *testing.T) {
	stores := newFakeStores()
	investorID := "inv-1"
	existing := models.JSONBFeedback(models.UserFeedback{
		Rating: models.FeedbackRatingPositive,
		Reason: "Great intro call",
	})
	stores.matches = []models.Match{
		{ID: "m-1", StartupID: "startup-1", InvestorID: &investorID, Status: models.MatchStatusSaved, UserFeedback: &existing},
	}
	engine := newTestEngine(stores)

	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:         "deal-1",
		StartupID:  "startup-1",
		InvestorID: &investorID,
		Status:     models.DealStatusLost,
	})
	require.NoError(t, err)
	require.Len(t, stores.updates, 1)

	// Deal fields land on top of the existing record; the rating flips but
	// the record is merged, not replaced.
	update := stores.updates[0]
	assert.Equal(t, models.FeedbackRatingNegative, update.feedback.Rating)
	require.NotNil(t, update.feedback.DealID)
	assert.Equal(t, "deal-1", *update.feedback.DealID)
}

func TestProcessDealOutcomeMatchesOnInvestorOrFirm(t *testing.T) {
	stores := newFakeStores()
	investorID := "inv-1"
	firmID := "firm-1"
	otherInvestor := "inv-2"
	stores.matches = []models.Match{
		{ID: "m-investor", StartupID: "startup-1", InvestorID: &investorID, Status: models.MatchStatusSaved},
		{ID: "m-firm", StartupID: "startup-1", InvestorID: &otherInvestor, FirmID: &firmID, Status: models.MatchStatusSaved},
		{ID: "m-unrelated", StartupID: "startup-1", InvestorID: &otherInvestor, Status: models.MatchStatusSaved},
	}
	engine := newTestEngine(stores)

	err := engine.ProcessDealOutcome(context.Background(), models.Deal{
		ID:         "deal-1",
		StartupID:  "startup-1",
		InvestorID: &investorID,
		FirmID:     &firmID,
		Status:     models.DealStatusWon,
	})
	require.NoError(t, err)
	require.Len(t, stores.updates, 2)

	updated := []string{stores.updates[0].matchID, stores.updates[1].matchID}
	assert.ElementsMatch(t, []string{"m-investor", "m-firm"}, updated)
}

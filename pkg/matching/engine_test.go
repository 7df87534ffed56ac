package matching

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

type feedbackUpdate struct {
	matchID  string
	status   string
	feedback models.UserFeedback
}

// fakeStores is an in-memory implementation of the engine's store interfaces
type fakeStores struct {
	startups  map[string]*models.Startup
	byUser    map[string][]models.Startup
	investors []models.Investor
	firms     []models.InvestmentFirm
	documents map[string][]models.Document
	matches   []models.Match
	deals     []models.Deal
	saved     []models.Match
	updates   []feedbackUpdate
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		startups:  make(map[string]*models.Startup),
		byUser:    make(map[string][]models.Startup),
		documents: make(map[string][]models.Document),
	}
}

func (f *fakeStores) Get(_ context.Context, id string) (*models.Startup, error) {
	startup, ok := f.startups[id]
	if !ok {
		return nil, httperror.NewHTTPError(http.StatusNotFound, "startup not found")
	}
	return startup, nil
}

func (f *fakeStores) ListByUser(_ context.Context, userID string) ([]models.Startup, error) {
	return f.byUser[userID], nil
}

func (f *fakeStores) ListActive(_ context.Context) ([]models.Investor, error) {
	active := make([]models.Investor, 0, len(f.investors))
	for _, investor := range f.investors {
		if investor.IsActive {
			active = append(active, investor)
		}
	}
	return active, nil
}

func (f *fakeStores) List(_ context.Context) ([]models.InvestmentFirm, error) {
	return f.firms, nil
}

func (f *fakeStores) ListByStartup(_ context.Context, startupID string) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, match := range f.matches {
		if match.StartupID == startupID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeStores) ListByStartups(_ context.Context, startupIDs []string) ([]models.Match, error) {
	ids := make(map[string]bool, len(startupIDs))
	for _, id := range startupIDs {
		ids[id] = true
	}
	matches := make([]models.Match, 0)
	for _, match := range f.matches {
		if ids[match.StartupID] {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeStores) ListForDeal(_ context.Context, startupID string, investorID, firmID *string) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, match := range f.matches {
		if match.StartupID != startupID {
			continue
		}
		investorHit := investorID != nil && match.InvestorID != nil && *match.InvestorID == *investorID
		firmHit := firmID != nil && match.FirmID != nil && *match.FirmID == *firmID
		if investorHit || firmHit {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (f *fakeStores) CreateBatch(_ context.Context, matches []models.Match) ([]models.Match, error) {
	f.saved = append(f.saved, matches...)
	return matches, nil
}

func (f *fakeStores) SetFeedback(_ context.Context, id string, status string, feedback models.UserFeedback) error {
	f.updates = append(f.updates, feedbackUpdate{matchID: id, status: status, feedback: feedback})
	for i := range f.matches {
		if f.matches[i].ID == id {
			f.matches[i].Status = status
			wrapped := models.JSONBFeedback(feedback)
			f.matches[i].UserFeedback = &wrapped
		}
	}
	return nil
}

// fakeDocumentStore is separate because MatchStore and DocumentStore both
// declare a ListByStartup method with different signatures.
type fakeDocumentStore struct {
	stores *fakeStores
}

func (f *fakeStores) documentStore() DocumentStore { return &fakeDocumentStore{stores: f} }

func (d *fakeDocumentStore) ListByStartup(_ context.Context, startupID string) ([]models.Document, error) {
	return d.stores.documents[startupID], nil
}

// fakeDealStore is separate because MatchStore and DealStore both declare a
// ListByStartups method with different signatures.
type fakeDealStore struct {
	stores *fakeStores
}

func (f *fakeStores) dealStore() DealStore { return &fakeDealStore{stores: f} }

func (d *fakeDealStore) ListByStartups(_ context.Context, startupIDs []string, statuses []string) ([]models.Deal, error) {
	ids := make(map[string]bool, len(startupIDs))
	for _, id := range startupIDs {
		ids[id] = true
	}
	wanted := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}
	deals := make([]models.Deal, 0)
	for _, deal := range d.stores.deals {
		if ids[deal.StartupID] && wanted[deal.Status] {
			deals = append(deals, deal)
		}
	}
	return deals, nil
}

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestEngine(stores *fakeStores) *Engine {
	return NewEngine(noopLogger(), stores, stores, stores, stores.documentStore(), stores, stores.dealStore(), DefaultConfig())
}

func TestGenerateForStartupNotFound(t *testing.T) {
	engine := newTestEngine(newFakeStores())

	_, err := engine.GenerateForStartup(context.Background(), "missing", DefaultWeights(), 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
}

func TestGenerateForStartupRanksAndFilters(t *testing.T) {
	stores := newFakeStores()
	startup := seedFintechStartup()
	stores.startups[startup.ID] = startup
	stores.investors = []models.Investor{
		{
			ID:       "inv-miss",
			IsActive: true,
			Location: strPtr("Singapore"),
			Sectors:  models.StringList{"biotech"},
			Stages:   models.StringList{"Series-C"},
		},
		{
			ID:           "inv-fit",
			IsActive:     true,
			Location:     strPtr("Bay Area"),
			Sectors:      models.StringList{"fintech"},
			Stages:       models.StringList{"Seed"},
			InvestorType: strPtr("Venture Capital"),
			CheckSizeMin: floatPtr(500_000),
			CheckSizeMax: floatPtr(2_000_000),
		},
		{
			ID:       "inv-inactive",
			IsActive: false,
			Sectors:  models.StringList{"fintech"},
		},
	}

	results, err := engineGenerate(t, stores, startup.ID, 0)
	require.NoError(t, err)

	// The total miss has no matched factor and scores under the inclusion
	// threshold, so only the fit survives.
	require.Len(t, results, 1)
	assert.Equal(t, "inv-fit", *results[0].InvestorID)
	assert.Equal(t, 100, results[0].Score)
	assert.Len(t, results[0].Reasons, 5)
}

func engineGenerate(t *testing.T, stores *fakeStores, startupID string, limit int) ([]models.MatchResult, error) {
	t.Helper()
	engine := newTestEngine(stores)
	return engine.GenerateForStartup(context.Background(), startupID, DefaultWeights(), limit)
}

func TestGenerateForStartupSkipsExistingPairs(t *testing.T) {
	stores := newFakeStores()
	startup := seedFintechStartup()
	stores.startups[startup.ID] = startup
	investorID := "inv-fit"
	stores.investors = []models.Investor{
		{
			ID:       investorID,
			IsActive: true,
			Location: strPtr("Bay Area"),
			Sectors:  models.StringList{"fintech"},
			Stages:   models.StringList{"Seed"},
		},
	}
	stores.matches = []models.Match{
		{ID: "m-1", StartupID: startup.ID, InvestorID: &investorID, Status: models.MatchStatusSuggested},
	}

	results, err := engineGenerate(t, stores, startup.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGenerateForStartupNeverDuplicatesPairs(t *testing.T) {
	stores := newFakeStores()
	startup := seedFintechStartup()
	stores.startups[startup.ID] = startup
	// Same investor id twice; only the first is scored.
	investor := models.Investor{
		ID:       "inv-dup",
		IsActive: true,
		Sectors:  models.StringList{"fintech"},
	}
	stores.investors = []models.Investor{investor, investor}

	results, err := engineGenerate(t, stores, startup.ID, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestGenerateForStartupTieBreaksByInvestorID(t *testing.T) {
	stores := newFakeStores()
	startup := seedFintechStartup()
	stores.startups[startup.ID] = startup
	template := models.Investor{
		IsActive: true,
		Location: strPtr("Bay Area"),
		Sectors:  models.StringList{"fintech"},
		Stages:   models.StringList{"Seed"},
	}
	second := template
	second.ID = "inv-b"
	first := template
	first.ID = "inv-a"
	stores.investors = []models.Investor{second, first}

	results, err := engineGenerate(t, stores, startup.ID, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "inv-a", *results[0].InvestorID)
	assert.Equal(t, "inv-b", *results[1].InvestorID)
}

func TestGenerateForStartupRespectsLimit(t *testing.T) {
	stores := newFakeStores()
	startup := seedFintechStartup()
	stores.startups[startup.ID] = startup
	for _, id := range []string{"inv-1", "inv-2", "inv-3"} {
		stores.investors = append(stores.investors, models.Investor{
			ID:       id,
			IsActive: true,
			Sectors:  models.StringList{"fintech"},
		})
	}

	results, err := engineGenerate(t, stores, startup.ID, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGenerateForStartupEnrichesIndustriesFromDocuments(t *testing.T) {
	stores := newFakeStores()
	startup := &models.Startup{
		ID:     "startup-docs",
		UserID: "user-1",
		Name:   "Stealth Co",
	}
	stores.startups[startup.ID] = startup
	content := "Our fintech platform rebuilds payments infrastructure."
	stores.documents[startup.ID] = []models.Document{
		{ID: "doc-1", StartupID: startup.ID, Name: "Pitch Deck", Content: &content},
	}
	stores.investors = []models.Investor{
		{ID: "inv-1", IsActive: true, Sectors: models.StringList{"fintech"}},
	}

	results, err := engineGenerate(t, stores, startup.ID, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Breakdown.Industry)
}

func TestSaveResults(t *testing.T) {
	stores := newFakeStores()
	engine := newTestEngine(stores)
	investorID := "inv-1"

	saved, err := engine.SaveResults(context.Background(), "startup-1", []models.MatchResult{
		{
			InvestorID: &investorID,
			Score:      87,
			Reasons:    []string{"Sector match: fintech"},
			Breakdown:  models.FactorBreakdown{Location: 70, Industry: 100, Stage: 100, InvestorType: 50, CheckSize: 90},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Len(t, stores.saved, 1)

	match := stores.saved[0]
	assert.Equal(t, "startup-1", match.StartupID)
	assert.Equal(t, models.MatchStatusSuggested, match.Status)
	assert.Equal(t, 87, match.MatchScore)
	assert.Equal(t, 100, match.Breakdown.Data.Industry)
}

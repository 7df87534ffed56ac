package matching

import (
	"context"

	"github.com/Ramsey-B/clover/pkg/models"
)

// Narrow store interfaces so the engine can be exercised against in-memory
// fakes. The postgres repositories in internal/repositories satisfy them.

type StartupStore interface {
	Get(ctx context.Context, id string) (*models.Startup, error)
	ListByUser(ctx context.Context, userID string) ([]models.Startup, error)
}

type InvestorStore interface {
	ListActive(ctx context.Context) ([]models.Investor, error)
}

type FirmStore interface {
	List(ctx context.Context) ([]models.InvestmentFirm, error)
}

type DocumentStore interface {
	ListByStartup(ctx context.Context, startupID string) ([]models.Document, error)
}

type MatchStore interface {
	ListByStartup(ctx context.Context, startupID string) ([]models.Match, error)
	ListByStartups(ctx context.Context, startupIDs []string) ([]models.Match, error)
	ListForDeal(ctx context.Context, startupID string, investorID, firmID *string) ([]models.Match, error)
	CreateBatch(ctx context.Context, matches []models.Match) ([]models.Match, error)
	SetFeedback(ctx context.Context, id string, status string, feedback models.UserFeedback) error
}

type DealStore interface {
	ListByStartups(ctx context.Context, startupIDs []string, statuses []string) ([]models.Deal, error)
}

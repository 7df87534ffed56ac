package deal

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const columns = "id, startup_id, investor_id, firm_id, status, created_at, updated_at"

// Repository keeps a local copy of deals ingested from the deals service so
// the weight adapter can correlate match history with outcomes.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new deal repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert records a deal's latest state from the status-change stream
func (r *Repository) Upsert(ctx context.Context, deal *models.Deal) error {
	ctx, span := tracing.StartSpan(ctx, "deal.Repository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}
	deal.UpdatedAt = now

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("deals")
	sb.Cols("id", "startup_id", "investor_id", "firm_id", "status", "created_at", "updated_at")
	sb.Values(deal.ID, deal.StartupID, deal.InvestorID, deal.FirmID, deal.Status, deal.CreatedAt, deal.UpdatedAt)

	query, args := sb.Build()
	query = database.OnConflictUpdate(query, "id", "status", "updated_at")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"deal_id": deal.ID}).Error("Failed to upsert deal")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert deal")
	}

	return nil
}

// ListByStartups retrieves deals for a set of startups filtered by status
func (r *Repository) ListByStartups(ctx context.Context, startupIDs []string, statuses []string) ([]models.Deal, error) {
	ctx, span := tracing.StartSpan(ctx, "deal.Repository.ListByStartups")
	defer span.End()

	if len(startupIDs) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("deals")
	where := []string{sb.In("startup_id", idsToAny(startupIDs)...)}
	if len(statuses) > 0 {
		where = append(where, sb.In("status", idsToAny(statuses)...))
	}
	sb.Where(where...)

	query, args := sb.Build()
	var deals []models.Deal
	if err := r.db.SelectContext(ctx, &deals, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list deals by startups")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list deals")
	}

	return deals, nil
}

func idsToAny(ids []string) []any {
	result := make([]any, len(ids))
	for i, id := range ids {
		result[i] = id
	}
	return result
}

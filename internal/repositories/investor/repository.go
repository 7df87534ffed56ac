package investor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

const columns = "id, firm_id, name, location, sectors, stages, funding_stage, investor_type, check_size_min, check_size_max, typical_investment, is_active, created_at, updated_at"

// Repository handles investor persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new investor repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new investor
func (r *Repository) Create(ctx context.Context, investor *models.Investor) (*models.Investor, error) {
	ctx, span := tracing.StartSpan(ctx, "investor.Repository.Create")
	defer span.End()

	if investor.ID == "" {
		investor.ID = uuid.New().String()
	}
	investor.CreatedAt = time.Now().UTC()
	investor.UpdatedAt = investor.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("investors")
	sb.Cols("id", "firm_id", "name", "location", "sectors", "stages", "funding_stage", "investor_type", "check_size_min", "check_size_max", "typical_investment", "is_active", "created_at", "updated_at")
	sb.Values(investor.ID, investor.FirmID, investor.Name, investor.Location, investor.Sectors, investor.Stages, investor.FundingStage, investor.InvestorType, investor.CheckSizeMin, investor.CheckSizeMax, investor.TypicalInvestment, investor.IsActive, investor.CreatedAt, investor.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"investor_id": investor.ID}).Error("Failed to create investor")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create investor")
	}

	return investor, nil
}

// Get retrieves an investor by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Investor, error) {
	ctx, span := tracing.StartSpan(ctx, "investor.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("investors")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var investor models.Investor
	if err := r.db.GetContext(ctx, &investor, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("investor %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get investor")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get investor")
	}

	return &investor, nil
}

// ListActive retrieves all active investors. The matching engine scores a
// startup against this full set in one pass.
func (r *Repository) ListActive(ctx context.Context) ([]models.Investor, error) {
	ctx, span := tracing.StartSpan(ctx, "investor.Repository.ListActive")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("investors")
	sb.Where(sb.Equal("is_active", true))
	sb.OrderBy("id")

	query, args := sb.Build()
	var investors []models.Investor
	if err := r.db.SelectContext(ctx, &investors, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list active investors")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list investors")
	}

	return investors, nil
}

// List retrieves investors with a simple limit/offset
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Investor, error) {
	ctx, span := tracing.StartSpan(ctx, "investor.Repository.List")
	defer span.End()

	if limit < 1 || limit > 500 {
		limit = 100
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("investors")
	sb.OrderBy("created_at DESC")
	sb.Limit(limit)
	sb.Offset(offset)

	query, args := sb.Build()
	var investors []models.Investor
	if err := r.db.SelectContext(ctx, &investors, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list investors")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list investors")
	}

	return investors, nil
}

// Update applies the non-nil fields of the request to an investor
func (r *Repository) Update(ctx context.Context, id string, req *models.UpdateInvestorRequest) (*models.Investor, error) {
	ctx, span := tracing.StartSpan(ctx, "investor.Repository.Update")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("investors")

	assignments := []string{sb.Assign("updated_at", time.Now().UTC())}
	if req.FirmID != nil {
		assignments = append(assignments, sb.Assign("firm_id", *req.FirmID))
	}
	if req.Name != nil {
		assignments = append(assignments, sb.Assign("name", *req.Name))
	}
	if req.Location != nil {
		assignments = append(assignments, sb.Assign("location", *req.Location))
	}
	if req.Sectors != nil {
		assignments = append(assignments, sb.Assign("sectors", models.StringList(req.Sectors)))
	}
	if req.Stages != nil {
		assignments = append(assignments, sb.Assign("stages", models.StringList(req.Stages)))
	}
	if req.FundingStage != nil {
		assignments = append(assignments, sb.Assign("funding_stage", *req.FundingStage))
	}
	if req.InvestorType != nil {
		assignments = append(assignments, sb.Assign("investor_type", *req.InvestorType))
	}
	if req.CheckSizeMin != nil {
		assignments = append(assignments, sb.Assign("check_size_min", *req.CheckSizeMin))
	}
	if req.CheckSizeMax != nil {
		assignments = append(assignments, sb.Assign("check_size_max", *req.CheckSizeMax))
	}
	if req.TypicalInvestment != nil {
		assignments = append(assignments, sb.Assign("typical_investment", *req.TypicalInvestment))
	}
	if req.IsActive != nil {
		assignments = append(assignments, sb.Assign("is_active", *req.IsActive))
	}
	sb.Set(assignments...)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update investor")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update investor")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("investor %s not found", id))
	}

	return r.Get(ctx, id)
}

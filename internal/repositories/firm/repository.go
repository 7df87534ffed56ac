package firm

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

const columns = "id, name, location, sectors, stages, firm_type, check_size_min, check_size_max, typical_check_size, created_at, updated_at"

// Repository handles investment firm persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new firm repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new investment firm
func (r *Repository) Create(ctx context.Context, firm *models.InvestmentFirm) (*models.InvestmentFirm, error) {
	ctx, span := tracing.StartSpan(ctx, "firm.Repository.Create")
	defer span.End()

	if firm.ID == "" {
		firm.ID = uuid.New().String()
	}
	firm.CreatedAt = time.Now().UTC()
	firm.UpdatedAt = firm.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("investment_firms")
	sb.Cols("id", "name", "location", "sectors", "stages", "firm_type", "check_size_min", "check_size_max", "typical_check_size", "created_at", "updated_at")
	sb.Values(firm.ID, firm.Name, firm.Location, firm.Sectors, firm.Stages, firm.FirmType, firm.CheckSizeMin, firm.CheckSizeMax, firm.TypicalCheckSize, firm.CreatedAt, firm.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"firm_id": firm.ID}).Error("Failed to create firm")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create firm")
	}

	return firm, nil
}

// Get retrieves a firm by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.InvestmentFirm, error) {
	ctx, span := tracing.StartSpan(ctx, "firm.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("investment_firms")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var firm models.InvestmentFirm
	if err := r.db.GetContext(ctx, &firm, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("firm %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get firm")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get firm")
	}

	return &firm, nil
}

// List retrieves all investment firms. The candidate set is in the
// thousands at most, so the engine loads it whole.
func (r *Repository) List(ctx context.Context) ([]models.InvestmentFirm, error) {
	ctx, span := tracing.StartSpan(ctx, "firm.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("investment_firms")
	sb.OrderBy("id")

	query, args := sb.Build()
	var firms []models.InvestmentFirm
	if err := r.db.SelectContext(ctx, &firms, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list firms")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list firms")
	}

	return firms, nil
}

// Update applies the non-nil fields of the request to a firm
func (r *Repository) Update(ctx context.Context, id string, req *models.UpdateFirmRequest) (*models.InvestmentFirm, error) {
	ctx, span := tracing.StartSpan(ctx, "firm.Repository.Update")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("investment_firms")

	assignments := []string{sb.Assign("updated_at", time.Now().UTC())}
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
	if req.FirmType != nil {
		assignments = append(assignments, sb.Assign("firm_type", *req.FirmType))
	}
	if req.CheckSizeMin != nil {
		assignments = append(assignments, sb.Assign("check_size_min", *req.CheckSizeMin))
	}
	if req.CheckSizeMax != nil {
		assignments = append(assignments, sb.Assign("check_size_max", *req.CheckSizeMax))
	}
	if req.TypicalCheckSize != nil {
		assignments = append(assignments, sb.Assign("typical_check_size", *req.TypicalCheckSize))
	}
	sb.Set(assignments...)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update firm")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update firm")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("firm %s not found", id))
	}

	return r.Get(ctx, id)
}

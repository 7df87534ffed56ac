package startup

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

const columns = "id, user_id, name, description, location, industries, stage, target_amount, created_at, updated_at"

// Repository handles startup persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new startup repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new startup
func (r *Repository) Create(ctx context.Context, startup *models.Startup) (*models.Startup, error) {
	ctx, span := tracing.StartSpan(ctx, "startup.Repository.Create")
	defer span.End()

	if startup.ID == "" {
		startup.ID = uuid.New().String()
	}
	startup.CreatedAt = time.Now().UTC()
	startup.UpdatedAt = startup.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("startups")
	sb.Cols("id", "user_id", "name", "description", "location", "industries", "stage", "target_amount", "created_at", "updated_at")
	sb.Values(startup.ID, startup.UserID, startup.Name, startup.Description, startup.Location, startup.Industries, startup.Stage, startup.TargetAmount, startup.CreatedAt, startup.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"startup_id": startup.ID}).Error("Failed to create startup")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create startup")
	}

	return startup, nil
}

// Get retrieves a startup by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Startup, error) {
	ctx, span := tracing.StartSpan(ctx, "startup.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("startups")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var startup models.Startup
	if err := r.db.GetContext(ctx, &startup, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("startup %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get startup")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get startup")
	}

	return &startup, nil
}

// ListByUser retrieves all startups owned by a user
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Startup, error) {
	ctx, span := tracing.StartSpan(ctx, "startup.Repository.ListByUser")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("startups")
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var startups []models.Startup
	if err := r.db.SelectContext(ctx, &startups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list startups by user")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list startups")
	}

	return startups, nil
}

// List retrieves startups with a simple limit/offset
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Startup, error) {
	ctx, span := tracing.StartSpan(ctx, "startup.Repository.List")
	defer span.End()

	if limit < 1 || limit > 500 {
		limit = 100
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("startups")
	sb.OrderBy("created_at DESC")
	sb.Limit(limit)
	sb.Offset(offset)

	query, args := sb.Build()
	var startups []models.Startup
	if err := r.db.SelectContext(ctx, &startups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list startups")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list startups")
	}

	return startups, nil
}

// Update applies the non-nil fields of the request to a startup
func (r *Repository) Update(ctx context.Context, id string, req *models.UpdateStartupRequest) (*models.Startup, error) {
	ctx, span := tracing.StartSpan(ctx, "startup.Repository.Update")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("startups")

	assignments := []string{sb.Assign("updated_at", time.Now().UTC())}
	if req.Name != nil {
		assignments = append(assignments, sb.Assign("name", *req.Name))
	}
	if req.Description != nil {
		assignments = append(assignments, sb.Assign("description", *req.Description))
	}
	if req.Location != nil {
		assignments = append(assignments, sb.Assign("location", *req.Location))
	}
	if req.Industries != nil {
		assignments = append(assignments, sb.Assign("industries", models.StringList(req.Industries)))
	}
	if req.Stage != nil {
		assignments = append(assignments, sb.Assign("stage", *req.Stage))
	}
	if req.TargetAmount != nil {
		assignments = append(assignments, sb.Assign("target_amount", *req.TargetAmount))
	}
	sb.Set(assignments...)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update startup")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update startup")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("startup %s not found", id))
	}

	return r.Get(ctx, id)
}

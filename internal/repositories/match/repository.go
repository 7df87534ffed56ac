package match

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

const columns = "id, startup_id, investor_id, firm_id, match_score, match_reasons, status, breakdown, user_feedback, created_at, updated_at"

// Repository handles match persistence. Match rows are append-only scoring
// history; nothing here deletes them.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new match repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts generated matches in one statement. The unique index
// on (startup_id, investor_id, firm_id) is the hard dedup guarantee when
// two generation runs race; conflicting rows are skipped.
func (r *Repository) CreateBatch(ctx context.Context, matches []models.Match) ([]models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.CreateBatch")
	defer span.End()

	if len(matches) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("matches")
	sb.Cols("id", "startup_id", "investor_id", "firm_id", "match_score", "match_reasons", "status", "breakdown", "created_at", "updated_at")

	for i := range matches {
		match := &matches[i]
		if match.ID == "" {
			match.ID = uuid.New().String()
		}
		if match.Status == "" {
			match.Status = models.MatchStatusSuggested
		}
		match.CreatedAt = now
		match.UpdatedAt = now
		sb.Values(match.ID, match.StartupID, match.InvestorID, match.FirmID, match.MatchScore, match.MatchReasons, match.Status, match.Breakdown, match.CreatedAt, match.UpdatedAt)
	}

	query, args := sb.Build()
	// Matches the expression unique index; investor/firm ids are nullable.
	query = database.OnConflictDoNothing(query, "startup_id", "COALESCE(investor_id, '')", "COALESCE(firm_id, '')")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create matches batch")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create matches")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"count": len(matches)}).Debug("Created matches batch")
	return matches, nil
}

// Get retrieves a match by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("matches")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var match models.Match
	if err := r.db.GetContext(ctx, &match, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get match")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match")
	}

	return &match, nil
}

// ListByStartup retrieves all matches for a startup, best first
func (r *Repository) ListByStartup(ctx context.Context, startupID string) ([]models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.ListByStartup")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("matches")
	sb.Where(sb.Equal("startup_id", startupID))
	sb.OrderBy("match_score DESC", "created_at DESC")

	query, args := sb.Build()
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list matches by startup")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list matches")
	}

	return matches, nil
}

// ListByStartups retrieves matches across several startups. Used by the
// weight adapter to gather a user's full match history in one read.
func (r *Repository) ListByStartups(ctx context.Context, startupIDs []string) ([]models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.ListByStartups")
	defer span.End()

	if len(startupIDs) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("matches")
	sb.Where(sb.In("startup_id", idsToAny(startupIDs)...))

	query, args := sb.Build()
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list matches by startups")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list matches")
	}

	return matches, nil
}

// ListForDeal finds the matches a deal outcome correlates to: same startup
// and the deal's investor or firm. The OR applies only when both ids are
// present.
func (r *Repository) ListForDeal(ctx context.Context, startupID string, investorID, firmID *string) ([]models.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.ListForDeal")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("matches")

	switch {
	case investorID != nil && firmID != nil:
		sb.Where(
			sb.Equal("startup_id", startupID),
			sb.Or(sb.Equal("investor_id", *investorID), sb.Equal("firm_id", *firmID)),
		)
	case investorID != nil:
		sb.Where(sb.Equal("startup_id", startupID), sb.Equal("investor_id", *investorID))
	case firmID != nil:
		sb.Where(sb.Equal("startup_id", startupID), sb.Equal("firm_id", *firmID))
	default:
		return nil, nil
	}

	query, args := sb.Build()
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list matches for deal")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list matches")
	}

	return matches, nil
}

// UpdateStatus updates a match status from user action
func (r *Repository) UpdateStatus(ctx context.Context, id string, status string) error {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.UpdateStatus")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("matches")
	sb.Set(
		sb.Assign("status", status),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update match status")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update match status")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match %s not found", id))
	}

	return nil
}

// SetFeedback writes the merged feedback record and status in one update
func (r *Repository) SetFeedback(ctx context.Context, id string, status string, feedback models.UserFeedback) error {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.SetFeedback")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("matches")
	sb.Set(
		sb.Assign("status", status),
		sb.Assign("user_feedback", models.JSONBFeedback(feedback)),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to set match feedback")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to set match feedback")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match %s not found", id))
	}

	return nil
}

func idsToAny(ids []string) []any {
	result := make([]any, len(ids))
	for i, id := range ids {
		result[i] = id
	}
	return result
}

package document

import (
	"context"
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

const columns = "id, startup_id, source, name, description, content, created_at"

// Repository handles data-room and startup document persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new document repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create records a document's text fields for keyword mining
func (r *Repository) Create(ctx context.Context, document *models.Document) (*models.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "document.Repository.Create")
	defer span.End()

	if document.ID == "" {
		document.ID = uuid.New().String()
	}
	document.CreatedAt = time.Now().UTC()
	if document.Source == "" {
		document.Source = models.DocumentSourceStartup
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("documents")
	sb.Cols("id", "startup_id", "source", "name", "description", "content", "created_at")
	sb.Values(document.ID, document.StartupID, document.Source, document.Name, document.Description, document.Content, document.CreatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"document_id": document.ID}).Error("Failed to create document")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create document")
	}

	return document, nil
}

// ListByStartup retrieves every document uploaded for a startup
func (r *Repository) ListByStartup(ctx context.Context, startupID string) ([]models.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "document.Repository.ListByStartup")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns)
	sb.From("documents")
	sb.Where(sb.Equal("startup_id", startupID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var documents []models.Document
	if err := r.db.SelectContext(ctx, &documents, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list documents by startup")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list documents")
	}

	return documents, nil
}

package document

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	documentrepo "github.com/Ramsey-B/clover/internal/repositories/document"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var validate = validator.New()

// Register registers document routes nested under startups
func Register(g *echo.Group) {
	g.POST("/:id/documents", Create)
	g.GET("/:id/documents", ListByStartup)
}

// Create records a document's text fields for industry keyword mining
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "document_handler.Create")
	defer span.End()

	startupID := c.Param("id")

	var req models.CreateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*documentrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	document := &models.Document{
		StartupID:   startupID,
		Source:      req.Source,
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
	}

	created, err := repo.Create(ctx, document)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// ListByStartup returns every document recorded for a startup
func ListByStartup(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "document_handler.ListByStartup")
	defer span.End()

	startupID := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*documentrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	documents, err := repo.ListByStartup(ctx, startupID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, documents)
}

package firm

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	firmrepo "github.com/Ramsey-B/clover/internal/repositories/firm"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var validate = validator.New()

// Register registers investment firm routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.GET("/:id", Get)
	g.PUT("/:id", Update)
}

// Create creates a new investment firm
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "firm_handler.Create")
	defer span.End()

	var req models.CreateFirmRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*firmrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	firm := &models.InvestmentFirm{
		Name:             req.Name,
		Location:         req.Location,
		Sectors:          req.Sectors,
		Stages:           req.Stages,
		FirmType:         req.FirmType,
		CheckSizeMin:     req.CheckSizeMin,
		CheckSizeMax:     req.CheckSizeMax,
		TypicalCheckSize: req.TypicalCheckSize,
	}

	created, err := repo.Create(ctx, firm)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Get retrieves an investment firm by ID
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "firm_handler.Get")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*firmrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	firm, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, firm)
}

// List returns all investment firms
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "firm_handler.List")
	defer span.End()

	ctx, repo, err := ectoinject.GetContext[*firmrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	firms, err := repo.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, firms)
}

// Update applies a partial update to an investment firm
func Update(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "firm_handler.Update")
	defer span.End()

	id := c.Param("id")

	var req models.UpdateFirmRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*firmrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	updated, err := repo.Update(ctx, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

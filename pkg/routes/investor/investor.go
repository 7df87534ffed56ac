package investor

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	investorrepo "github.com/Ramsey-B/clover/internal/repositories/investor"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var validate = validator.New()

// Register registers investor routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.GET("/:id", Get)
	g.PUT("/:id", Update)
}

// Create creates a new investor profile
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "investor_handler.Create")
	defer span.End()

	var req models.CreateInvestorRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*investorrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	investor := &models.Investor{
		FirmID:            req.FirmID,
		Name:              req.Name,
		Location:          req.Location,
		Sectors:           req.Sectors,
		Stages:            req.Stages,
		FundingStage:      req.FundingStage,
		InvestorType:      req.InvestorType,
		CheckSizeMin:      req.CheckSizeMin,
		CheckSizeMax:      req.CheckSizeMax,
		TypicalInvestment: req.TypicalInvestment,
		IsActive:          true,
	}
	if req.IsActive != nil {
		investor.IsActive = *req.IsActive
	}

	created, err := repo.Create(ctx, investor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Get retrieves an investor by ID
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "investor_handler.Get")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*investorrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	investor, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, investor)
}

// List returns investors with paging
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "investor_handler.List")
	defer span.End()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	ctx, repo, err := ectoinject.GetContext[*investorrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	investors, err := repo.List(ctx, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, investors)
}

// Update applies a partial update to an investor profile
func Update(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "investor_handler.Update")
	defer span.End()

	id := c.Param("id")

	var req models.UpdateInvestorRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*investorrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	updated, err := repo.Update(ctx, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

package deal

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	dealrepo "github.com/Ramsey-B/clover/internal/repositories/deal"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var validate = validator.New()

// Register registers deal routes
func Register(g *echo.Group) {
	g.POST("/outcome", Outcome)
}

// Outcome records a deal outcome and propagates it to match history
// synchronously. The kafka consumer covers the normal path; this route exists
// for backfills and integrations without a broker.
func Outcome(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "deal_handler.Outcome")
	defer span.End()

	var req models.DealOutcomeRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*dealrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}
	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get matching engine")
	}

	deal := models.Deal{
		ID:         req.DealID,
		StartupID:  req.StartupID,
		InvestorID: req.InvestorID,
		FirmID:     req.FirmID,
		Status:     req.Status,
	}

	if err := repo.Upsert(ctx, &deal); err != nil {
		return err
	}
	if err := engine.ProcessDealOutcome(ctx, deal); err != nil {
		return err
	}

	if deal.Status == models.DealStatusWon || deal.Status == models.DealStatusLost {
		if ctx, emitter, emitErr := ectoinject.GetContext[*events.Emitter](ctx); emitErr == nil {
			_ = emitter.EmitDealFeedback(ctx, deal)
		}
	}

	return c.JSON(http.StatusAccepted, map[string]string{"deal_id": deal.ID, "status": deal.Status})
}

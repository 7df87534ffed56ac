package weights

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	ctxutil "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Register registers weight routes
func Register(g *echo.Group) {
	g.GET("", Get)
}

// Get returns the learned factor weights for the session user. Users without
// enough feedback history get the defaults.
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "weights_handler.Get")
	defer span.End()

	userID := ctxutil.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user id is required")
	}

	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get matching engine")
	}

	learned, err := engine.AdjustFromFeedback(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, learned)
}

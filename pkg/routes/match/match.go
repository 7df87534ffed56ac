package match

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/config"
	matchrepo "github.com/Ramsey-B/clover/internal/repositories/match"
	ctxutil "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/redis"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var validate = validator.New()

// RegisterStartupMatches registers match routes nested under startups
func RegisterStartupMatches(g *echo.Group) {
	g.POST("/:id/matches/generate", Generate)
	g.POST("/:id/matches", Save)
	g.GET("/:id/matches", ListByStartup)
}

// Register registers match routes
func Register(g *echo.Group) {
	g.PATCH("/:id/status", UpdateStatus)
	g.POST("/:id/feedback", Feedback)
}

// Generate scores all active investors against a startup and returns ranked
// results without persisting them. A per-startup lock keeps concurrent runs
// from doing duplicate scoring work.
func Generate(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Generate")
	defer span.End()

	startupID := c.Param("id")
	userID := ctxutil.GetUserID(ctx)

	req := models.GenerateMatchesRequest{}
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get matching engine")
	}
	ctx, cfg, err := ectoinject.GetContext[*config.Config](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get config")
	}
	ctx, locker, err := ectoinject.GetContext[*redis.Locker](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get locker")
	}

	weights := matching.DefaultWeights()
	if req.UseLearnedWeights && userID != "" {
		weights, err = engine.AdjustFromFeedback(ctx, userID)
		if err != nil {
			return err
		}
	}

	var results []models.MatchResult
	err = locker.WithLock(ctx, "generate:"+startupID, cfg.GenerationLockTTL, func() error {
		var genErr error
		results, genErr = engine.GenerateForStartup(ctx, startupID, weights, req.Limit)
		return genErr
	})
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			return httperror.NewHTTPError(http.StatusConflict, "match generation already in progress for this startup")
		}
		return err
	}

	if ctx, emitter, emitErr := ectoinject.GetContext[*events.Emitter](ctx); emitErr == nil {
		// Emission failures should not fail the request
		_ = emitter.EmitMatchesGenerated(ctx, startupID, userID, results)
	}

	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

// Save persists previously generated results as suggested matches
func Save(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Save")
	defer span.End()

	startupID := c.Param("id")
	userID := ctxutil.GetUserID(ctx)

	var req models.SaveMatchesRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, engine, err := ectoinject.GetContext[*matching.Engine](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get matching engine")
	}

	saved, err := engine.SaveResults(ctx, startupID, req.Results)
	if err != nil {
		return err
	}

	if ctx, emitter, emitErr := ectoinject.GetContext[*events.Emitter](ctx); emitErr == nil {
		_ = emitter.EmitMatchesSaved(ctx, startupID, userID, len(saved))
	}

	return c.JSON(http.StatusCreated, saved)
}

// ListByStartup returns a startup's saved matches, best first
func ListByStartup(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.ListByStartup")
	defer span.End()

	startupID := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*matchrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	matches, err := repo.ListByStartup(ctx, startupID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, matches)
}

// UpdateStatus records a user action on a match (saved, contacted, passed)
func UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.UpdateStatus")
	defer span.End()

	id := c.Param("id")

	var req models.UpdateMatchStatusRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*matchrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	if err := repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

// Feedback records explicit user feedback on a match. Deal-derived feedback
// recorded earlier is merged rather than overwritten.
func Feedback(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "match_handler.Feedback")
	defer span.End()

	id := c.Param("id")

	var req models.MatchFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[*matchrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	match, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	feedback := models.UserFeedback{}
	if match.UserFeedback != nil {
		feedback = match.UserFeedback.Data
	}
	now := time.Now().UTC()
	feedback.Merge(models.UserFeedback{
		Rating:    req.Rating,
		Reason:    req.Reason,
		Timestamp: &now,
	})

	if err := repo.SetFeedback(ctx, id, match.Status, feedback); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"rating": req.Rating})
}

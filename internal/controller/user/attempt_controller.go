package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/internal/controller"
	"github.com/lshigami/examprep/internal/middleware"
	"github.com/lshigami/examprep/internal/service"
)

// AttemptController serves the signed-in student's history, results and
// dashboard. Routes must sit behind middleware.RequireUser.
type AttemptController struct {
	attemptService        service.AttemptService
	recommendationService service.RecommendationService
	statsService          service.StatsService
	errors                *controller.ErrorResponder
}

func NewAttemptController(
	as service.AttemptService,
	rs service.RecommendationService,
	ss service.StatsService,
	errs *controller.ErrorResponder,
) *AttemptController {
	return &AttemptController{
		attemptService:        as,
		recommendationService: rs,
		statsService:          ss,
		errors:                errs,
	}
}

// ListAttempts godoc
// @Summary (User) List my attempts
// @Description Attempt history of the signed-in user, newest first.
// @Tags User - Tests & Attempts
// @Produce json
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.attemptService.ListAttempts(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		c.errors.Respond(ctx, "User ListAttempts", "Failed to retrieve attempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptResult godoc
// @Summary (User) Review an attempt
// @Description Per-question review, topic breakdown and pass status of one of my attempts.
// @Tags User - Tests & Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttemptResult(ctx *gin.Context) {
	result, err := c.attemptService.GetAttemptResult(ctx.Request.Context(), ctx.Param("attempt_id"), middleware.UserID(ctx))
	if err != nil {
		c.errors.Respond(ctx, "User GetAttemptResult", "Failed to retrieve attempt", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetRecommendations godoc
// @Summary (User) Study recommendations for an attempt
// @Description One piece of advice per weak topic, weakest first.
// @Tags User - Tests & Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {array} dto.RecommendationDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/{attempt_id}/recommendations [get]
func (c *AttemptController) GetRecommendations(ctx *gin.Context) {
	recs, err := c.recommendationService.GetRecommendations(ctx.Request.Context(), ctx.Param("attempt_id"), middleware.UserID(ctx))
	if err != nil {
		c.errors.Respond(ctx, "User GetRecommendations", "Failed to build recommendations", err)
		return
	}
	ctx.JSON(http.StatusOK, recs)
}

// GetDashboardStats godoc
// @Summary (User) Dashboard statistics
// @Tags User - Tests & Attempts
// @Produce json
// @Success 200 {object} dto.DashboardStatsDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats [get]
func (c *AttemptController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.statsService.GetDashboardStats(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		c.errors.Respond(ctx, "User GetDashboardStats", "Failed to fetch stats", err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

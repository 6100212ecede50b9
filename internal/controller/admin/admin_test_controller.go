package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/internal/controller"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminTestController serves the admin console. Routes must sit behind
// middleware.RequireAdmin.
type AdminTestController struct {
	adminTestService service.AdminTestService
	errors           *controller.ErrorResponder
}

func NewAdminTestController(adminTestService service.AdminTestService, errs *controller.ErrorResponder) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService, errors: errs}
}

// CreateTest godoc
// @Summary (Admin) Create a test with its questions
// @Description Every question needs at least two options, a correct index within them and positive marks.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test creation data including all questions"
// @Success 201 {object} dto.TestSummaryDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.errors.BadRequest(ctx, "Admin CreateTest", "Invalid request body", err)
		return
	}

	log.Info().Str("title", req.Title).Int("questionCount", len(req.Questions)).Msg("Admin CreateTest: Received request")
	test, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		c.errors.Respond(ctx, "Admin CreateTest", "Failed to create test", err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// GetOverview godoc
// @Summary (Admin) Platform overview
// @Description Student, attempt and test totals with the most recent attempts.
// @Tags Admin - Dashboard
// @Produce json
// @Success 200 {object} dto.AdminOverviewDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/overview [get]
func (c *AdminTestController) GetOverview(ctx *gin.Context) {
	overview, err := c.adminTestService.GetOverview(ctx.Request.Context())
	if err != nil {
		c.errors.Respond(ctx, "Admin GetOverview", "Failed to fetch overview", err)
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

// ListLeads godoc
// @Summary (Admin) Student leads
// @Tags Admin - Dashboard
// @Produce json
// @Param search query string false "Case-insensitive match on name or email"
// @Success 200 {array} dto.LeadDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/leads [get]
func (c *AdminTestController) ListLeads(ctx *gin.Context) {
	leads, err := c.adminTestService.ListLeads(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		c.errors.Respond(ctx, "Admin ListLeads", "Failed to fetch leads", err)
		return
	}
	ctx.JSON(http.StatusOK, leads)
}

package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/internal/controller"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/middleware"
	"github.com/lshigami/examprep/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
	errors                *controller.ErrorResponder
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService, errs *controller.ErrorResponder) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
		errors:                errs,
	}
}

// GetAllTests godoc
// @Summary (User) List available tests
// @Description Get a summary of every test, optionally filtered by subject.
// @Tags User - Tests & Attempts
// @Produce json
// @Param subject query string false "Subject filter, e.g. Mathematics"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.ListTests(ctx.Request.Context(), ctx.Query("subject"))
	if err != nil {
		c.errors.Respond(ctx, "User GetAllTests", "Failed to retrieve tests", err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (User) Get a test to sit
// @Description Get a test with its questions. Correct answers are never included.
// @Tags User - Tests & Attempts
// @Produce json
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.ExamDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	exam, err := c.userTestService.GetExam(ctx.Request.Context(), ctx.Param("test_id"))
	if err != nil {
		c.errors.Respond(ctx, "User GetTestDetails", "Failed to retrieve test", err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// SubmitTest godoc
// @Summary (User) Submit a finished exam session
// @Description Grades the answers against the stored questions and records a new attempt. Any client-side score is ignored.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Param submission body dto.SubmitTestRequest true "Test ID, answers keyed by question ID and elapsed seconds"
// @Success 200 {object} dto.SubmitTestResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 401 {object} dto.ErrorResponse "Sign-in required"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to submit test"
// @Router /submit-test [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.errors.BadRequest(ctx, "User SubmitTest", "Invalid request body", err)
		return
	}

	userID := middleware.UserID(ctx)
	log.Info().Str("testID", req.TestID).Str("userID", userID).Int("answerCount", len(req.Answers)).Msg("Received test submission")

	resp, err := c.testSubmissionService.SubmitAttempt(ctx.Request.Context(), req, userID)
	if err != nil {
		c.errors.Respond(ctx, "User SubmitTest", "Failed to submit test", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

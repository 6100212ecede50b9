package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/auth"
	"github.com/lshigami/examprep/internal/controller"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService  service.AuthService
	errors       *controller.ErrorResponder
	maxAge       int
	secureCookie bool
}

func NewAuthController(authService service.AuthService, errs *controller.ErrorResponder, cfg *config.Config) *AuthController {
	return &AuthController{
		authService:  authService,
		errors:       errs,
		maxAge:       int(cfg.Auth.SessionTTL.Seconds()),
		secureCookie: cfg.Auth.SecureCookie,
	}
}

// Register godoc
// @Summary Register a student account
// @Description Creates a student and signs them in by setting the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Account data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or user already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.errors.BadRequest(ctx, "Auth Register", "Missing required fields", err)
		return
	}
	session, err := c.authService.Register(ctx.Request.Context(), req)
	if errors.Is(err, service.ErrConflict) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User already exists"})
		return
	}
	if err != nil {
		c.errors.Respond(ctx, "Auth Register", "Registration failed", err)
		return
	}
	c.startSession(ctx, session)
}

// Login godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.errors.BadRequest(ctx, "Auth Login", "Missing required fields", err)
		return
	}
	session, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.errors.Respond(ctx, "Auth Login", "Login failed", err)
		return
	}
	c.startSession(ctx, session)
}

// Logout godoc
// @Summary Sign out
// @Description Clears the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.CookieName, "", -1, "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (c *AuthController) startSession(ctx *gin.Context, session *service.Session) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.CookieName, session.Token, c.maxAge, "/", "", c.secureCookie, true)
	log.Info().Str("userID", session.User.ID).Str("role", session.User.Role).Msg("Session started")
	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Role:    session.User.Role,
		Token:   session.Token,
	})
}

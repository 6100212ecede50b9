package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/service"
	"github.com/rs/zerolog/log"
)

// ErrorResponder writes service errors as dto.ErrorResponse bodies.
type ErrorResponder struct {
	hideDetails bool
}

func NewErrorResponder(cfg *config.Config) *ErrorResponder {
	return &ErrorResponder{hideDetails: cfg.Server.HideErrorDetails}
}

// StatusFor maps the service error taxonomy to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts the request with the status of err. Client errors carry the
// error text; internal errors carry fallback, with the cause in Details unless
// details are hidden.
func (r *ErrorResponder) Respond(ctx *gin.Context, op, fallback string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msgf("%s: Service error", op)
		resp := dto.ErrorResponse{Error: fallback}
		if !r.hideDetails {
			resp.Details = err.Error()
		}
		ctx.AbortWithStatusJSON(status, resp)
		return
	}
	log.Warn().Err(err).Int("status", status).Msgf("%s: Request rejected", op)
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

// BadRequest reports a body that could not be bound.
func (r *ErrorResponder) BadRequest(ctx *gin.Context, op, message string, err error) {
	log.Warn().Err(err).Msgf("%s: Failed to bind JSON", op)
	resp := dto.ErrorResponse{Error: message}
	if !r.hideDetails && err != nil {
		resp.Details = err.Error()
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

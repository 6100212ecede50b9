package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/internal/auth"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/rs/zerolog/log"
)

const claimsKey = "session_claims"

// SessionUser reads the session token from the session cookie or a Bearer
// header and, when it is valid, stores its claims on the context. Requests
// without a valid token pass through anonymously.
func SessionUser(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := tokenFromRequest(ctx)
		if raw == "" {
			ctx.Next()
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Debug().Err(err).Str("path", ctx.Request.URL.Path).Msg("Ignoring invalid session token")
			ctx.Next()
			return
		}
		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Claims returns the session of the request, or nil for anonymous requests.
func Claims(ctx *gin.Context) *auth.Claims {
	v, ok := ctx.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// UserID returns the session user id, or "" for anonymous requests.
func UserID(ctx *gin.Context) string {
	if claims := Claims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

// RequireUser rejects anonymous requests with 401. It must run after SessionUser.
func RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if Claims(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}
		ctx.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := Claims(ctx)
		if claims == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}
		if claims.Role != model.RoleAdmin {
			log.Warn().Str("userID", claims.UserID).Str("path", ctx.Request.URL.Path).Msg("Non-admin user denied")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden - Admin access required"})
			return
		}
		ctx.Next()
	}
}

package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/shared/apperr"
)

const (
	// ContextUser is the gin context key of the authenticated *entity.User.
	ContextUser = "user"
	// ContextToken is the gin context key of the exact token string presented.
	ContextToken = "token"

	bearerPrefix = "Bearer "
)

// Verifier resolves a token to the user owning it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*entity.User, error)
}

// Gate resolves the Authorization header value to a principal and the presented token.
// Missing headers, malformed tokens and revoked tokens all fail with apperr.ErrUnauthorized;
// only backing-store failures are returned as-is.
func Gate(ctx context.Context, v Verifier, authHeader string) (*entity.User, string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, "", apperr.ErrUnauthorized
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return nil, "", apperr.ErrUnauthorized
	}

	user, err := v.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			return nil, "", apperr.ErrUnauthorized
		}
		return nil, "", err
	}
	return user, token, nil
}

// AuthRequired returns a gin middleware that admits only requests carrying a live session token.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, token, err := Gate(c.Request.Context(), v, c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, apperr.ErrUnauthorized) {
				slog.Warn("authentication failed", "path", c.FullPath(), "remote_addr", c.ClientIP())
			}
			api.RespondError(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// CurrentUser returns the principal bound to the request by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

// CurrentToken returns the token presented with the request.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}

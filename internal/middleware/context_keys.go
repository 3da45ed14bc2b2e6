package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// contextKey is a private type for request context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorCtxKey  = contextKey("actor")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns nil when no logger was injected; callers fall back to
// slog.Default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok {
		return nil
	}
	return logger
}

// GetActorFromContext retrieves the authenticated actor set by the auth
// middleware. The boolean reports whether an actor was present.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

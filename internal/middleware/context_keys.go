package middleware

import (
	"context"
	"strings"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the calling actor's identifier in the
// Gin context. Using a custom type prevents collisions.
const actorKey = contextKey("actor")

// actorHeader carries the caller identifier recorded in audit fields.
const actorHeader = "X-Actor-ID"

// ActorMiddleware creates a Gin middleware handler that resolves the audit
// actor for the request. Requests without the header are attributed to the
// system actor.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(actorHeader))
		if actor == "" {
			actor = domain.SystemActor
		}

		c.Set(string(actorKey), actor)
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorFromContext retrieves the audit actor from the Gin context. It
// falls back to the system actor when the middleware did not run.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(actorKey); v != nil {
			if actor, ok := v.(string); ok && actor != "" {
				return actor
			}
		}
		return domain.SystemActor
	}

	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return domain.SystemActor
	}

	return actor
}

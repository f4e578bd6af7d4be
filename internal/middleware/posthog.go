package middleware

import (
	"net/http"
	"strings"

	"github.com/fxledger/fxledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never reported to analytics.
var untrackedPaths = map[string]struct{}{
	"/health": {},
}

// Analytics returns middleware that captures one event per successful API
// request, attributed to the audit actor.
func Analytics(client *utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Enabled() {
			c.Next()
			return
		}
		if _, skip := untrackedPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		route := c.FullPath()
		if route == "" {
			// unmatched request, nothing stable to name the event after
			return
		}
		event := strings.ReplaceAll(strings.TrimPrefix(route, "/"), "/", "_")

		props := map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}
		for _, p := range c.Params {
			props["param_"+p.Key] = p.Value
		}

		client.Capture(GetActorFromContext(c), event, props)
	}
}

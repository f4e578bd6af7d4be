package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the failure envelope every endpoint shares. Feed and
// ledger failures are always surfaced to the caller, never swallowed.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": status, "message": message},
	})
}

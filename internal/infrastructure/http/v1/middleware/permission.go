package middleware

import (
	"github.com/gin-gonic/gin"

	"dastarkhan/internal/core/apperror"
	appctx "dastarkhan/internal/core/context"
)

// RequireAdmin lets only administrators and staff through. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		if !user.IsAdministrator() {
			_ = c.Error(
				apperror.NewForbidden("administrator access required").
					WithDetail("status", user.Status),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

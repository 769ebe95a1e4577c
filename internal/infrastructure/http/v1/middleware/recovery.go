// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"dastarkhan/internal/core/apperror"
	appctx "dastarkhan/internal/core/context"
	"dastarkhan/pkg/logger"
)

// Recovery turns a panicking handler into a 500 rendered by ErrorHandler.
// The stack goes to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ctx := c.Request.Context()
			logger.Error(ctx, "handler panicked",
				"route", c.FullPath(),
				"method", c.Request.Method,
				"panic", rec,
				"stack", string(debug.Stack()),
			)

			appErr := apperror.NewInternal(fmt.Errorf("panic in %s: %v", c.FullPath(), rec))
			if rid := appctx.GetRequestID(ctx); rid != "" {
				appErr = appErr.WithDetail("request_id", rid)
			}
			_ = c.Error(appErr)
			c.Abort()
		}()
		c.Next()
	}
}

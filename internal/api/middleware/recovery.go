package middleware

import (
	"fmt"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/friendgraph/pkg/logger"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

// Recovery turns a panic into 500 {"reason":"Internal server error"}.
// Mount it before Sentry so the event is captured with the request scope
// and the panic is re-raised into this handler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
	})
}

// Sentry attaches a hub to every request and reports panics.
func Sentry() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})
}

package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/friendgraph/pkg/logger"
)

// Response is the body of every failed request and of a few plain acknowledgements.
type Response struct {
	Reason string `json:"reason"`
}

// Status is the body of acknowledgement-only endpoints.
type Status struct {
	Status string `json:"status"`
}

const internalReason = "Internal server error"

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK answers {"status":"ok"}.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, Status{Status: "ok"})
}

// Fail aborts with {"reason": reason}.
func Fail(c *gin.Context, status int, reason string) {
	c.AbortWithStatusJSON(status, Response{Reason: reason})
}

func BadRequest(c *gin.Context, reason string)   { Fail(c, http.StatusBadRequest, reason) }
func Unauthorized(c *gin.Context, reason string) { Fail(c, http.StatusUnauthorized, reason) }
func Forbidden(c *gin.Context, reason string)    { Fail(c, http.StatusForbidden, reason) }
func NotFound(c *gin.Context, reason string)     { Fail(c, http.StatusNotFound, reason) }
func Conflict(c *gin.Context, reason string)     { Fail(c, http.StatusConflict, reason) }

// InternalError logs err, reports it to Sentry and answers a generic 500.
// The error text never reaches the client.
func InternalError(c *gin.Context, err error) {
	logger.Error("request failed",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	_ = c.Error(err)
	Fail(c, http.StatusInternalServerError, internalReason)
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

const (
	viewerKey = "friendgraph.viewer"
	pageKey   = "friendgraph.page"

	reasonInvalidToken = "Invalid token"
)

// FailureRecorder counts rejected bearer tokens.
type FailureRecorder interface {
	ObserveAuthFailure(reason string)
}

// Auth resolves "Authorization: Bearer <token>" to a live user. Every failure
// answers 401 {"reason":"Invalid token"}.
func Auth(tokens service.TokenService, rec FailureRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, rec)
			return
		}
		u, err := tokens.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				reject(c, rec)
				return
			}
			response.InternalError(c, err)
			return
		}
		c.Set(viewerKey, u)
		c.Next()
	}
}

// CurrentUser returns the user set by Auth.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func reject(c *gin.Context, rec FailureRecorder) {
	if rec != nil {
		rec.ObserveAuthFailure("token")
	}
	response.Unauthorized(c, reasonInvalidToken)
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/pkg/response"
)

// RequireJSON rejects bodies that are not application/json.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			response.BadRequest(c, "Bad content type")
			return
		}
		c.Next()
	}
}

package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/response"
)

// Pagination parses ?limit=&offset=. Values that do not parse fall back to the
// defaults (5, 0); values out of range answer 401. Mount it before Auth so the
// window is checked before the token.
func Pagination() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", service.DefaultPageLimit)
		offset := queryInt(c, "offset", 0)
		page, err := service.NewPage(limit, offset)
		if err != nil {
			response.Unauthorized(c, "Invalid limit or offset")
			return
		}
		c.Set(pageKey, page)
		c.Next()
	}
}

// PageFrom returns the window set by Pagination, or the default one.
func PageFrom(c *gin.Context) service.Page {
	if v, ok := c.Get(pageKey); ok {
		if p, ok := v.(service.Page); ok {
			return p
		}
	}
	return service.Page{Limit: service.DefaultPageLimit}
}

func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

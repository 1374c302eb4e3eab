package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/friendgraph/config"
	_ "github.com/d60-Lab/friendgraph/docs"
	"github.com/d60-Lab/friendgraph/internal/api/handler"
	"github.com/d60-Lab/friendgraph/internal/api/middleware"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/metrics"
)

// Options carries the cross-cutting pieces the routes need besides the handler.
type Options struct {
	Tokens  service.TokenService
	Metrics *metrics.Metrics // nil disables /metrics
	Server  config.ServerConfig
	Limits  config.RateLimitConfig
	Tracing config.TracingConfig
}

// Setup 注册全部路由
func Setup(h *handler.Handler, opts Options) *gin.Engine {
	if opts.Server.Mode != "" {
		gin.SetMode(opts.Server.Mode)
	}
	r := gin.New()

	r.Use(middleware.Recovery(), middleware.Sentry())
	if opts.Tracing.Enabled {
		r.Use(otelgin.Middleware(opts.Tracing.ServiceName))
	}
	r.Use(middleware.Logger())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))

	if opts.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var rec middleware.FailureRecorder
	if opts.Metrics != nil {
		rec = opts.Metrics
	}
	auth := middleware.Auth(opts.Tokens, rec)
	page := middleware.Pagination()

	api := r.Group("/api", middleware.RateLimit(opts.Limits.RPS, opts.Limits.Burst))
	{
		api.GET("/ping", h.Ping)

		api.POST("/auth/register", middleware.RequireJSON(), h.Register)
		api.POST("/auth/sign-in/", middleware.RequireJSON(), h.SignIn)

		api.GET("/me/profile/", auth, h.GetMyProfile)
		api.PATCH("/me/profile/", auth, h.PatchMyProfile)
		api.POST("/me/updatePassword/", auth, h.UpdatePassword)
		api.GET("/profiles/:login", auth, h.GetProfile)

		api.GET("/countries", h.ListCountries)
		api.GET("/countries/:alpha2", h.GetCountry)

		api.POST("/friends/add/", auth, h.AddFriend)
		api.POST("/friends/remove/", auth, h.RemoveFriend)
		api.POST("/friends/", page, auth, h.ListFriends)

		api.POST("/posts/new", auth, h.CreatePost)
		api.GET("/posts/feed/:login", page, auth, h.Feed)
		api.GET("/posts/:id", auth, h.GetPost)
		api.POST("/posts/:id/like", auth, h.Like)
		api.POST("/posts/:id/dislike", auth, h.Dislike)
	}
	return r
}

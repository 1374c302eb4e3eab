package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/internal/api/handler"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/cache"
	"github.com/d60-Lab/friendgraph/pkg/database"
	"github.com/d60-Lab/friendgraph/pkg/logger"
	"github.com/d60-Lab/friendgraph/pkg/metrics"
	"github.com/d60-Lab/friendgraph/pkg/password"
	"github.com/d60-Lab/friendgraph/pkg/ratelimit"
	"github.com/d60-Lab/friendgraph/pkg/token"
	"github.com/d60-Lab/friendgraph/pkg/tracing"
)

// app holds the wired dependency graph shared by the subcommands.
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	rdb     *redis.Client
	metrics *metrics.Metrics

	tokens    service.TokenService
	countries service.CountryService
	handler   *handler.Handler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		// cache and sign-in limiter degrade to no-ops
		logger.Warn("redis unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		rdb = nil
	}

	users := repository.NewUserRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	m := metrics.New("friendgraph")
	codec := token.NewCodec(cfg.JWT.Secret, cfg.JWT.PreviousSecrets, cfg.JWT.TTL)
	tokens := service.NewTokenService(codec, users)
	limiter := ratelimit.NewAttemptLimiter(rdb, "signin", cfg.RateLimit.SignInAttempts, cfg.RateLimit.SignInWindow)
	policy := service.NewAccessPolicy(users, friendRepo)
	posts := service.NewPostService(postRepo, policy)
	countries := service.NewCountryService(countryRepo, cache.NewJSONCache(rdb, "friendgraph:countries:", cfg.Countries.CacheTTL))

	h := handler.NewHandler(handler.Services{
		Identity:  service.NewIdentityService(users, countryRepo, password.NewBcryptHasher(bcrypt.DefaultCost), tokens, limiter),
		Friends:   service.NewFriendshipService(friendRepo, users),
		Policy:    policy,
		Posts:     posts,
		Reactions: service.NewReactionService(posts, reactionRepo, tracing.Tracer("friendgraph/service"), m),
		Countries: countries,
		Failures:  m,
	})

	return &app{
		cfg:       cfg,
		db:        db,
		rdb:       rdb,
		metrics:   m,
		tokens:    tokens,
		countries: countries,
		handler:   h,
	}, nil
}

// prepare migrates the schema and seeds reference data when configured.
func (a *app) prepare(ctx context.Context) error {
	if err := database.Migrate(a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if !a.cfg.Countries.Seed {
		return nil
	}
	n, err := a.countries.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}
	if n > 0 {
		logger.Info("countries seeded", zap.Int64("rows", n))
	}
	return nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if err := database.Close(a.db); err != nil {
		logger.Warn("close database", zap.Error(err))
	}
}

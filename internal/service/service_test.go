package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/pkg/password"
	"github.com/d60-Lab/friendgraph/pkg/token"
)

const testPassword = "Abcdef1"

type testEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	countries repository.CountryRepository
	friends   repository.FriendRepository
	posts     repository.PostRepository
	reactions repository.ReactionRepository

	codec     *token.Codec
	tokens    TokenService
	identity  IdentityService
	friendSvc FriendshipService
	policy    AccessPolicy
	postSvc   PostService
	react     ReactionService
	recorder  *countingRecorder
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) ObserveReaction(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[kind]++
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Country{}, &model.User{}, &model.Friend{}, &model.Post{}, &model.Reaction{}))

	e := &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		countries: repository.NewCountryRepository(db),
		friends:   repository.NewFriendRepository(db),
		posts:     repository.NewPostRepository(db),
		reactions: repository.NewReactionRepository(db),
		codec:     token.NewCodec("test-secret", nil, 24*time.Hour),
		recorder:  &countingRecorder{counts: map[string]int{}},
	}
	_, err = e.countries.Seed(context.Background())
	require.NoError(t, err)

	e.tokens = NewTokenService(e.codec, e.users)
	e.identity = NewIdentityService(e.users, e.countries, password.NewBcryptHasher(bcrypt.MinCost), e.tokens, nil)
	e.friendSvc = NewFriendshipService(e.friends, e.users)
	e.policy = NewAccessPolicy(e.users, e.friends)
	e.postSvc = NewPostService(e.posts, e.policy)
	e.react = NewReactionService(e.postSvc, e.reactions, nil, e.recorder)
	return e
}

func (e *testEnv) register(t *testing.T, login string, public bool) *model.User {
	t.Helper()
	u, err := e.identity.Register(context.Background(), RegisterInput{
		Login:       login,
		Email:       login + "@example.com",
		Password:    testPassword,
		CountryCode: "RU",
		IsPublic:    public,
	})
	require.NoError(t, err)
	return u
}

//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/pkg/database"
)

// setupPostgres starts a throwaway PostgreSQL container and returns a migrated gorm handle.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("friendgraph"),
		postgres.WithUsername("friendgraph"),
		postgres.WithPassword("friendgraph"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.InitDB(&config.Config{Database: config.DatabaseConfig{
		Driver:       "postgres",
		DSN:          dsn,
		MaxOpenConns: 16,
		LogLevel:     "silent",
	}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostgresUniqueViolationsTranslate(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	require.NoError(t, users.Create(ctx, newUser("alice")))
	dup := newUser("alice")
	dup.Email = "other@example.com"
	assert.ErrorIs(t, users.Create(ctx, dup), ErrDuplicate)

	friends := NewFriendRepository(db)
	require.NoError(t, users.Create(ctx, newUser("bob")))
	require.NoError(t, friends.Add(ctx, "alice", "bob"))
	require.NoError(t, friends.Add(ctx, "alice", "bob"))
	n, err := friends.Count(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostgresConcurrentReactions(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	reactions := NewReactionRepository(db)

	require.NoError(t, users.Create(ctx, newUser("author")))
	post := &model.Post{ID: "p-1", Content: "hot", Author: "author", Tags: []string{}, CreatedAt: time.Now().UTC()}
	require.NoError(t, posts.Create(ctx, post))

	const viewers = 40
	for i := 0; i < viewers; i++ {
		require.NoError(t, users.Create(ctx, newUser(fmt.Sprintf("v%d", i))))
	}

	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		for _, kind := range []model.ReactionKind{model.ReactionDislike, model.ReactionLike, model.ReactionDislike, model.ReactionLike} {
			wg.Add(1)
			go func(login string, k model.ReactionKind) {
				defer wg.Done()
				_, err := reactions.ApplyAndRecount(ctx, post.ID, login, k)
				assert.NoError(t, err)
			}(fmt.Sprintf("v%d", i), kind)
		}
	}
	wg.Wait()

	final, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	counts, err := reactions.Count(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, counts.Likes, final.LikesCount)
	assert.Equal(t, counts.Dislikes, final.DislikesCount)
	assert.Equal(t, int64(viewers), final.LikesCount+final.DislikesCount)
}

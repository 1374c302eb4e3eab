package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/database"
	"github.com/d60-Lab/friendgraph/pkg/metrics"
	"github.com/d60-Lab/friendgraph/pkg/password"
	"github.com/d60-Lab/friendgraph/pkg/token"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// pct returns the p-quantile of vs.
func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// reactbench hammers one post with concurrent like/dislike flips and checks
// that the stored counters match a recount of the reaction rows.
//
//	N       reacting users (default 200)
//	ROUNDS  reactions per user (default 5)
//	CONC    workers (default 16)
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}
	ctx := context.Background()

	n := envInt("N", 200)
	rounds := envInt("ROUNDS", 5)
	conc := envInt("CONC", 16)

	users := repository.NewUserRepository(db)
	countries := repository.NewCountryRepository(db)
	friends := repository.NewFriendRepository(db)
	posts := repository.NewPostRepository(db)
	reactions := repository.NewReactionRepository(db)
	_ = must(countries.Seed(ctx))

	m := metrics.New("reactbench")
	tokens := service.NewTokenService(token.NewCodec(cfg.JWT.Secret, nil, cfg.JWT.TTL), users)
	identity := service.NewIdentityService(users, countries, password.NewBcryptHasher(bcrypt.MinCost), tokens, nil)
	policy := service.NewAccessPolicy(users, friends)
	postSvc := service.NewPostService(posts, policy)
	reactSvc := service.NewReactionService(postSvc, reactions, nil, m)

	// seed: one public author, n viewers
	run := uuid.New().String()[:8]
	register := func(login string, public bool) *model.User {
		return must(identity.Register(ctx, service.RegisterInput{
			Login:       login,
			Email:       login + "@bench.example.com",
			Password:    "Bench123",
			CountryCode: "RU",
			IsPublic:    public,
		}))
	}
	author := register("a-"+run, true)
	post := must(postSvc.Create(ctx, author, "bench "+run, []string{"bench"}))
	viewers := make([]*model.User, n)
	for i := range viewers {
		viewers[i] = register(fmt.Sprintf("v%d-%s", i, run), false)
	}

	type job struct {
		viewer *model.User
		kind   model.ReactionKind
	}
	feed := make(chan job, n*rounds)
	for r := 0; r < rounds; r++ {
		for i, v := range viewers {
			kind := model.ReactionLike
			if (i+r)%2 == 1 {
				kind = model.ReactionDislike
			}
			feed <- job{viewer: v, kind: kind}
		}
	}
	close(feed)

	if conc > n*rounds {
		conc = n * rounds
	}
	var (
		mu   sync.Mutex
		lat  = make([]time.Duration, 0, n*rounds)
		errs int
		wg   sync.WaitGroup
	)
	t0 := time.Now()
	for w := 0; w < conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range feed {
				st := time.Now()
				_, err := reactSvc.React(ctx, j.viewer, post.ID, j.kind)
				d := time.Since(st)
				mu.Lock()
				lat = append(lat, d)
				if err != nil {
					errs++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(t0)

	final := must(posts.GetByID(ctx, post.ID))
	recount := must(reactions.Count(ctx, post.ID))

	fmt.Printf("N=%d, ROUNDS=%d, CONC=%d, driver=%s\n", n, rounds, conc, cfg.Database.Driver)
	fmt.Printf("React total: %v, per op: %v, p50: %v, p95: %v, p99: %v, errors: %d\n",
		total, total/time.Duration(len(lat)), pct(lat, 0.50), pct(lat, 0.95), pct(lat, 0.99), errs)
	fmt.Printf("Counters: likes=%d dislikes=%d, recount: likes=%d dislikes=%d\n",
		final.LikesCount, final.DislikesCount, recount.Likes, recount.Dislikes)
	if final.LikesCount != recount.Likes || final.DislikesCount != recount.Dislikes {
		fmt.Println("MISMATCH: counters diverged from reaction rows")
		os.Exit(1)
	}
	if final.LikesCount+final.DislikesCount != int64(n) {
		fmt.Println("MISMATCH: expected one reaction row per viewer")
		os.Exit(1)
	}
	fmt.Println("OK")
}

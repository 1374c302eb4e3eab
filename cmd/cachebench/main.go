package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/internal/service"
	"github.com/d60-Lab/friendgraph/pkg/cache"
	"github.com/d60-Lab/friendgraph/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// region filters the benchmark cycles through; the empty filter lists everything.
var filters = [][]string{
	nil,
	{"Europe"},
	{"Asia"},
	{"Europe", "Asia"},
	{"Africa", "Americas", "Oceania"},
}

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

func run(ctx context.Context, svc service.CountryService, n int) []time.Duration {
	rng := rand.New(rand.NewSource(42))
	out := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		f := filters[rng.Intn(len(filters))]
		st := time.Now()
		if _, err := svc.List(ctx, f); err != nil {
			panic(err)
		}
		out = append(out, time.Since(st))
	}
	return out
}

// cachebench compares country listing straight from the database with the
// redis cache-aside path. REQUESTS sets the number of lookups per mode.
func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	n := 5000
	if s := os.Getenv("REQUESTS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			n = v
		}
	}

	countries := repository.NewCountryRepository(db)
	_ = must(countries.Seed(ctx))

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "redis %s unreachable: %v\n", cfg.Redis.Addr, err)
		os.Exit(1)
	}

	jc := cache.NewJSONCache(rdb, "cachebench:countries:", cfg.Countries.CacheTTL)
	if err := jc.Invalidate(ctx); err != nil {
		panic(err)
	}

	direct := run(ctx, service.NewCountryService(countries, nil), n)
	cached := run(ctx, service.NewCountryService(countries, jc), n)
	hits, misses := jc.Stats()

	fmt.Printf("REQUESTS=%d, driver=%s\n", n, cfg.Database.Driver)
	fmt.Printf("Direct  p50: %v, p95: %v, p99: %v\n", pct(direct, 0.50), pct(direct, 0.95), pct(direct, 0.99))
	fmt.Printf("Cached  p50: %v, p95: %v, p99: %v, hits=%d misses=%d, hit ratio=%.2f%%\n",
		pct(cached, 0.50), pct(cached, 0.95), pct(cached, 0.99), hits, misses,
		100*float64(hits)/math.Max(1, float64(hits+misses)))
}

package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/pkg/cache"
	"github.com/d60-Lab/friendgraph/pkg/logger"
)

// CountryService serves the read-only country reference set. Only this data
// is cached; users, edges and posts are always read from the store.
type CountryService interface {
	// List returns ErrValidation when the requested regions (duplicates
	// included) outnumber the distinct regions that matched.
	List(ctx context.Context, regions []string) ([]model.Country, error)
	Get(ctx context.Context, alpha2 string) (*model.Country, error)
	Seed(ctx context.Context) (int64, error)
}

type countryService struct {
	countries repository.CountryRepository
	cache     *cache.JSONCache
}

// NewCountryService accepts a nil cache.
func NewCountryService(countries repository.CountryRepository, c *cache.JSONCache) CountryService {
	return &countryService{countries: countries, cache: c}
}

func (s *countryService) List(ctx context.Context, regions []string) ([]model.Country, error) {
	key := "list:" + regionKey(regions)
	rows, err := cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) ([]model.Country, error) {
		return s.countries.List(ctx, regions)
	})
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return rows, nil
	}
	matched := make(map[string]struct{}, len(regions))
	for _, c := range rows {
		matched[c.Region] = struct{}{}
	}
	if len(matched) != len(regions) {
		return nil, ErrValidation
	}
	return rows, nil
}

func (s *countryService) Get(ctx context.Context, alpha2 string) (*model.Country, error) {
	c, err := cache.GetOrLoad(ctx, s.cache, "alpha2:"+alpha2, func(ctx context.Context) (*model.Country, error) {
		return s.countries.Get(ctx, alpha2)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *countryService) Seed(ctx context.Context) (int64, error) {
	n, err := s.countries.Seed(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warn("country cache invalidation failed", zap.Error(err))
		}
	}
	return n, nil
}

func regionKey(regions []string) string {
	if len(regions) == 0 {
		return "*"
	}
	sorted := append([]string(nil), regions...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

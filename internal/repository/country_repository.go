package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/friendgraph/internal/model"
)

type CountryRepository interface {
	// List returns countries ordered by alpha2; an empty regions slice means all.
	List(ctx context.Context, regions []string) ([]model.Country, error)
	Get(ctx context.Context, alpha2 string) (*model.Country, error)
	Exists(ctx context.Context, alpha2 string) (bool, error)
	// Seed inserts the built-in reference rows, skipping existing ones.
	Seed(ctx context.Context) (int64, error)
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository { return &countryRepository{db: db} }

func (r *countryRepository) List(ctx context.Context, regions []string) ([]model.Country, error) {
	q := r.db.WithContext(ctx).Order("alpha2")
	if len(regions) > 0 {
		q = q.Where("region IN ?", regions)
	}
	res := []model.Country{}
	err := q.Find(&res).Error
	return res, err
}

func (r *countryRepository) Get(ctx context.Context, alpha2 string) (*model.Country, error) {
	var c model.Country
	if err := r.db.WithContext(ctx).Where("alpha2 = ?", alpha2).Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *countryRepository) Exists(ctx context.Context, alpha2 string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Country{}).Where("alpha2 = ?", alpha2).Count(&cnt).Error
	return cnt > 0, err
}

func (r *countryRepository) Seed(ctx context.Context) (int64, error) {
	rows := make([]model.Country, len(seedCountries))
	copy(rows, seedCountries)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "alpha2"}}, DoNothing: true}).
		CreateInBatches(&rows, 100)
	return res.RowsAffected, res.Error
}

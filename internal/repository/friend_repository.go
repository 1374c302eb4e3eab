package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/friendgraph/internal/model"
)

type FriendRepository interface {
	Add(ctx context.Context, ownerLogin, friendLogin string) error
	Remove(ctx context.Context, ownerLogin, friendLogin string) error
	Exists(ctx context.Context, ownerLogin, friendLogin string) (bool, error)
	List(ctx context.Context, ownerLogin string, offset, limit int) ([]*model.Friend, error)
	Count(ctx context.Context, ownerLogin string) (int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository { return &friendRepository{db: db} }

func (r *friendRepository) Add(ctx context.Context, ownerLogin, friendLogin string) error {
	f := &model.Friend{ID: uuid.New().String(), OwnerLogin: ownerLogin, FriendLogin: friendLogin, CreatedAt: time.Now().UTC()}
	// 幂等：重复添加不报错，也不刷新 created_at
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "owner_login"}, {Name: "friend_login"}}, DoNothing: true}).
		Create(f).Error
}

// Remove is idempotent; the reverse edge is untouched.
func (r *friendRepository) Remove(ctx context.Context, ownerLogin, friendLogin string) error {
	return r.db.WithContext(ctx).
		Where("owner_login = ? AND friend_login = ?", ownerLogin, friendLogin).
		Delete(&model.Friend{}).Error
}

func (r *friendRepository) Exists(ctx context.Context, ownerLogin, friendLogin string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Friend{}).
		Where("owner_login = ? AND friend_login = ?", ownerLogin, friendLogin).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// List returns the newest edges first.
func (r *friendRepository) List(ctx context.Context, ownerLogin string, offset, limit int) ([]*model.Friend, error) {
	var res []*model.Friend
	err := r.db.WithContext(ctx).
		Where("owner_login = ?", ownerLogin).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *friendRepository) Count(ctx context.Context, ownerLogin string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Friend{}).Where("owner_login = ?", ownerLogin).Count(&cnt).Error
	return cnt, err
}

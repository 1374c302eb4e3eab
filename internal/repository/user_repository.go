package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/friendgraph/internal/model"
)

// profileColumns are the only columns a profile patch may write.
var profileColumns = []string{"country_code", "is_public", "phone", "image", "updated_at"}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// Taken reports whether any other user already holds login, email or phone.
	Taken(ctx context.Context, login, email string, phone *string) (bool, error)
	PhoneTaken(ctx context.Context, phone, exceptLogin string) (bool, error)
	UpdateProfile(ctx context.Context, u *model.User) error
	UpdatePasswordHash(ctx context.Context, login, hash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).Take(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) Taken(ctx context.Context, login, email string, phone *string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.User{}).Where("login = ? OR email = ?", login, email)
	if phone != nil {
		q = q.Or("phone = ?", *phone)
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) PhoneTaken(ctx context.Context, phone, exceptLogin string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("phone = ? AND login <> ?", phone, exceptLogin).
		Count(&cnt).Error
	return cnt > 0, err
}

// UpdateProfile writes the patchable columns of u, nil pointers included.
func (r *userRepository) UpdateProfile(ctx context.Context, u *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("login = ?", u.Login).
		Select(profileColumns).
		Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, login, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("login = ?", login).Update("password_hash", hash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

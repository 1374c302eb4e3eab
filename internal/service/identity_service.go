package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/pkg/logger"
	"github.com/d60-Lab/friendgraph/pkg/password"
)

// RegisterInput carries a registration request after JSON decoding.
type RegisterInput struct {
	Login       string
	Email       string
	Password    string
	CountryCode string
	IsPublic    bool
	Phone       *string
	Image       *string
}

// AttemptLimiter caps sign-in attempts per login.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// IdentityService 账号注册、登录与资料维护
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	SignIn(ctx context.Context, login, plain string) (string, error)
	PatchProfile(ctx context.Context, login string, patch ProfilePatch) (*model.User, error)
	ChangePassword(ctx context.Context, login, oldPlain, newPlain string) error
	CheckPasswordPolicy(plain string) bool
}

type identityService struct {
	users     repository.UserRepository
	countries repository.CountryRepository
	hasher    password.Hasher
	tokens    TokenService
	limiter   AttemptLimiter
}

// NewIdentityService accepts a nil limiter.
func NewIdentityService(users repository.UserRepository, countries repository.CountryRepository, hasher password.Hasher, tokens TokenService, limiter AttemptLimiter) IdentityService {
	return &identityService{users: users, countries: countries, hasher: hasher, tokens: tokens, limiter: limiter}
}

func (s *identityService) CheckPasswordPolicy(plain string) bool {
	return model.CheckPasswordPolicy(plain)
}

func (s *identityService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	u := &model.User{
		ID:          uuid.New().String(),
		Login:       in.Login,
		Email:       in.Email,
		CountryCode: in.CountryCode,
		IsPublic:    in.IsPublic,
		Phone:       in.Phone,
		Image:       in.Image,
	}
	if err := model.ValidateUser(u); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !model.CheckPasswordPolicy(in.Password) {
		return nil, ErrWeakPassword
	}

	taken, err := s.users.Taken(ctx, u.Login, u.Email, u.Phone)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}
	if err := s.requireCountry(ctx, u.CountryCode); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	logger.Info("user registered", zap.String("login", u.Login))
	return u, nil
}

func (s *identityService) SignIn(ctx context.Context, login, plain string) (string, error) {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, login)
		if err != nil {
			logger.Warn("sign-in limiter unavailable", zap.String("login", login), zap.Error(err))
		} else if !ok {
			return "", ErrTooManyAttempts
		}
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", err
	}
	if !s.hasher.Compare(u.PasswordHash, plain) {
		return "", ErrWrongPassword
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, login); err != nil {
			logger.Warn("sign-in limiter reset failed", zap.String("login", login), zap.Error(err))
		}
	}
	return s.tokens.Issue(u)
}

func (s *identityService) PatchProfile(ctx context.Context, login string, patch ProfilePatch) (*model.User, error) {
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if patch.Empty() {
		return u, nil
	}

	patch.Apply(u)
	if err := model.ValidateUser(u); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if patch.CountryCode != nil {
		if err := s.requireCountry(ctx, u.CountryCode); err != nil {
			return nil, err
		}
	}
	if patch.Phone.Set && u.Phone != nil {
		taken, err := s.users.PhoneTaken(ctx, *u.Phone, u.Login)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}

	u.UpdatedAt = time.Now().UTC()
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.users.GetByLogin(ctx, login)
}

// ChangePassword checks the policy before the old password, so a weak new
// password is reported even when the old one is also wrong.
func (s *identityService) ChangePassword(ctx context.Context, login, oldPlain, newPlain string) error {
	if !model.CheckPasswordPolicy(newPlain) {
		return ErrWeakPassword
	}
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !s.hasher.Compare(u.PasswordHash, oldPlain) {
		return ErrWrongPassword
	}
	hash, err := s.hasher.Hash(newPlain)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, login, hash); err != nil {
		return err
	}
	logger.Info("password rotated", zap.String("login", login))
	return nil
}

func (s *identityService) requireCountry(ctx context.Context, alpha2 string) error {
	ok, err := s.countries.Exists(ctx, alpha2)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCountry
	}
	return nil
}

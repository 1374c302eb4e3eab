package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
	"github.com/d60-Lab/friendgraph/pkg/token"
)

// TokenService issues bearer tokens and resolves them back to a live user.
type TokenService interface {
	Issue(u *model.User) (string, error)
	// Authenticate returns ErrInvalidToken for every failure: bad signature,
	// expiry, unknown login or a password hash that changed since issue.
	Authenticate(ctx context.Context, raw string) (*model.User, error)
}

type tokenService struct {
	codec *token.Codec
	users repository.UserRepository
}

func NewTokenService(codec *token.Codec, users repository.UserRepository) TokenService {
	return &tokenService{codec: codec, users: users}
}

func (s *tokenService) Issue(u *model.User) (string, error) {
	return s.codec.Issue(u.Login, u.PasswordHash)
}

func (s *tokenService) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByLogin(ctx, claims.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(claims.Password), []byte(u.PasswordHash)) != 1 {
		return nil, ErrInvalidToken
	}
	return u, nil
}

package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
)

// FriendshipService 好友关系（有向边）服务
type FriendshipService interface {
	// Add is idempotent. Adding yourself succeeds without creating an edge.
	Add(ctx context.Context, owner *model.User, friendLogin string) error
	Remove(ctx context.Context, owner *model.User, friendLogin string) error
	// IsRegistered reports whether owner has added viewer.
	IsRegistered(ctx context.Context, ownerLogin, viewerLogin string) (bool, error)
	List(ctx context.Context, owner *model.User, page Page) ([]*model.Friend, error)
}

type friendshipService struct {
	friends repository.FriendRepository
	users   repository.UserRepository
}

func NewFriendshipService(friends repository.FriendRepository, users repository.UserRepository) FriendshipService {
	return &friendshipService{friends: friends, users: users}
}

func (s *friendshipService) Add(ctx context.Context, owner *model.User, friendLogin string) error {
	if err := s.requireUser(ctx, friendLogin); err != nil {
		return err
	}
	if friendLogin == owner.Login {
		return nil
	}
	return s.friends.Add(ctx, owner.Login, friendLogin)
}

func (s *friendshipService) Remove(ctx context.Context, owner *model.User, friendLogin string) error {
	if err := s.requireUser(ctx, friendLogin); err != nil {
		return err
	}
	return s.friends.Remove(ctx, owner.Login, friendLogin)
}

func (s *friendshipService) IsRegistered(ctx context.Context, ownerLogin, viewerLogin string) (bool, error) {
	return s.friends.Exists(ctx, ownerLogin, viewerLogin)
}

func (s *friendshipService) List(ctx context.Context, owner *model.User, page Page) ([]*model.Friend, error) {
	items, err := s.friends.List(ctx, owner.Login, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.Friend{}
	}
	return items, nil
}

func (s *friendshipService) requireUser(ctx context.Context, login string) error {
	if _, err := s.users.GetByLogin(ctx, login); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
)

// AccessPolicy decides whether a viewer may see content owned by another user.
//
// A viewer sees the owner's content when they are the owner, when the owner is
// public, or when the owner has added the viewer as a friend. The edge is
// checked in the owner->viewer direction only: a viewer who added a private
// owner gains nothing until the owner adds them back.
type AccessPolicy interface {
	CanView(ctx context.Context, viewer, owner *model.User) (bool, error)
	// ResolveOwner loads ownerLogin and checks CanView. Denial and absence
	// both return ErrNotFound.
	ResolveOwner(ctx context.Context, viewer *model.User, ownerLogin string) (*model.User, error)
}

type accessPolicy struct {
	users   repository.UserRepository
	friends repository.FriendRepository
}

func NewAccessPolicy(users repository.UserRepository, friends repository.FriendRepository) AccessPolicy {
	return &accessPolicy{users: users, friends: friends}
}

func (p *accessPolicy) CanView(ctx context.Context, viewer, owner *model.User) (bool, error) {
	if viewer.Login == owner.Login || owner.IsPublic {
		return true, nil
	}
	return p.friends.Exists(ctx, owner.Login, viewer.Login)
}

func (p *accessPolicy) ResolveOwner(ctx context.Context, viewer *model.User, ownerLogin string) (*model.User, error) {
	if ownerLogin == viewer.Login {
		return viewer, nil
	}
	owner, err := p.users.GetByLogin(ctx, ownerLogin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ok, err := p.CanView(ctx, viewer, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return owner, nil
}

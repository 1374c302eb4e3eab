package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
)

// FeedSelf is the feed path segment that means "the viewer's own posts".
const FeedSelf = "my"

type PostService interface {
	Create(ctx context.Context, author *model.User, content string, tags []string) (*model.Post, error)
	// Get returns ErrNotFound when the post is missing or its author is hidden from viewer.
	Get(ctx context.Context, viewer *model.User, postID string) (*model.Post, error)
	Feed(ctx context.Context, viewer *model.User, login string, page Page) ([]*model.Post, error)
}

type postService struct {
	posts  repository.PostRepository
	policy AccessPolicy
}

func NewPostService(posts repository.PostRepository, policy AccessPolicy) PostService {
	return &postService{posts: posts, policy: policy}
}

func (s *postService) Create(ctx context.Context, author *model.User, content string, tags []string) (*model.Post, error) {
	if err := model.ValidatePost(content, tags); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if tags == nil {
		tags = []string{}
	}
	p := &model.Post{
		ID:        uuid.New().String(),
		Content:   content,
		Author:    author.Login,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Get(ctx context.Context, viewer *model.User, postID string) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.policy.ResolveOwner(ctx, viewer, p.Author); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Feed(ctx context.Context, viewer *model.User, login string, page Page) ([]*model.Post, error) {
	if login == FeedSelf {
		login = viewer.Login
	}
	owner, err := s.policy.ResolveOwner(ctx, viewer, login)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, owner.Login, page.Offset, page.Limit)
}

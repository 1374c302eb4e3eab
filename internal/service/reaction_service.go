package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/d60-Lab/friendgraph/internal/model"
	"github.com/d60-Lab/friendgraph/internal/repository"
)

// ReactionRecorder observes applied reactions.
type ReactionRecorder interface {
	ObserveReaction(kind string)
}

// ReactionService applies like/dislike and keeps the post counters equal to a
// recount of the reaction rows.
type ReactionService interface {
	React(ctx context.Context, viewer *model.User, postID string, kind model.ReactionKind) (*model.Post, error)
}

type reactionService struct {
	posts     PostService
	reactions repository.ReactionRepository
	tracer    trace.Tracer
	recorder  ReactionRecorder
}

// NewReactionService falls back to the global tracer when tracer is nil and
// accepts a nil recorder.
func NewReactionService(posts PostService, reactions repository.ReactionRepository, tracer trace.Tracer, recorder ReactionRecorder) ReactionService {
	if tracer == nil {
		tracer = otel.Tracer("friendgraph/service")
	}
	return &reactionService{posts: posts, reactions: reactions, tracer: tracer, recorder: recorder}
}

func (s *reactionService) React(ctx context.Context, viewer *model.User, postID string, kind model.ReactionKind) (*model.Post, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: reaction %q", ErrValidation, kind)
	}
	ctx, span := s.tracer.Start(ctx, "ReactionService.React", trace.WithAttributes(
		attribute.String("post.id", postID),
		attribute.String("reaction", string(kind)),
	))
	defer span.End()

	// visibility is checked against the author before anything is written
	if _, err := s.posts.Get(ctx, viewer, postID); err != nil {
		return nil, err
	}

	post, err := s.reactions.ApplyAndRecount(ctx, postID, viewer.Login, kind)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "apply reaction")
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("post.likes", post.LikesCount),
		attribute.Int64("post.dislikes", post.DislikesCount),
	)
	if s.recorder != nil {
		s.recorder.ObserveReaction(string(kind))
	}
	return post, nil
}

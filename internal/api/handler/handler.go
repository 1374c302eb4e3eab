package handler

import (
	"github.com/d60-Lab/friendgraph/internal/service"
)

// FailureRecorder counts rejected sign-ins.
type FailureRecorder interface {
	ObserveAuthFailure(reason string)
}

// Services groups everything the HTTP layer calls into.
type Services struct {
	Identity  service.IdentityService
	Friends   service.FriendshipService
	Policy    service.AccessPolicy
	Posts     service.PostService
	Reactions service.ReactionService
	Countries service.CountryService
	// Failures may be nil.
	Failures FailureRecorder
}

type Handler struct {
	identity  service.IdentityService
	friends   service.FriendshipService
	policy    service.AccessPolicy
	posts     service.PostService
	reactions service.ReactionService
	countries service.CountryService
	failures  FailureRecorder
}

func NewHandler(s Services) *Handler {
	return &Handler{
		identity:  s.Identity,
		friends:   s.Friends,
		policy:    s.Policy,
		posts:     s.Posts,
		reactions: s.Reactions,
		countries: s.Countries,
		failures:  s.Failures,
	}
}

func (h *Handler) authFailed(reason string) {
	if h.failures != nil {
		h.failures.ObserveAuthFailure(reason)
	}
}

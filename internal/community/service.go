// internal/community/service.go
package community

import (
	"context"
	"errors"

	"growingtogether/internal/membership"
	"growingtogether/pkg/docstore"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post content is required")
)

// MemberDirectory resolves author names for the feed. Satisfied by
// membership.Service.
type MemberDirectory interface {
	GetUser(ctx context.Context, id string) (*membership.User, error)
}

// Service manages the community feed.
type Service interface {
	CreatePost(ctx context.Context, authorID string, isAdmin bool, input CreateInput) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	SetPinned(ctx context.Context, postID string, pinned bool) error
}

func NewService(store docstore.Store, members MemberDirectory) Service {
	return newService(store, members)
}

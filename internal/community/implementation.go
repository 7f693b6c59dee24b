// internal/community/implementation.go
package community

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"growingtogether/pkg/docstore"
)

const postsCollection = "posts"

type service struct {
	store   docstore.Store
	members MemberDirectory
	now     func() time.Time
	newID   func() string
}

func newService(store docstore.Store, members MemberDirectory) *service {
	return &service{
		store:   store,
		members: members,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

func (s *service) CreatePost(ctx context.Context, authorID string, isAdmin bool, input CreateInput) (*Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyPost
	}

	authorName := "Unknown"
	if user, err := s.members.GetUser(ctx, authorID); err == nil {
		authorName = user.Username
	}

	photos := input.Photos
	if photos == nil {
		photos = []string{}
	}

	post := Post{
		ID:             s.newID(),
		AuthorID:       authorID,
		AuthorName:     authorName,
		Content:        input.Content,
		Photos:         photos,
		IsAnnouncement: input.IsAnnouncement && isAdmin,
		CreatedAt:      s.now(),
	}

	if err := s.store.Insert(ctx, postsCollection, post.ID, post); err != nil {
		return nil, fmt.Errorf("persisting post: %w", err)
	}
	return &post, nil
}

// ListPosts returns the feed newest first. Pinned posts are floated to
// the top regardless of age.
func (s *service) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := s.store.Find(ctx, postsCollection, docstore.Filter{}, docstore.FindOptions{
		SortBy:     "created_at",
		Descending: true,
		Limit:      100,
	}, &posts)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	ordered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Pinned {
			ordered = append(ordered, p)
		}
	}
	for _, p := range posts {
		if !p.Pinned {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *service) SetPinned(ctx context.Context, postID string, pinned bool) error {
	matched, err := s.store.UpdateOne(ctx, postsCollection, docstore.Filter{"id": postID}, docstore.Patch{
		"pinned": pinned,
	})
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	if matched == 0 {
		return ErrPostNotFound
	}
	return nil
}

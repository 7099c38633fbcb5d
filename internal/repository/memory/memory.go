// Package memory is an in-process implementation of the content
// repositories. It applies the same filters and orderings as the SQL
// repositories and is used for local development and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

type Store struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]models.Post
	items map[uuid.UUID]models.CollectionItem
	users map[uuid.UUID]models.User
	now   func() time.Time
}

func New() *Store {
	return &Store{
		posts: make(map[uuid.UUID]models.Post),
		items: make(map[uuid.UUID]models.CollectionItem),
		users: make(map[uuid.UUID]models.User),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for created/updated stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) SavePost(_ context.Context, post models.Post) (models.Post, error) {
	const op = "repository.memory.SavePost"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.postSlugTaken(post.Slug, uuid.Nil) {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	}

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := s.now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	s.posts[post.ID] = post
	return post, nil
}

func (s *Store) UpdatePost(_ context.Context, post models.Post) (models.Post, error) {
	const op = "repository.memory.UpdatePost"

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if s.postSlugTaken(post.Slug, post.ID) {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	}

	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = s.now()

	s.posts[post.ID] = post
	return post, nil
}

func (s *Store) DeletePost(_ context.Context, id uuid.UUID) error {
	const op = "repository.memory.DeletePost"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) GetPostByID(_ context.Context, id uuid.UUID) (models.Post, error) {
	const op = "repository.memory.GetPostByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return post, nil
}

func (s *Store) GetPostBySlug(_ context.Context, slug string, visibility models.Visibility) (models.Post, error) {
	const op = "repository.memory.GetPostBySlug"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.Slug != slug {
			continue
		}
		if visibility == models.VisibilityPublic && !post.Published {
			break
		}
		return post, nil
	}

	return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func (s *Store) ListPosts(
	_ context.Context,
	filter models.PostFilter,
	sort models.SortOrder,
	limit, offset int,
) ([]models.Post, int, error) {
	s.mu.RLock()
	matched := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		if filter.Matches(post) {
			matched = append(matched, post)
		}
	}
	s.mu.RUnlock()

	if sort == models.SortUpdated {
		slices.SortFunc(matched, models.ComparePostsByUpdated)
	} else {
		slices.SortFunc(matched, models.ComparePosts)
	}

	return window(matched, limit, offset), len(matched), nil
}

func (s *Store) postSlugTaken(slug string, except uuid.UUID) bool {
	for id, post := range s.posts {
		if id != except && post.Slug == slug {
			return true
		}
	}
	return false
}

func window[T any](all []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []T{}
	}

	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return slices.Clone(all[offset:end])
}

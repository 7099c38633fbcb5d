package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

func (s *Store) SaveCollectionItem(_ context.Context, item models.CollectionItem) (models.CollectionItem, error) {
	const op = "repository.memory.SaveCollectionItem"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.itemSlugTaken(item.Slug, uuid.Nil) {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := s.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	item.Tags = cloneTags(item.Tags)

	s.items[item.ID] = item
	return item, nil
}

func (s *Store) UpdateCollectionItem(_ context.Context, item models.CollectionItem) (models.CollectionItem, error) {
	const op = "repository.memory.UpdateCollectionItem"

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if s.itemSlugTaken(item.Slug, item.ID) {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	}

	item.AuthorID = existing.AuthorID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()
	item.Tags = cloneTags(item.Tags)

	s.items[item.ID] = item
	return item, nil
}

func (s *Store) DeleteCollectionItem(_ context.Context, id uuid.UUID) error {
	const op = "repository.memory.DeleteCollectionItem"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *Store) GetCollectionItemByID(_ context.Context, id uuid.UUID) (models.CollectionItem, error) {
	const op = "repository.memory.GetCollectionItemByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return item, nil
}

func (s *Store) GetCollectionItemBySlug(_ context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error) {
	const op = "repository.memory.GetCollectionItemBySlug"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Slug != slug {
			continue
		}
		if visibility == models.VisibilityPublic && !item.Published {
			break
		}
		return item, nil
	}

	return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func (s *Store) ListCollectionItems(
	_ context.Context,
	filter models.CollectionFilter,
	sort models.SortOrder,
	limit, offset int,
) ([]models.CollectionItem, int, error) {
	s.mu.RLock()
	matched := make([]models.CollectionItem, 0, len(s.items))
	for _, item := range s.items {
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}
	s.mu.RUnlock()

	if sort == models.SortUpdated {
		slices.SortFunc(matched, models.CompareCollectionItemsByUpdated)
	} else {
		slices.SortFunc(matched, models.CompareCollectionItems)
	}

	return window(matched, limit, offset), len(matched), nil
}

func (s *Store) ListCollectionTypes(_ context.Context) ([]models.CollectionType, error) {
	s.mu.RLock()
	seen := make(map[models.CollectionType]struct{})
	for _, item := range s.items {
		if item.Published {
			seen[item.Type] = struct{}{}
		}
	}
	s.mu.RUnlock()

	types := make([]models.CollectionType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b models.CollectionType) int {
		return a.TypeIndex() - b.TypeIndex()
	})

	return types, nil
}

func (s *Store) ListCollectionTags(_ context.Context) ([]string, error) {
	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, item := range s.items {
		if !item.Published {
			continue
		}
		for _, tag := range item.Tags {
			seen[tag] = struct{}{}
		}
	}
	s.mu.RUnlock()

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	return tags, nil
}

func (s *Store) itemSlugTaken(slug string, except uuid.UUID) bool {
	for id, item := range s.items {
		if id != except && item.Slug == slug {
			return true
		}
	}
	return false
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}

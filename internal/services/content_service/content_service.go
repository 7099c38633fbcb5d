package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	"github.com/zeyaddeeb/zeyaddeeb/internal/metrics"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/cache"
)

const (
	DefaultRelatedLimit  = 3
	DefaultFeaturedLimit = 6
)

// ErrQueryFailed marks a read that could not be answered by the store.
// Callers on the public path replace the result with an empty one.
var ErrQueryFailed = errors.New("content query failed")

type PostReader interface {
	GetPostBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, sort models.SortOrder, limit, offset int) ([]models.Post, int, error)
}

type CollectionReader interface {
	GetCollectionItemBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error)
	ListCollectionItems(ctx context.Context, filter models.CollectionFilter, sort models.SortOrder, limit, offset int) ([]models.CollectionItem, int, error)
	ListCollectionTypes(ctx context.Context) ([]models.CollectionType, error)
	ListCollectionTags(ctx context.Context) ([]string, error)
}

type PostQuery struct {
	Page     int
	PageSize int
	Search   string
}

type CollectionQuery struct {
	Page     int
	PageSize int
	Type     *models.CollectionType
	Tags     []string
	Search   string
	Featured *bool
}

// ContentService answers the read side of the site: post and collection
// listings, slug lookups and the collection taxonomy.
type ContentService struct {
	log   *slog.Logger
	posts PostReader
	items CollectionReader
	cache cache.Cache
}

func NewContentService(log *slog.Logger, posts PostReader, items CollectionReader, c cache.Cache) *ContentService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ContentService{log: log, posts: posts, items: items, cache: c}
}

// ListPosts returns one page of published posts, newest first.
func (s *ContentService) ListPosts(ctx context.Context, q PostQuery) (pagination.Page[models.Post], error) {
	const op = "content_service.ListPosts"

	page, pageSize := pagination.Normalize(q.Page, q.PageSize, pagination.DefaultPostsPageSize)
	meta := pagination.Paginate(page, pageSize, 0)

	posts, total, err := s.posts.ListPosts(ctx, models.PublicPostFilter(q.Search), models.SortDefault, pageSize, meta.Offset)
	if err != nil {
		return pagination.Empty[models.Post](page, pageSize), queryFailed(op, err)
	}

	return pagination.New(posts, total, page, pageSize), nil
}

// ListCollectionItems returns one page of published collection items.
func (s *ContentService) ListCollectionItems(ctx context.Context, q CollectionQuery) (pagination.Page[models.CollectionItem], error) {
	const op = "content_service.ListCollectionItems"

	page, pageSize := pagination.Normalize(q.Page, q.PageSize, pagination.DefaultCollectionPageSize)
	meta := pagination.Paginate(page, pageSize, 0)

	filter := models.PublicCollectionFilter()
	filter.Type = q.Type
	filter.Tags = q.Tags
	filter.Search = q.Search
	filter.Featured = q.Featured

	items, total, err := s.items.ListCollectionItems(ctx, filter, models.SortDefault, pageSize, meta.Offset)
	if err != nil {
		return pagination.Empty[models.CollectionItem](page, pageSize), queryFailed(op, err)
	}

	return pagination.New(items, total, page, pageSize), nil
}

// GetPostBySlug returns storage.ErrNotFound when no post matches slug at
// the requested visibility.
func (s *ContentService) GetPostBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.Post, error) {
	const op = "content_service.GetPostBySlug"

	post, err := s.posts.GetPostBySlug(ctx, slug, visibility)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Post{}, queryFailed(op, err)
	}

	return post, nil
}

func (s *ContentService) GetCollectionItemBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error) {
	const op = "content_service.GetCollectionItemBySlug"

	item, err := s.items.GetCollectionItemBySlug(ctx, slug, visibility)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.CollectionItem{}, queryFailed(op, err)
	}

	return item, nil
}

// GetRelatedPosts returns the newest published posts other than postID.
func (s *ContentService) GetRelatedPosts(ctx context.Context, postID uuid.UUID, limit int) ([]models.Post, error) {
	const op = "content_service.GetRelatedPosts"

	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	filter := models.PublicPostFilter("")
	filter.ExcludeID = postID

	posts, _, err := s.posts.ListPosts(ctx, filter, models.SortDefault, limit, 0)
	if err != nil {
		return []models.Post{}, queryFailed(op, err)
	}

	return posts, nil
}

// GetFeaturedCollectionItems returns the first published items in
// collection order. It does not restrict to featured=true; featured items
// come first only because of the ordering.
func (s *ContentService) GetFeaturedCollectionItems(ctx context.Context, limit int) ([]models.CollectionItem, error) {
	const op = "content_service.GetFeaturedCollectionItems"

	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	items, _, err := s.items.ListCollectionItems(ctx, models.PublicCollectionFilter(), models.SortDefault, limit, 0)
	if err != nil {
		return []models.CollectionItem{}, queryFailed(op, err)
	}

	return items, nil
}

// GetAllCollectionTypes returns the distinct types of published items in
// enum order.
func (s *ContentService) GetAllCollectionTypes(ctx context.Context) ([]models.CollectionType, error) {
	const op = "content_service.GetAllCollectionTypes"

	if cached, ok := s.cached(ctx, op, cache.KeyCollectionTypes); ok {
		types := make([]models.CollectionType, 0, len(cached))
		for _, t := range cached {
			types = append(types, models.CollectionType(t))
		}
		return types, nil
	}

	types, err := s.items.ListCollectionTypes(ctx)
	if err != nil {
		return []models.CollectionType{}, queryFailed(op, err)
	}

	raw := make([]string, 0, len(types))
	for _, t := range types {
		raw = append(raw, string(t))
	}
	s.store(ctx, op, cache.KeyCollectionTypes, raw)

	return types, nil
}

// GetAllCollectionTags returns the distinct tags of published items sorted
// ascending.
func (s *ContentService) GetAllCollectionTags(ctx context.Context) ([]string, error) {
	const op = "content_service.GetAllCollectionTags"

	if cached, ok := s.cached(ctx, op, cache.KeyCollectionTags); ok {
		return cached, nil
	}

	tags, err := s.items.ListCollectionTags(ctx)
	if err != nil {
		return []string{}, queryFailed(op, err)
	}

	s.store(ctx, op, cache.KeyCollectionTags, tags)

	return tags, nil
}

// InvalidateTaxonomy drops the cached types and tags after a collection write.
func (s *ContentService) InvalidateTaxonomy(ctx context.Context) {
	const op = "content_service.InvalidateTaxonomy"

	if err := s.cache.Delete(ctx, cache.KeyCollectionTypes, cache.KeyCollectionTags); err != nil {
		s.log.Warn("failed to invalidate taxonomy cache", slog.String("op", op), sl.Err(err))
	}
}

func (s *ContentService) cached(ctx context.Context, op, key string) ([]string, bool) {
	values, ok, err := s.cache.GetStrings(ctx, key)
	if err != nil {
		s.log.Warn("taxonomy cache read failed", slog.String("op", op), sl.Err(err))
		ok = false
	}

	result := "miss"
	if ok {
		result = "hit"
	}
	metrics.TaxonomyCacheLookups.WithLabelValues(key, result).Inc()

	return values, ok
}

func (s *ContentService) store(ctx context.Context, op, key string, values []string) {
	if err := s.cache.SetStrings(ctx, key, values); err != nil {
		s.log.Warn("taxonomy cache write failed", slog.String("op", op), sl.Err(err))
	}
}

func queryFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrQueryFailed, err)
}

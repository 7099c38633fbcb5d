package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/slug"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

type CollectionRepository interface {
	SaveCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error)
	UpdateCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error)
	DeleteCollectionItem(ctx context.Context, id uuid.UUID) error
	GetCollectionItemByID(ctx context.Context, id uuid.UUID) (models.CollectionItem, error)
	ListCollectionItems(ctx context.Context, filter models.CollectionFilter, sort models.SortOrder, limit, offset int) ([]models.CollectionItem, int, error)
}

// TaxonomyInvalidator is told when the set of types or tags may have changed.
type TaxonomyInvalidator interface {
	InvalidateTaxonomy(ctx context.Context)
}

type CollectionService struct {
	log        *slog.Logger
	repo       CollectionRepository
	policy     auth.Policy
	validate   *validator.Validate
	invalidate TaxonomyInvalidator
}

func NewCollectionService(
	log *slog.Logger,
	repo CollectionRepository,
	policy auth.Policy,
	validate *validator.Validate,
	invalidate TaxonomyInvalidator,
) *CollectionService {
	return &CollectionService{
		log:        log,
		repo:       repo,
		policy:     policy,
		validate:   validate,
		invalidate: invalidate,
	}
}

func (s *CollectionService) CreateCollectionItem(ctx context.Context, session *models.Session, in models.CollectionItemInput) (models.CollectionItem, error) {
	const op = "collection_service.CreateCollectionItem"

	log := s.log.With(slog.String("op", op))

	if err := auth.Authorize(s.policy, session, auth.ActionCollectionWrite); err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.build(&in)
	if err != nil {
		log.Warn("invalid collection item", sl.Err(err))
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}
	item.AuthorID = session.User.ID

	saved, err := s.repo.SaveCollectionItem(ctx, item)
	if err != nil {
		if errors.Is(err, storage.ErrSlugExists) {
			log.Warn("slug already taken", slog.String("slug", item.Slug))
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		log.Error("failed to save collection item", sl.Err(err))
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	s.taxonomyChanged(ctx)
	log.Info("collection item created", slog.String("id", saved.ID.String()), slog.String("type", string(saved.Type)))

	return saved, nil
}

// UpdateCollectionItem replaces every editable field of item id.
func (s *CollectionService) UpdateCollectionItem(ctx context.Context, session *models.Session, id uuid.UUID, in models.CollectionItemInput) (models.CollectionItem, error) {
	const op = "collection_service.UpdateCollectionItem"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	if err := auth.Authorize(s.policy, session, auth.ActionCollectionWrite); err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.build(&in)
	if err != nil {
		log.Warn("invalid collection item", sl.Err(err))
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}
	item.ID = id

	updated, err := s.repo.UpdateCollectionItem(ctx, item)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSlugExists):
			log.Warn("slug already taken", slog.String("slug", item.Slug))
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		case errors.Is(err, storage.ErrNotFound):
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		log.Error("failed to update collection item", sl.Err(err))
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	s.taxonomyChanged(ctx)
	log.Info("collection item updated")

	return updated, nil
}

func (s *CollectionService) DeleteCollectionItem(ctx context.Context, session *models.Session, id uuid.UUID) error {
	const op = "collection_service.DeleteCollectionItem"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	if err := auth.Authorize(s.policy, session, auth.ActionCollectionWrite); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteCollectionItem(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		log.Error("failed to delete collection item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.taxonomyChanged(ctx)
	log.Info("collection item deleted")

	return nil
}

func (s *CollectionService) GetCollectionItemForEdit(ctx context.Context, session *models.Session, id uuid.UUID) (models.CollectionItem, error) {
	const op = "collection_service.GetCollectionItemForEdit"

	if err := auth.Authorize(s.policy, session, auth.ActionCollectionWrite); err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.GetCollectionItemByID(ctx, id)
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *CollectionService) ListCollectionItemsForAdmin(
	ctx context.Context,
	session *models.Session,
	page, pageSize int,
	filter models.CollectionFilter,
) (pagination.Page[models.CollectionItem], error) {
	const op = "collection_service.ListCollectionItemsForAdmin"

	page, pageSize = pagination.Normalize(page, pageSize, pagination.DefaultCollectionPageSize)

	if err := auth.Authorize(s.policy, session, auth.ActionCollectionWrite); err != nil {
		return pagination.Empty[models.CollectionItem](page, pageSize), fmt.Errorf("%s: %w", op, err)
	}

	meta := pagination.Paginate(page, pageSize, 0)

	items, total, err := s.repo.ListCollectionItems(ctx, filter, models.SortUpdated, pageSize, meta.Offset)
	if err != nil {
		s.log.Error("failed to list collection items", slog.String("op", op), sl.Err(err))
		return pagination.Empty[models.CollectionItem](page, pageSize), fmt.Errorf("%s: %w", op, err)
	}

	return pagination.New(items, total, page, pageSize), nil
}

// build validates in and converts it to an item with defaults applied.
// Metadata is decoded strictly against the declared type.
func (s *CollectionService) build(in *models.CollectionItemInput) (models.CollectionItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Tags = cleanTags(in.Tags)

	if err := validation.Struct(s.validate, in); err != nil {
		return models.CollectionItem{}, err
	}

	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
		if in.Slug == "" {
			return models.CollectionItem{}, models.NewValidationError("slug could not be derived from title")
		}
	}

	metadata, err := models.DecodeMetadata(in.Type, in.Metadata, true)
	if err != nil {
		return models.CollectionItem{}, models.NewValidationError(fmt.Sprintf("metadata: %v", err))
	}

	gridSize := in.GridSize
	if gridSize == "" {
		gridSize = models.GridSizeMedium
	}

	return models.CollectionItem{
		Type:         in.Type,
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		URL:          in.URL,
		ImageURL:     in.ImageURL,
		ThumbnailURL: in.ThumbnailURL,
		AccentColor:  in.AccentColor,
		GridSize:     gridSize,
		DisplayOrder: in.DisplayOrder,
		Metadata:     metadata,
		Tags:         in.Tags,
		Featured:     in.Featured,
		Published:    in.Published,
	}, nil
}

func (s *CollectionService) taxonomyChanged(ctx context.Context) {
	if s.invalidate != nil {
		s.invalidate.InvalidateTaxonomy(ctx)
	}
}

// cleanTags trims tags and drops duplicates keeping the first occurrence.
// Blank tags are kept so validation can report them.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/slug"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

type PostRepository interface {
	SavePost(ctx context.Context, post models.Post) (models.Post, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, sort models.SortOrder, limit, offset int) ([]models.Post, int, error)
}

type PostService struct {
	log      *slog.Logger
	repo     PostRepository
	policy   auth.Policy
	validate *validator.Validate
	md       *markdown.Renderer
	now      func() time.Time
}

func NewPostService(
	log *slog.Logger,
	repo PostRepository,
	policy auth.Policy,
	validate *validator.Validate,
	md *markdown.Renderer,
) *PostService {
	return &PostService{
		log:      log,
		repo:     repo,
		policy:   policy,
		validate: validate,
		md:       md,
		now:      time.Now,
	}
}

// CreatePost stores a new post written by the signed-in admin. A missing
// slug is derived from the title and a missing excerpt from the content.
func (s *PostService) CreatePost(ctx context.Context, session *models.Session, in models.PostInput) (models.Post, error) {
	const op = "post_service.CreatePost"

	log := s.log.With(slog.String("op", op))

	if err := auth.Authorize(s.policy, session, auth.ActionPostWrite); err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.check(&in); err != nil {
		log.Warn("invalid post", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	post := models.Post{
		Title:      in.Title,
		Slug:       in.Slug,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		CoverImage: in.CoverImage,
		Published:  in.Published,
		AuthorID:   session.User.ID,
	}

	s.fillExcerpt(&post)

	if post.Published {
		publishedAt := s.now()
		if in.PublishedAt != nil {
			publishedAt = *in.PublishedAt
		}
		post.PublishedAt = &publishedAt
	}

	saved, err := s.repo.SavePost(ctx, post)
	if err != nil {
		if errors.Is(err, storage.ErrSlugExists) {
			log.Warn("slug already taken", slog.String("slug", post.Slug))
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		log.Error("failed to save post", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created", slog.String("id", saved.ID.String()), slog.String("slug", saved.Slug))

	return saved, nil
}

// UpdatePost replaces the editable fields of post id. Publishing a post
// that was never published stamps publishedAt; unpublishing keeps the
// existing stamp. A missing excerpt is derived from the content again.
func (s *PostService) UpdatePost(ctx context.Context, session *models.Session, id uuid.UUID, in models.PostInput) (models.Post, error) {
	const op = "post_service.UpdatePost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	if err := auth.Authorize(s.policy, session, auth.ActionPostWrite); err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.check(&in); err != nil {
		log.Warn("invalid post", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		log.Error("failed to load post", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	post := existing
	post.Title = in.Title
	post.Slug = in.Slug
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.CoverImage = in.CoverImage
	post.Published = in.Published

	s.fillExcerpt(&post)

	// A draft never gains a stamp; an unpublished post keeps its old one.
	switch {
	case in.Published && in.PublishedAt != nil:
		post.PublishedAt = in.PublishedAt
	case in.Published && existing.PublishedAt == nil:
		now := s.now()
		post.PublishedAt = &now
	}

	updated, err := s.repo.UpdatePost(ctx, post)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSlugExists):
			log.Warn("slug already taken", slog.String("slug", post.Slug))
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		case errors.Is(err, storage.ErrNotFound):
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		log.Error("failed to update post", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post updated")

	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, session *models.Session, id uuid.UUID) error {
	const op = "post_service.DeletePost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	if err := auth.Authorize(s.policy, session, auth.ActionPostWrite); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		log.Error("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post deleted")

	return nil
}

// GetPostForEdit returns a post regardless of its published flag.
func (s *PostService) GetPostForEdit(ctx context.Context, session *models.Session, id uuid.UUID) (models.Post, error) {
	const op = "post_service.GetPostForEdit"

	if err := auth.Authorize(s.policy, session, auth.ActionPostWrite); err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListPostsForAdmin lists drafts and published posts, most recently edited
// first.
func (s *PostService) ListPostsForAdmin(ctx context.Context, session *models.Session, page, pageSize int, search string) (pagination.Page[models.Post], error) {
	const op = "post_service.ListPostsForAdmin"

	page, pageSize = pagination.Normalize(page, pageSize, pagination.DefaultPostsPageSize)

	if err := auth.Authorize(s.policy, session, auth.ActionPostWrite); err != nil {
		return pagination.Empty[models.Post](page, pageSize), fmt.Errorf("%s: %w", op, err)
	}

	meta := pagination.Paginate(page, pageSize, 0)
	filter := models.PostFilter{Search: strings.TrimSpace(search)}

	posts, total, err := s.repo.ListPosts(ctx, filter, models.SortUpdated, pageSize, meta.Offset)
	if err != nil {
		s.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return pagination.Empty[models.Post](page, pageSize), fmt.Errorf("%s: %w", op, err)
	}

	return pagination.New(posts, total, page, pageSize), nil
}

// check validates in and fills the slug from the title when it is empty.
func (s *PostService) check(in *models.PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Excerpt = trimmedOrNil(in.Excerpt)
	in.CoverImage = trimmedOrNil(in.CoverImage)

	if err := validation.Struct(s.validate, in); err != nil {
		return err
	}

	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
		if in.Slug == "" {
			return models.NewValidationError("slug could not be derived from title")
		}
	}

	return nil
}

// fillExcerpt derives the excerpt from the content when none was given.
func (s *PostService) fillExcerpt(post *models.Post) {
	if post.Excerpt != nil {
		return
	}
	if excerpt := s.md.Excerpt(post.Content); excerpt != "" {
		post.Excerpt = &excerpt
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

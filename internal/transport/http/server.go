package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	"github.com/zeyaddeeb/zeyaddeeb/internal/metrics"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/response"

	_ "github.com/zeyaddeeb/zeyaddeeb/docs"
)

type ContentService interface {
	ListPosts(ctx context.Context, q content.PostQuery) (pagination.Page[models.Post], error)
	ListCollectionItems(ctx context.Context, q content.CollectionQuery) (pagination.Page[models.CollectionItem], error)
	GetPostBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.Post, error)
	GetCollectionItemBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error)
	GetRelatedPosts(ctx context.Context, postID uuid.UUID, limit int) ([]models.Post, error)
	GetFeaturedCollectionItems(ctx context.Context, limit int) ([]models.CollectionItem, error)
	GetAllCollectionTypes(ctx context.Context) ([]models.CollectionType, error)
	GetAllCollectionTags(ctx context.Context) ([]string, error)
}

type PostService interface {
	CreatePost(ctx context.Context, session *models.Session, in models.PostInput) (models.Post, error)
	UpdatePost(ctx context.Context, session *models.Session, id uuid.UUID, in models.PostInput) (models.Post, error)
	DeletePost(ctx context.Context, session *models.Session, id uuid.UUID) error
	GetPostForEdit(ctx context.Context, session *models.Session, id uuid.UUID) (models.Post, error)
	ListPostsForAdmin(ctx context.Context, session *models.Session, page, pageSize int, search string) (pagination.Page[models.Post], error)
}

type CollectionService interface {
	CreateCollectionItem(ctx context.Context, session *models.Session, in models.CollectionItemInput) (models.CollectionItem, error)
	UpdateCollectionItem(ctx context.Context, session *models.Session, id uuid.UUID, in models.CollectionItemInput) (models.CollectionItem, error)
	DeleteCollectionItem(ctx context.Context, session *models.Session, id uuid.UUID) error
	GetCollectionItemForEdit(ctx context.Context, session *models.Session, id uuid.UUID) (models.CollectionItem, error)
	ListCollectionItemsForAdmin(ctx context.Context, session *models.Session, page, pageSize int, filter models.CollectionFilter) (pagination.Page[models.CollectionItem], error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, models.User, error)
	Logout(ctx context.Context, token string) error
	ParseToken(ctx context.Context, token string) (models.TokenMeta, error)
	GetSession(ctx context.Context, userID uuid.UUID) (*models.Session, error)
	SessionFromToken(ctx context.Context, token string) (*models.Session, error)
}

type Options struct {
	// BaseURL is the public site address used in the sitemap and robots.txt.
	BaseURL        string
	RequestTimeout time.Duration
	Markdown       *markdown.Renderer
	HealthCheck    func(ctx context.Context) error
}

type Routers struct {
	log               *slog.Logger
	ContentService    ContentService
	PostService       PostService
	CollectionService CollectionService
	AuthService       AuthService
	opts              Options
}

func NewRouter(
	log *slog.Logger,
	contentService ContentService,
	postService PostService,
	collectionService CollectionService,
	authService AuthService,
	opts Options,
) *Routers {
	if opts.Markdown == nil {
		opts.Markdown = markdown.New()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}

	return &Routers{
		log:               log,
		ContentService:    contentService,
		PostService:       postService,
		CollectionService: collectionService,
		AuthService:       authService,
		opts:              opts,
	}
}

var ErrInvalidUUID = errors.New("not valid UUID")

// resource holds the not-found and conflict bodies of one content kind.
type resource struct {
	notFound response.ErrorResponse
	conflict response.ErrorResponse
}

var (
	postResource       = resource{notFound: response.ErrPostNotFound, conflict: response.ErrPostSlugExists}
	collectionResource = resource{notFound: response.ErrCollectionItemNotFound, conflict: response.ErrCollectionSlugExists}
)

func (r *Routers) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), r.opts.RequestTimeout)
}

// writeError maps service errors to HTTP statuses.
func (r *Routers) writeError(c echo.Context, log *slog.Logger, err error, res resource) error {
	var verr *models.ValidationError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, response.ValidationFailed(verr.Errors))
	case errors.Is(err, auth.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, res.notFound)
	case errors.Is(err, storage.ErrSlugExists):
		return c.JSON(http.StatusConflict, res.conflict)
	}

	log.Error("request failed", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// softFail records a public read that is answered with an empty result.
func (r *Routers) softFail(log *slog.Logger, operation string, err error) {
	log.Error("content query failed, serving empty result",
		slog.String("operation", operation),
		sl.Err(err),
	)
	metrics.ContentQueryFailures.WithLabelValues(operation).Inc()
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}
	return id, nil
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /healthz [get]
func (r *Routers) Health(c echo.Context) error {
	if r.opts.HealthCheck != nil {
		ctx, cancel := r.requestContext(c)
		defer cancel()

		if err := r.opts.HealthCheck(ctx); err != nil {
			r.log.Warn("health check failed", sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails("unavailable", "storage is not reachable"))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{"state": "ok"}))
}

package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/response"
)

// ListPosts godoc
// @Summary List published posts
// @Description Returns one page of published posts, newest first. A storage failure yields an empty page.
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Posts per page" default(10)
// @Param search query string false "Case-insensitive search in title, content and excerpt"
// @Success 200 {object} response.Response{data=pagination.Page[models.Post]}
// @Router /api/v1/posts [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"

	log := r.log.With(
		slog.String("op", op),
	)

	q := content.PostQuery{
		Page:     pagination.ParsePage(c.QueryParam("page")),
		PageSize: pagination.ParsePageSize(c.QueryParam("page_size"), pagination.DefaultPostsPageSize),
		Search:   c.QueryParam("search"),
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	page, err := r.ContentService.ListPosts(ctx, q)
	if err != nil {
		r.softFail(log, "list_posts", err)
		page = pagination.Empty[models.Post](q.Page, q.PageSize)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// GetPost godoc
// @Summary Get a published post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response{data=dto.PostDetailResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/posts/{slug} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	post, err := r.ContentService.GetPostBySlug(ctx, c.Param("slug"), models.VisibilityPublic)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.softFail(log, "get_post", err)
		}
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	html, err := r.opts.Markdown.Render(post.Content)
	if err != nil {
		log.Warn("failed to render post content", sl.Err(err))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.PostDetailResponse{
		Post:        post,
		ContentHTML: html,
	}))
}

// GetRelatedPosts godoc
// @Summary Related posts
// @Description Returns the newest published posts other than the given one.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Param limit query int false "Maximum number of posts" default(3)
// @Success 200 {object} response.Response{data=[]models.Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/posts/{slug}/related [get]
func (r *Routers) GetRelatedPosts(c echo.Context) error {
	const op = "http.routers.GetRelatedPosts"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	post, err := r.ContentService.GetPostBySlug(ctx, c.Param("slug"), models.VisibilityPublic)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.softFail(log, "get_post", err)
		}
		return c.JSON(http.StatusNotFound, response.ErrPostNotFound)
	}

	related, err := r.ContentService.GetRelatedPosts(ctx, post.ID, queryLimit(c, content.DefaultRelatedLimit))
	if err != nil {
		r.softFail(log, "related_posts", err)
		related = []models.Post{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(related))
}

// queryLimit reads ?limit, falling back to def and capping at the max page size.
func queryLimit(c echo.Context, def int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		return def
	}
	return min(limit, pagination.MaxPageSize)
}

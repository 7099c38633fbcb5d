package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/response"
)

// AdminListPosts godoc
// @Summary List all posts
// @Description Drafts included, most recently edited first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Posts per page" default(10)
// @Param search query string false "Search term"
// @Success 200 {object} response.Response{data=pagination.Page[models.Post]}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/admin/posts [get]
func (r *Routers) AdminListPosts(c echo.Context) error {
	const op = "http.routers.AdminListPosts"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	page, err := r.PostService.ListPostsForAdmin(ctx, currentSession(c),
		pagination.ParsePage(c.QueryParam("page")),
		pagination.ParsePageSize(c.QueryParam("page_size"), pagination.DefaultPostsPageSize),
		c.QueryParam("search"),
	)
	if err != nil {
		return r.writeError(c, log, err, postResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// AdminGetPost godoc
// @Summary Get a post for editing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID" format(uuid)
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/posts/{id} [get]
func (r *Routers) AdminGetPost(c echo.Context) error {
	const op = "http.routers.AdminGetPost"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	post, err := r.PostService.GetPostForEdit(ctx, currentSession(c), id)
	if err != nil {
		return r.writeError(c, log, err, postResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// CreatePost godoc
// @Summary Create a post
// @Description An empty slug is derived from the title. Publishing without published_at stamps the current time.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PostInput true "Post"
// @Success 201 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/admin/posts [post]
func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	var in models.PostInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	post, err := r.PostService.CreatePost(ctx, currentSession(c), in)
	if err != nil {
		return r.writeError(c, log, err, postResource)
	}

	log.Info("post created", slog.String("id", post.ID.String()), slog.String("slug", post.Slug))

	return c.JSON(http.StatusCreated, response.SuccessResponse(post))
}

// UpdatePost godoc
// @Summary Replace a post
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID" format(uuid)
// @Param request body models.PostInput true "Post"
// @Success 200 {object} response.Response{data=models.Post}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/admin/posts/{id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var in models.PostInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	post, err := r.PostService.UpdatePost(ctx, currentSession(c), id, in)
	if err != nil {
		return r.writeError(c, log, err, postResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// DeletePost godoc
// @Summary Delete a post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/posts/{id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	if err := r.PostService.DeletePost(ctx, currentSession(c), id); err != nil {
		return r.writeError(c, log, err, postResource)
	}

	log.Info("post deleted", slog.String("id", id.String()))

	return c.NoContent(http.StatusNoContent)
}

// AdminListCollection godoc
// @Summary List all collection items
// @Description Drafts included, most recently edited first. Accepts the same filters as the public listing.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(12)
// @Param type query string false "Collection type"
// @Param tags query string false "Comma separated tags"
// @Param search query string false "Search term"
// @Param featured query bool false "Featured flag"
// @Success 200 {object} response.Response{data=pagination.Page[models.CollectionItem]}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/v1/admin/collection [get]
func (r *Routers) AdminListCollection(c echo.Context) error {
	const op = "http.routers.AdminListCollection"

	log := r.log.With(
		slog.String("op", op),
	)

	filter, msg := collectionFilterParams(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", msg))
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	page, err := r.CollectionService.ListCollectionItemsForAdmin(ctx, currentSession(c),
		pagination.ParsePage(c.QueryParam("page")),
		pagination.ParsePageSize(c.QueryParam("page_size"), pagination.DefaultCollectionPageSize),
		filter,
	)
	if err != nil {
		return r.writeError(c, log, err, collectionResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// AdminGetCollectionItem godoc
// @Summary Get a collection item for editing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID" format(uuid)
// @Success 200 {object} response.Response{data=models.CollectionItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/collection/{id} [get]
func (r *Routers) AdminGetCollectionItem(c echo.Context) error {
	const op = "http.routers.AdminGetCollectionItem"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	item, err := r.CollectionService.GetCollectionItemForEdit(ctx, currentSession(c), id)
	if err != nil {
		return r.writeError(c, log, err, collectionResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// CreateCollectionItem godoc
// @Summary Create a collection item
// @Description Metadata must match the shape of the declared type.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CollectionItemRequest true "Collection item"
// @Success 201 {object} response.Response{data=models.CollectionItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/admin/collection [post]
func (r *Routers) CreateCollectionItem(c echo.Context) error {
	const op = "http.routers.CreateCollectionItem"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CollectionItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	item, err := r.CollectionService.CreateCollectionItem(ctx, currentSession(c), req.ToInput())
	if err != nil {
		return r.writeError(c, log, err, collectionResource)
	}

	log.Info("collection item created", slog.String("id", item.ID.String()), slog.String("slug", item.Slug))

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// UpdateCollectionItem godoc
// @Summary Replace a collection item
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID" format(uuid)
// @Param request body dto.CollectionItemRequest true "Collection item"
// @Success 200 {object} response.Response{data=models.CollectionItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/admin/collection/{id} [put]
func (r *Routers) UpdateCollectionItem(c echo.Context) error {
	const op = "http.routers.UpdateCollectionItem"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var req dto.CollectionItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	item, err := r.CollectionService.UpdateCollectionItem(ctx, currentSession(c), id, req.ToInput())
	if err != nil {
		return r.writeError(c, log, err, collectionResource)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// DeleteCollectionItem godoc
// @Summary Delete a collection item
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Item ID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/collection/{id} [delete]
func (r *Routers) DeleteCollectionItem(c echo.Context) error {
	const op = "http.routers.DeleteCollectionItem"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	if err := r.CollectionService.DeleteCollectionItem(ctx, currentSession(c), id); err != nil {
		return r.writeError(c, log, err, collectionResource)
	}

	log.Info("collection item deleted", slog.String("id", id.String()))

	return c.NoContent(http.StatusNoContent)
}

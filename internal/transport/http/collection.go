package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/response"
)

const (
	minColumns = 2
	maxColumns = 5
)

// collectionFilterParams reads type, tags, search and featured from the query
// string. It reports a user-facing message when a value is malformed.
func collectionFilterParams(c echo.Context) (models.CollectionFilter, string) {
	var filter models.CollectionFilter

	if raw := strings.TrimSpace(c.QueryParam("type")); raw != "" && raw != "all" {
		t := models.CollectionType(raw)
		if !t.Valid() {
			return filter, "unknown collection type: " + raw
		}
		filter.Type = &t
	}

	filter.Tags = splitTags(c.QueryParam("tags"))
	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, "featured must be true or false"
		}
		filter.Featured = &featured
	}

	return filter, ""
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ListCollection godoc
// @Summary List published collection items
// @Description Returns one page of published items in collection order, each with its grid layout. A storage failure yields an empty page.
// @Tags collection
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(12)
// @Param type query string false "Collection type"
// @Param tags query string false "Comma separated tags, any of which must match"
// @Param search query string false "Case-insensitive search in title and description"
// @Param featured query bool false "Only featured or only non-featured items"
// @Param columns query int false "Uniform grid with 2 to 5 columns"
// @Success 200 {object} response.Response{data=dto.CollectionPageResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/collection [get]
func (r *Routers) ListCollection(c echo.Context) error {
	const op = "http.routers.ListCollection"

	log := r.log.With(
		slog.String("op", op),
	)

	filter, msg := collectionFilterParams(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", msg))
	}

	columns := 0
	if raw := c.QueryParam("columns"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minColumns || n > maxColumns {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "columns must be between 2 and 5"))
		}
		columns = n
	}

	q := content.CollectionQuery{
		Page:     pagination.ParsePage(c.QueryParam("page")),
		PageSize: pagination.ParsePageSize(c.QueryParam("page_size"), pagination.DefaultCollectionPageSize),
		Type:     filter.Type,
		Tags:     filter.Tags,
		Search:   filter.Search,
		Featured: filter.Featured,
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	page, err := r.ContentService.ListCollectionItems(ctx, q)
	if err != nil {
		r.softFail(log, "list_collection", err)
		page = pagination.Empty[models.CollectionItem](q.Page, q.PageSize)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCollectionPage(page, columns)))
}

// FeaturedCollection godoc
// @Summary Featured collection items
// @Description Returns the first published items in collection order. Featured items sort first but are not the only ones returned.
// @Tags collection
// @Produce json
// @Param limit query int false "Maximum number of items" default(6)
// @Success 200 {object} response.Response{data=[]dto.CollectionItemResponse}
// @Router /api/v1/collection/featured [get]
func (r *Routers) FeaturedCollection(c echo.Context) error {
	const op = "http.routers.FeaturedCollection"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	items, err := r.ContentService.GetFeaturedCollectionItems(ctx, queryLimit(c, content.DefaultFeaturedLimit))
	if err != nil {
		r.softFail(log, "featured_collection", err)
		items = []models.CollectionItem{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCollectionItems(items)))
}

// CollectionTypes godoc
// @Summary Collection types in use
// @Tags collection
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/collection/types [get]
func (r *Routers) CollectionTypes(c echo.Context) error {
	const op = "http.routers.CollectionTypes"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	types, err := r.ContentService.GetAllCollectionTypes(ctx)
	if err != nil {
		r.softFail(log, "collection_types", err)
		types = []models.CollectionType{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(types))
}

// CollectionTags godoc
// @Summary Collection tags in use
// @Tags collection
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/collection/tags [get]
func (r *Routers) CollectionTags(c echo.Context) error {
	const op = "http.routers.CollectionTags"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	tags, err := r.ContentService.GetAllCollectionTags(ctx)
	if err != nil {
		r.softFail(log, "collection_tags", err)
		tags = []string{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(tags))
}

// GetCollectionItem godoc
// @Summary Get a published collection item
// @Tags collection
// @Produce json
// @Param slug path string true "Item slug"
// @Success 200 {object} response.Response{data=models.CollectionItem}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/collection/{slug} [get]
func (r *Routers) GetCollectionItem(c echo.Context) error {
	const op = "http.routers.GetCollectionItem"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	item, err := r.ContentService.GetCollectionItemBySlug(ctx, c.Param("slug"), models.VisibilityPublic)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.softFail(log, "get_collection_item", err)
		}
		return c.JSON(http.StatusNotFound, response.ErrCollectionItemNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

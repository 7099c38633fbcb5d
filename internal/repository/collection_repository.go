package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

const collectionItemsTable = "collection_items"

var collectionItemColumns = []string{
	"id", "type::text", "title", "slug", "description", "url", "image_url",
	"thumbnail_url", "accent_color", "grid_size", "display_order", "metadata",
	"tags", "featured", "published", "author_id", "created_at", "updated_at",
}

type CollectionRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCollectionRepository(db *pgxpool.Pool) *CollectionRepo {
	return &CollectionRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CollectionRepo) SaveCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error) {
	const op = "repository.CollectionRepo.SaveCollectionItem"

	metadata, err := metadataParam(item.Metadata)
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Insert(collectionItemsTable).
		Columns(
			"type",
			"title",
			"slug",
			"description",
			"url",
			"image_url",
			"thumbnail_url",
			"accent_color",
			"grid_size",
			"display_order",
			"metadata",
			"tags",
			"featured",
			"published",
			"author_id",
		).
		Values(
			string(item.Type),
			item.Title,
			item.Slug,
			item.Description,
			item.URL,
			item.ImageURL,
			item.ThumbnailURL,
			item.AccentColor,
			item.GridSize,
			item.DisplayOrder,
			metadata,
			pq.Array(nonNilTags(item.Tags)),
			item.Featured,
			item.Published,
			item.AuthorID,
		).
		Suffix("RETURNING " + columnList(collectionItemColumns)).
		ToSql()
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanCollectionItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *CollectionRepo) UpdateCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error) {
	const op = "repository.CollectionRepo.UpdateCollectionItem"

	metadata, err := metadataParam(item.Metadata)
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Update(collectionItemsTable).
		Set("type", string(item.Type)).
		Set("title", item.Title).
		Set("slug", item.Slug).
		Set("description", item.Description).
		Set("url", item.URL).
		Set("image_url", item.ImageURL).
		Set("thumbnail_url", item.ThumbnailURL).
		Set("accent_color", item.AccentColor).
		Set("grid_size", item.GridSize).
		Set("display_order", item.DisplayOrder).
		Set("metadata", metadata).
		Set("tags", pq.Array(nonNilTags(item.Tags))).
		Set("featured", item.Featured).
		Set("published", item.Published).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING " + columnList(collectionItemColumns)).
		ToSql()
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanCollectionItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		case isUniqueViolation(err):
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *CollectionRepo) DeleteCollectionItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.CollectionRepo.DeleteCollectionItem"

	query, args, err := r.sb.Delete(collectionItemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *CollectionRepo) GetCollectionItemByID(ctx context.Context, id uuid.UUID) (models.CollectionItem, error) {
	const op = "repository.CollectionRepo.GetCollectionItemByID"

	return r.getCollectionItem(ctx, op, sq.Eq{"id": id})
}

func (r *CollectionRepo) GetCollectionItemBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error) {
	const op = "repository.CollectionRepo.GetCollectionItemBySlug"

	where := sq.And{sq.Eq{"slug": slug}}
	if visibility == models.VisibilityPublic {
		where = append(where, sq.Eq{"published": true})
	}

	return r.getCollectionItem(ctx, op, where)
}

func (r *CollectionRepo) getCollectionItem(ctx context.Context, op string, where sq.Sqlizer) (models.CollectionItem, error) {
	query, args, err := r.sb.Select(collectionItemColumns...).
		From(collectionItemsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanCollectionItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CollectionItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.CollectionItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (r *CollectionRepo) ListCollectionItems(
	ctx context.Context,
	filter models.CollectionFilter,
	sort models.SortOrder,
	limit, offset int,
) ([]models.CollectionItem, int, error) {
	const op = "repository.CollectionRepo.ListCollectionItems"

	countSQL, countArgs, err := r.countQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.listQuery(filter, sort, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.CollectionItem, 0, limit)
	for rows.Next() {
		item, err := scanCollectionItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return items, total, nil
}

func (r *CollectionRepo) listQuery(filter models.CollectionFilter, sort models.SortOrder, limit, offset int) (string, []interface{}, error) {
	b := applyWhere(r.sb.Select(collectionItemColumns...).From(collectionItemsTable), collectionItemPredicate(filter)).
		OrderBy(collectionItemOrderBy(sort)...).
		Limit(uint64(max(limit, 0))).
		Offset(uint64(max(offset, 0)))

	return b.ToSql()
}

func (r *CollectionRepo) countQuery(filter models.CollectionFilter) (string, []interface{}, error) {
	return applyWhere(r.sb.Select("COUNT(*)").From(collectionItemsTable), collectionItemPredicate(filter)).ToSql()
}

// ListCollectionTypes returns the distinct types of published items in
// enum order.
func (r *CollectionRepo) ListCollectionTypes(ctx context.Context) ([]models.CollectionType, error) {
	const op = "repository.CollectionRepo.ListCollectionTypes"

	query, args, err := r.sb.Select("type::text").
		From(collectionItemsTable).
		Where(sq.Eq{"published": true}).
		GroupBy("type").
		OrderBy("type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	types := []models.CollectionType{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		types = append(types, models.CollectionType(t))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return types, nil
}

// ListCollectionTags returns the distinct tags of published items sorted
// ascending.
func (r *CollectionRepo) ListCollectionTags(ctx context.Context) ([]string, error) {
	const op = "repository.CollectionRepo.ListCollectionTags"

	query, args, err := r.sb.Select("DISTINCT unnest(tags) AS tag").
		From(collectionItemsTable).
		Where(sq.Eq{"published": true}).
		OrderBy("tag").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tags, nil
}

func scanCollectionItem(row pgx.Row) (models.CollectionItem, error) {
	var (
		item     models.CollectionItem
		itemType string
		metadata []byte
	)

	err := row.Scan(
		&item.ID,
		&itemType,
		&item.Title,
		&item.Slug,
		&item.Description,
		&item.URL,
		&item.ImageURL,
		&item.ThumbnailURL,
		&item.AccentColor,
		&item.GridSize,
		&item.DisplayOrder,
		&metadata,
		&item.Tags,
		&item.Featured,
		&item.Published,
		&item.AuthorID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return models.CollectionItem{}, err
	}

	item.Type = models.CollectionType(itemType)
	item.Metadata, err = models.DecodeMetadata(item.Type, metadata, false)
	if err != nil {
		return models.CollectionItem{}, err
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	return item, nil
}

// metadataParam encodes metadata as JSON text so it binds to the JSONB
// column in text format.
func metadataParam(m models.Metadata) (*string, error) {
	raw, err := models.EncodeMetadata(m)
	if err != nil || raw == nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

const postsTable = "posts"

var postColumns = []string{
	"id", "title", "slug", "content", "excerpt", "cover_image", "published",
	"author_id", "created_at", "updated_at", "published_at",
}

type PostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepository(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostRepo) SavePost(ctx context.Context, post models.Post) (models.Post, error) {
	const op = "repository.post_repository.SavePost"

	query, args, err := r.sb.Insert(postsTable).
		Columns(
			"title",
			"slug",
			"content",
			"excerpt",
			"cover_image",
			"published",
			"author_id",
			"published_at",
		).
		Values(
			post.Title,
			post.Slug,
			post.Content,
			post.Excerpt,
			post.CoverImage,
			post.Published,
			post.AuthorID,
			post.PublishedAt,
		).
		Suffix("RETURNING " + columnList(postColumns)).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// UpdatePost replaces every editable column of the post.
func (r *PostRepo) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	const op = "repository.post_repository.UpdatePost"

	query, args, err := r.sb.Update(postsTable).
		Set("title", post.Title).
		Set("slug", post.Slug).
		Set("content", post.Content).
		Set("excerpt", post.Excerpt).
		Set("cover_image", post.CoverImage).
		Set("published", post.Published).
		Set("published_at", post.PublishedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": post.ID}).
		Suffix("RETURNING " + columnList(postColumns)).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		case isUniqueViolation(err):
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *PostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	const op = "repository.post_repository.DeletePost"

	query, args, err := r.sb.Delete(postsTable).
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

func (r *PostRepo) GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error) {
	const op = "repository.post_repository.GetPostByID"

	return r.getPost(ctx, op, sq.Eq{"id": id})
}

func (r *PostRepo) GetPostBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.Post, error) {
	const op = "repository.post_repository.GetPostBySlug"

	where := sq.And{sq.Eq{"slug": slug}}
	if visibility == models.VisibilityPublic {
		where = append(where, sq.Eq{"published": true})
	}

	return r.getPost(ctx, op, where)
}

func (r *PostRepo) getPost(ctx context.Context, op string, where sq.Sqlizer) (models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From(postsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListPosts returns one page of posts matching filter together with the
// number of matching rows ignoring limit and offset.
func (r *PostRepo) ListPosts(
	ctx context.Context,
	filter models.PostFilter,
	sort models.SortOrder,
	limit, offset int,
) ([]models.Post, int, error) {
	const op = "repository.post_repository.ListPosts"

	total, err := r.countPosts(ctx, filter)
	if err != nil {
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

	posts := make([]models.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

func (r *PostRepo) listQuery(filter models.PostFilter, sort models.SortOrder, limit, offset int) (string, []interface{}, error) {
	b := applyWhere(r.sb.Select(postColumns...).From(postsTable), postPredicate(filter)).
		OrderBy(postOrderBy(sort)...).
		Limit(uint64(max(limit, 0))).
		Offset(uint64(max(offset, 0)))

	return b.ToSql()
}

func (r *PostRepo) countQuery(filter models.PostFilter) (string, []interface{}, error) {
	return applyWhere(r.sb.Select("COUNT(*)").From(postsTable), postPredicate(filter)).ToSql()
}

func (r *PostRepo) countPosts(ctx context.Context, filter models.PostFilter) (int, error) {
	query, args, err := r.countQuery(filter)
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w", err)
	}

	return count, nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Excerpt,
		&post.CoverImage,
		&post.Published,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.PublishedAt,
	)
	return post, err
}

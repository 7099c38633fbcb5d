package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveToken(ctx context.Context, userID, tokenID string, exp time.Duration) error
	TokenExists(ctx context.Context, userID, tokenID string) (bool, error)
	DeleteToken(ctx context.Context, userID, tokenID string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

type PostRepository interface {
	SavePost(ctx context.Context, post models.Post) (models.Post, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error)
	GetPostBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, sort models.SortOrder, limit, offset int) ([]models.Post, int, error)
}

type CollectionRepository interface {
	SaveCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error)
	UpdateCollectionItem(ctx context.Context, item models.CollectionItem) (models.CollectionItem, error)
	DeleteCollectionItem(ctx context.Context, id uuid.UUID) error
	GetCollectionItemByID(ctx context.Context, id uuid.UUID) (models.CollectionItem, error)
	GetCollectionItemBySlug(ctx context.Context, slug string, visibility models.Visibility) (models.CollectionItem, error)
	ListCollectionItems(ctx context.Context, filter models.CollectionFilter, sort models.SortOrder, limit, offset int) ([]models.CollectionItem, int, error)
	ListCollectionTypes(ctx context.Context) ([]models.CollectionType, error)
	ListCollectionTags(ctx context.Context) ([]string, error)
}

var (
	_ UserRepository       = (*UserRepo)(nil)
	_ PostRepository       = (*PostRepo)(nil)
	_ CollectionRepository = (*CollectionRepo)(nil)
	_ TokenRepository      = (*RedisTokenRepo)(nil)
	_ TokenRepository      = (*CacheTokenRepo)(nil)
)

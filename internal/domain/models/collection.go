package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type CollectionType string

const (
	CollectionTypeWikipedia CollectionType = "wikipedia"
	CollectionTypeArt       CollectionType = "art"
	CollectionTypeBook      CollectionType = "book"
	CollectionTypeYouTube   CollectionType = "youtube"
	CollectionTypeProduct   CollectionType = "product"
	CollectionTypeMusic     CollectionType = "music"
	CollectionTypeArticle   CollectionType = "article"
	CollectionTypePodcast   CollectionType = "podcast"
	CollectionTypeMovie     CollectionType = "movie"
	CollectionTypeGitHub    CollectionType = "github"
	CollectionTypeOther     CollectionType = "other"
)

// CollectionTypes lists every type in enum order.
var CollectionTypes = []CollectionType{
	CollectionTypeWikipedia,
	CollectionTypeArt,
	CollectionTypeBook,
	CollectionTypeYouTube,
	CollectionTypeProduct,
	CollectionTypeMusic,
	CollectionTypeArticle,
	CollectionTypePodcast,
	CollectionTypeMovie,
	CollectionTypeGitHub,
	CollectionTypeOther,
}

func (t CollectionType) Valid() bool {
	return slices.Contains(CollectionTypes, t)
}

// TypeIndex gives the enum position, or len(CollectionTypes) for unknown values.
func (t CollectionType) TypeIndex() int {
	if i := slices.Index(CollectionTypes, t); i >= 0 {
		return i
	}
	return len(CollectionTypes)
}

const (
	GridSizeSmall  = "small"
	GridSizeMedium = "medium"
	GridSizeLarge  = "large"
)

type CollectionItem struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Type         CollectionType `db:"type" json:"type"`
	Title        string         `db:"title" json:"title"`
	Slug         string         `db:"slug" json:"slug"`
	Description  *string        `db:"description" json:"description,omitempty"`
	URL          *string        `db:"url" json:"url,omitempty"`
	ImageURL     *string        `db:"image_url" json:"image_url,omitempty"`
	ThumbnailURL *string        `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	AccentColor  *string        `db:"accent_color" json:"accent_color,omitempty"`
	GridSize     string         `db:"grid_size" json:"grid_size"`
	DisplayOrder int            `db:"display_order" json:"display_order"`
	Metadata     Metadata       `db:"metadata" json:"metadata,omitempty"`
	Tags         []string       `db:"tags" json:"tags"`
	Featured     bool           `db:"featured" json:"featured"`
	Published    bool           `db:"published" json:"published"`
	AuthorID     uuid.UUID      `db:"author_id" json:"author_id"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type CollectionItemInput struct {
	Type         CollectionType `json:"type" validate:"required,collection_type"`
	Title        string         `json:"title" validate:"required,max=200"`
	Slug         string         `json:"slug" validate:"omitempty,max=200,slug"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,max=2000"`
	URL          *string        `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL     *string        `json:"image_url,omitempty" validate:"omitempty,url"`
	ThumbnailURL *string        `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	AccentColor  *string        `json:"accent_color,omitempty" validate:"omitempty,max=32"`
	GridSize     string         `json:"grid_size,omitempty" validate:"omitempty,oneof=small medium large"`
	DisplayOrder int            `json:"display_order" validate:"gte=0"`
	Metadata     []byte         `json:"-"`
	Tags         []string       `json:"tags" validate:"dive,required,max=50"`
	Featured     bool           `json:"featured"`
	Published    bool           `json:"published"`
}

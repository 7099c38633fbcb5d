package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Content     string     `db:"content" json:"content"`
	Excerpt     *string    `db:"excerpt" json:"excerpt,omitempty"`
	CoverImage  *string    `db:"cover_image" json:"cover_image,omitempty"`
	Published   bool       `db:"published" json:"published"`
	AuthorID    uuid.UUID  `db:"author_id" json:"author_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
}

// PostInput is the full editable state of a post. Updates replace every
// field, so the same shape serves create and update.
type PostInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Slug        string     `json:"slug" validate:"omitempty,max=200,slug"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     *string    `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	CoverImage  *string    `json:"cover_image,omitempty" validate:"omitempty,url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

package dto

import (
	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
)

// PostDetailResponse is a post with its markdown rendered to HTML.
type PostDetailResponse struct {
	models.Post
	ContentHTML string `json:"content_html"`
}

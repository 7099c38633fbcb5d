// Package pagination computes page windows and wraps page results.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPostsPageSize      = 10
	DefaultCollectionPageSize = 12
	MaxPageSize               = 100
)

// Meta is the window derived from a page request and a total count.
type Meta struct {
	Offset          int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// Paginate expects page >= 1 and pageSize >= 1. A page past the last one
// is allowed and simply yields an offset beyond the data.
func Paginate(page, pageSize, total int) Meta {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Meta{
		Offset:          (page - 1) * pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

type Page[T any] struct {
	Items           []T  `json:"items"`
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

func New[T any](items []T, total, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}

	meta := Paginate(page, pageSize, total)

	return Page[T]{
		Items:           items,
		Total:           total,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      meta.TotalPages,
		HasNextPage:     meta.HasNextPage,
		HasPreviousPage: meta.HasPreviousPage,
	}
}

// Empty is the shape returned when a listing could not be produced.
func Empty[T any](page, pageSize int) Page[T] {
	return New[T](nil, 0, page, pageSize)
}

// Map converts the items of a page keeping its window intact.
func Map[T, R any](p Page[T], fn func(int, T) R) Page[R] {
	items := make([]R, 0, len(p.Items))
	for i, item := range p.Items {
		items = append(items, fn(i, item))
	}

	return Page[R]{
		Items:           items,
		Total:           p.Total,
		Page:            p.Page,
		PageSize:        p.PageSize,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}

// ParsePage returns 1 for anything that is not a positive integer.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}

	return page
}

func ParsePageSize(raw string, def int) int {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size < 1 {
		return def
	}
	if size > MaxPageSize {
		return MaxPageSize
	}

	return size
}

// Normalize clamps a page request the same way the query parsers do.
func Normalize(page, pageSize, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

package models

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Visibility selects whether drafts can be returned by a lookup.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityAll
)

// SortOrder picks between the public editorial ordering and the admin
// most-recently-edited ordering.
type SortOrder int

const (
	SortDefault SortOrder = iota
	SortUpdated
)

// PostFilter selects posts. Nil or empty fields impose no constraint.
type PostFilter struct {
	Published *bool
	Search    string
	ExcludeID uuid.UUID
}

// PublicPostFilter is the filter used by public listings.
func PublicPostFilter(search string) PostFilter {
	return PostFilter{Published: Bool(true), Search: strings.TrimSpace(search)}
}

func (f PostFilter) Matches(p Post) bool {
	if f.ExcludeID != uuid.Nil && p.ID == f.ExcludeID {
		return false
	}
	if f.Published != nil && p.Published != *f.Published {
		return false
	}

	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}

	return containsFold(p.Title, term) ||
		containsFold(p.Content, term) ||
		(p.Excerpt != nil && containsFold(*p.Excerpt, term))
}

// CollectionFilter selects collection items. Tags match on any overlap.
type CollectionFilter struct {
	Published *bool
	Search    string
	Type      *CollectionType
	Featured  *bool
	Tags      []string
}

func PublicCollectionFilter() CollectionFilter {
	return CollectionFilter{Published: Bool(true)}
}

func (f CollectionFilter) Matches(item CollectionItem) bool {
	if f.Published != nil && item.Published != *f.Published {
		return false
	}
	if f.Type != nil && item.Type != *f.Type {
		return false
	}
	if f.Featured != nil && item.Featured != *f.Featured {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(tag string) bool {
		return slices.Contains(item.Tags, tag)
	}) {
		return false
	}

	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}

	return containsFold(item.Title, term) ||
		(item.Description != nil && containsFold(*item.Description, term))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func Bool(v bool) *bool {
	return &v
}

func String(v string) *string {
	return &v
}

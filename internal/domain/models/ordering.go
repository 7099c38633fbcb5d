package models

import (
	"cmp"
	"strings"
)

// ComparePosts orders by publishedAt descending with unpublished last, then
// createdAt descending, then id.
func ComparePosts(a, b Post) int {
	switch {
	case a.PublishedAt != nil && b.PublishedAt == nil:
		return -1
	case a.PublishedAt == nil && b.PublishedAt != nil:
		return 1
	case a.PublishedAt != nil && b.PublishedAt != nil:
		if c := b.PublishedAt.Compare(*a.PublishedAt); c != 0 {
			return c
		}
	}

	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}

	return strings.Compare(a.ID.String(), b.ID.String())
}

// CompareCollectionItems orders featured items first, then by displayOrder
// ascending where 0 sorts after every positive value, then createdAt
// descending, then id.
func CompareCollectionItems(a, b CollectionItem) int {
	if a.Featured != b.Featured {
		if a.Featured {
			return -1
		}
		return 1
	}

	if c := compareDisplayOrder(a.DisplayOrder, b.DisplayOrder); c != 0 {
		return c
	}

	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}

	return strings.Compare(a.ID.String(), b.ID.String())
}

func compareDisplayOrder(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	}

	return cmp.Compare(a, b)
}

// ComparePostsByUpdated is the admin listing order: most recently edited first.
func ComparePostsByUpdated(a, b Post) int {
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

func CompareCollectionItemsByUpdated(a, b CollectionItem) int {
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

package models

import (
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComparePosts(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(d int) *time.Time {
		v := base.Add(time.Duration(d) * time.Hour)
		return &v
	}

	older := Post{ID: uuid.New(), Title: "older", PublishedAt: at(1), CreatedAt: base}
	newer := Post{ID: uuid.New(), Title: "newer", PublishedAt: at(5), CreatedAt: base}
	draft := Post{ID: uuid.New(), Title: "draft", CreatedAt: base.Add(time.Hour * 100)}
	sameInstantNewerCreated := Post{ID: uuid.New(), Title: "same-new", PublishedAt: at(1), CreatedAt: base.Add(time.Minute)}

	posts := []Post{draft, older, sameInstantNewerCreated, newer}
	slices.SortFunc(posts, ComparePosts)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}

	assert.Equal(t, []string{"newer", "same-new", "older", "draft"}, titles)
}

func TestComparePosts_TieBreakByID(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Post{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), PublishedAt: &ts, CreatedAt: ts}
	b := Post{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), PublishedAt: &ts, CreatedAt: ts}

	assert.Negative(t, ComparePosts(a, b))
	assert.Positive(t, ComparePosts(b, a))
	assert.Zero(t, ComparePosts(a, a))
}

func TestCompareCollectionItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	featured := CollectionItem{ID: uuid.New(), Title: "featured", Featured: true, DisplayOrder: 1, CreatedAt: now}
	unordered := CollectionItem{ID: uuid.New(), Title: "unordered", DisplayOrder: 0, CreatedAt: now.Add(time.Hour)}
	ordered := CollectionItem{ID: uuid.New(), Title: "ordered", DisplayOrder: 2, CreatedAt: now}

	items := []CollectionItem{unordered, ordered, featured}
	slices.SortFunc(items, CompareCollectionItems)

	assert.Equal(t, "featured", items[0].Title)
	assert.Equal(t, "ordered", items[1].Title)
	assert.Equal(t, "unordered", items[2].Title)
}

func TestCompareCollectionItems_Chronology(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := CollectionItem{ID: uuid.New(), Title: "old", CreatedAt: now}
	b := CollectionItem{ID: uuid.New(), Title: "new", CreatedAt: now.Add(time.Minute)}
	c := CollectionItem{ID: uuid.New(), Title: "first", DisplayOrder: 1, CreatedAt: now.Add(-time.Hour)}
	d := CollectionItem{ID: uuid.New(), Title: "second", DisplayOrder: 5, CreatedAt: now.Add(time.Hour)}

	items := []CollectionItem{a, b, d, c}
	slices.SortFunc(items, CompareCollectionItems)

	got := make([]string, 0, len(items))
	for _, it := range items {
		got = append(got, it.Title)
	}

	assert.Equal(t, []string{"first", "second", "new", "old"}, got)
}

func TestCompareCollectionItems_TieBreakIsStable(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := CollectionItem{ID: uuid.MustParse("10000000-0000-0000-0000-000000000000"), CreatedAt: now}
	b := CollectionItem{ID: uuid.MustParse("20000000-0000-0000-0000-000000000000"), CreatedAt: now}

	first := []CollectionItem{b, a}
	second := []CollectionItem{a, b}
	slices.SortFunc(first, CompareCollectionItems)
	slices.SortFunc(second, CompareCollectionItems)

	assert.Equal(t, first, second)
	assert.Equal(t, a.ID, first[0].ID)
}

func TestCompareByUpdated(t *testing.T) {
	now := time.Now()
	a := Post{ID: uuid.New(), UpdatedAt: now}
	b := Post{ID: uuid.New(), UpdatedAt: now.Add(time.Second)}

	assert.Positive(t, ComparePostsByUpdated(a, b))

	ci := CollectionItem{ID: uuid.New(), UpdatedAt: now}
	cj := CollectionItem{ID: uuid.New(), UpdatedAt: now.Add(-time.Second)}

	assert.Negative(t, CompareCollectionItemsByUpdated(ci, cj))
}

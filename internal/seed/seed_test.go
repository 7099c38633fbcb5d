package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/handlers/slogdiscard"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository/memory"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	collection "github.com/zeyaddeeb/zeyaddeeb/internal/services/collection_service"
	posts "github.com/zeyaddeeb/zeyaddeeb/internal/services/post_service"
)

func newSeeder(t *testing.T) (*Seeder, *memory.Store, *models.Session) {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := memory.New()
	admin := &models.Session{User: models.User{ID: uuid.New(), Email: "admin@example.com"}}
	policy := auth.NewAdminPolicy(admin.User.ID)
	validate := validation.New()

	return New(log,
		posts.NewPostService(log, store, policy, validate, markdown.New()),
		collection.NewCollectionService(log, store, policy, validate, nil),
	), store, admin
}

func TestRun_EmbeddedContent(t *testing.T) {
	ctx := context.Background()
	seeder, store, admin := newSeeder(t)

	report, err := seeder.Run(ctx, admin, Content())
	require.NoError(t, err)
	assert.Equal(t, Report{ItemsCreated: 5, PostsCreated: 3}, report)

	book, err := store.GetCollectionItemBySlug(ctx, "godel-escher-bach", models.VisibilityPublic)
	require.NoError(t, err)
	meta, ok := book.Metadata.(models.BookMetadata)
	require.True(t, ok)
	assert.Equal(t, "Douglas Hofstadter", meta.Author)
	assert.Equal(t, 1979, meta.PublishedYear)
	assert.Equal(t, models.GridSizeLarge, book.GridSize)
	assert.Equal(t, admin.User.ID, book.AuthorID)

	post, err := store.GetPostBySlug(ctx, "notes-on-self-reference", models.VisibilityPublic)
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, 2024, post.PublishedAt.Year())
	require.NotNil(t, post.Excerpt)
	assert.Equal(t, "A few thoughts after rereading Hofstadter.", *post.Excerpt)

	_, err = store.GetPostBySlug(ctx, "reading-list", models.VisibilityPublic)
	assert.Error(t, err)

	report, err = seeder.Run(ctx, admin, Content())
	require.NoError(t, err)
	assert.Equal(t, Report{ItemsSkipped: 5, PostsSkipped: 3}, report)
}

func TestRun_GeneratedPosts(t *testing.T) {
	gofakeit.Seed(42)

	fsys := fstest.MapFS{}
	titles := make(map[string]bool)
	for i := 0; i < 8; i++ {
		title := fmt.Sprintf("%s %d", gofakeit.BookTitle(), i)
		titles[title] = true

		body := fmt.Sprintf("---\ntitle: %q\npublished: %t\n---\n\n%s\n",
			title, gofakeit.Bool(), gofakeit.Paragraph(2, 4, 12, " "))
		fsys[fmt.Sprintf("posts/%02d.md", i)] = &fstest.MapFile{Data: []byte(body)}
	}

	seeder, store, admin := newSeeder(t)

	report, err := seeder.Run(context.Background(), admin, fsys)
	require.NoError(t, err)
	assert.Equal(t, 8, report.PostsCreated)
	assert.Zero(t, report.ItemsCreated)

	all, total, err := store.ListPosts(context.Background(), models.PostFilter{}, models.SortDefault, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	for _, p := range all {
		assert.True(t, titles[p.Title], p.Title)
		assert.NotEmpty(t, p.Slug)
		assert.NotNil(t, p.Excerpt)
	}
}

func TestRun_InvalidEntryStops(t *testing.T) {
	fsys := fstest.MapFS{
		CollectionsFile: &fstest.MapFile{Data: []byte(strings.Join([]string{
			"- type: book",
			"  title: Broken",
			"  metadata:",
			"    director: Somebody",
		}, "\n"))},
	}

	seeder, _, admin := newSeeder(t)

	_, err := seeder.Run(context.Background(), admin, fsys)
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
}

func TestRun_RequiresAdmin(t *testing.T) {
	seeder, _, _ := newSeeder(t)
	stranger := &models.Session{User: models.User{ID: uuid.New()}}

	_, err := seeder.Run(context.Background(), stranger, Content())
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestLoadCollection(t *testing.T) {
	items, err := LoadCollection(Content())
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, models.CollectionTypeBook, items[0].Type)
	assert.JSONEq(t, `{
		"author": "Douglas Hofstadter",
		"publishedYear": 1979,
		"genre": ["Philosophy", "Computer Science", "Mathematics"],
		"quote": "In the end, we self-perceiving, self-inventing, locked-in mirages are little miracles of self-reference."
	}`, string(items[0].Metadata))
	assert.Nil(t, items[2].Description)

	_, err = LoadCollection(fstest.MapFS{CollectionsFile: &fstest.MapFile{Data: []byte("- [unclosed")}})
	assert.Error(t, err)

	items, err = LoadCollection(fstest.MapFS{})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

// Package seed loads the bundled sample content: a YAML list of collection
// items and markdown posts with YAML front matter.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

const (
	CollectionsFile = "collections.yaml"
	PostsDir        = "posts"
)

//go:embed data
var embedded embed.FS

// Content is the sample content shipped with the binary.
func Content() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type PostCreator interface {
	CreatePost(ctx context.Context, session *models.Session, in models.PostInput) (models.Post, error)
}

type CollectionCreator interface {
	CreateCollectionItem(ctx context.Context, session *models.Session, in models.CollectionItemInput) (models.CollectionItem, error)
}

type collectionEntry struct {
	Type         string         `yaml:"type"`
	Title        string         `yaml:"title"`
	Slug         string         `yaml:"slug"`
	Description  string         `yaml:"description"`
	URL          string         `yaml:"url"`
	ImageURL     string         `yaml:"image_url"`
	ThumbnailURL string         `yaml:"thumbnail_url"`
	AccentColor  string         `yaml:"accent_color"`
	GridSize     string         `yaml:"grid_size"`
	DisplayOrder int            `yaml:"display_order"`
	Metadata     map[string]any `yaml:"metadata"`
	Tags         []string       `yaml:"tags"`
	Featured     bool           `yaml:"featured"`
	Published    bool           `yaml:"published"`
}

type postMatter struct {
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug"`
	Excerpt     string     `yaml:"excerpt"`
	CoverImage  string     `yaml:"cover_image"`
	Published   bool       `yaml:"published"`
	PublishedAt *time.Time `yaml:"published_at"`
}

// Report counts what a run created and what already existed.
type Report struct {
	PostsCreated int
	PostsSkipped int
	ItemsCreated int
	ItemsSkipped int
}

type Seeder struct {
	log   *slog.Logger
	posts PostCreator
	items CollectionCreator
}

func New(log *slog.Logger, posts PostCreator, items CollectionCreator) *Seeder {
	return &Seeder{log: log, posts: posts, items: items}
}

// Run writes every entry of fsys as the session user. Entries whose slug is
// already taken are skipped, so running twice is harmless.
func (s *Seeder) Run(ctx context.Context, session *models.Session, fsys fs.FS) (Report, error) {
	const op = "seed.Run"

	log := s.log.With(slog.String("op", op))

	var report Report

	items, err := LoadCollection(fsys)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	for _, in := range items {
		_, err := s.items.CreateCollectionItem(ctx, session, in)
		switch {
		case err == nil:
			report.ItemsCreated++
		case errors.Is(err, storage.ErrSlugExists):
			report.ItemsSkipped++
		default:
			log.Error("failed to seed collection item", slog.String("title", in.Title), sl.Err(err))
			return report, fmt.Errorf("%s: collection item %q: %w", op, in.Title, err)
		}
	}

	posts, err := LoadPosts(fsys)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	for _, in := range posts {
		_, err := s.posts.CreatePost(ctx, session, in)
		switch {
		case err == nil:
			report.PostsCreated++
		case errors.Is(err, storage.ErrSlugExists):
			report.PostsSkipped++
		default:
			log.Error("failed to seed post", slog.String("title", in.Title), sl.Err(err))
			return report, fmt.Errorf("%s: post %q: %w", op, in.Title, err)
		}
	}

	log.Info("seed finished",
		slog.Int("items_created", report.ItemsCreated),
		slog.Int("items_skipped", report.ItemsSkipped),
		slog.Int("posts_created", report.PostsCreated),
		slog.Int("posts_skipped", report.PostsSkipped),
	)

	return report, nil
}

// LoadCollection reads collections.yaml. A missing file yields no items.
func LoadCollection(fsys fs.FS) ([]models.CollectionItemInput, error) {
	raw, err := fs.ReadFile(fsys, CollectionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CollectionsFile, err)
	}

	var entries []collectionEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CollectionsFile, err)
	}

	out := make([]models.CollectionItemInput, 0, len(entries))
	for _, e := range entries {
		in := models.CollectionItemInput{
			Type:         models.CollectionType(e.Type),
			Title:        e.Title,
			Slug:         e.Slug,
			Description:  optional(e.Description),
			URL:          optional(e.URL),
			ImageURL:     optional(e.ImageURL),
			ThumbnailURL: optional(e.ThumbnailURL),
			AccentColor:  optional(e.AccentColor),
			GridSize:     e.GridSize,
			DisplayOrder: e.DisplayOrder,
			Tags:         e.Tags,
			Featured:     e.Featured,
			Published:    e.Published,
		}

		if len(e.Metadata) > 0 {
			in.Metadata, err = json.Marshal(e.Metadata)
			if err != nil {
				return nil, fmt.Errorf("encode metadata of %q: %w", e.Title, err)
			}
		}

		out = append(out, in)
	}

	return out, nil
}

// LoadPosts reads posts/*.md in name order.
func LoadPosts(fsys fs.FS) ([]models.PostInput, error) {
	names, err := fs.Glob(fsys, path.Join(PostsDir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]models.PostInput, 0, len(names))
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}

		var matter postMatter
		body, err := frontmatter.Parse(f, &matter)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		out = append(out, models.PostInput{
			Title:       matter.Title,
			Slug:        matter.Slug,
			Content:     string(body),
			Excerpt:     optional(matter.Excerpt),
			CoverImage:  optional(matter.CoverImage),
			Published:   matter.Published,
			PublishedAt: matter.PublishedAt,
		})
	}

	return out, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

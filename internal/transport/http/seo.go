package http

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/pagination"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc          string  `xml:"loc"`
	LastModified string  `xml:"lastmod,omitempty"`
	ChangeFreq   string  `xml:"changefreq,omitempty"`
	Priority     float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap godoc
// @Summary Sitemap
// @Description Static pages followed by every published collection item and post.
// @Tags seo
// @Produce xml
// @Success 200 {string} string
// @Router /sitemap.xml [get]
func (r *Routers) Sitemap(c echo.Context) error {
	const op = "http.routers.Sitemap"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := r.requestContext(c)
	defer cancel()

	base := strings.TrimRight(r.opts.BaseURL, "/")
	today := time.Now().UTC().Format(time.DateOnly)

	set := urlSet{
		XMLNS: sitemapNamespace,
		URLs: []sitemapURL{
			{Loc: base + "/blog", LastModified: today, ChangeFreq: "weekly", Priority: 1.0},
			{Loc: base + "/posts", LastModified: today, ChangeFreq: "weekly", Priority: 0.9},
			{Loc: base + "/things-i-like", LastModified: today, ChangeFreq: "weekly", Priority: 0.9},
		},
	}

	items, err := r.collectionURLs(ctx, base)
	if err != nil {
		r.softFail(log, "sitemap_collection", err)
	}
	set.URLs = append(set.URLs, items...)

	posts, err := r.postURLs(ctx, base)
	if err != nil {
		r.softFail(log, "sitemap_posts", err)
	}
	set.URLs = append(set.URLs, posts...)

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), out...))
}

func (r *Routers) collectionURLs(ctx context.Context, base string) ([]sitemapURL, error) {
	var urls []sitemapURL

	for page := 1; ; page++ {
		p, err := r.ContentService.ListCollectionItems(ctx, content.CollectionQuery{
			Page:     page,
			PageSize: pagination.MaxPageSize,
		})
		if err != nil {
			return urls, err
		}

		for _, item := range p.Items {
			priority := 0.6
			if item.Featured {
				priority = 0.8
			}
			urls = append(urls, sitemapURL{
				Loc:          base + "/things-i-like/" + item.Slug,
				LastModified: item.UpdatedAt.UTC().Format(time.DateOnly),
				ChangeFreq:   "monthly",
				Priority:     priority,
			})
		}

		if !p.HasNextPage {
			return urls, nil
		}
	}
}

func (r *Routers) postURLs(ctx context.Context, base string) ([]sitemapURL, error) {
	var urls []sitemapURL

	for page := 1; ; page++ {
		p, err := r.ContentService.ListPosts(ctx, content.PostQuery{
			Page:     page,
			PageSize: pagination.MaxPageSize,
		})
		if err != nil {
			return urls, err
		}

		for _, post := range p.Items {
			urls = append(urls, sitemapURL{
				Loc:          base + "/posts/" + post.Slug,
				LastModified: post.UpdatedAt.UTC().Format(time.DateOnly),
				ChangeFreq:   "monthly",
				Priority:     0.7,
			})
		}

		if !p.HasNextPage {
			return urls, nil
		}
	}
}

// Robots godoc
// @Summary robots.txt
// @Tags seo
// @Produce plain
// @Success 200 {string} string
// @Router /robots.txt [get]
func (r *Routers) Robots(c echo.Context) error {
	base := strings.TrimRight(r.opts.BaseURL, "/")
	return c.String(http.StatusOK, fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", base))
}

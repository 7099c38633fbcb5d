package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/handlers/slogdiscard"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository/memory"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	collection "github.com/zeyaddeeb/zeyaddeeb/internal/services/collection_service"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	posts "github.com/zeyaddeeb/zeyaddeeb/internal/services/post_service"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/cache"
	httprouters "github.com/zeyaddeeb/zeyaddeeb/internal/transport/http"
)

const (
	adminEmail    = "admin@example.com"
	strangerEmail = "stranger@example.com"
	testPassword  = "correct-horse-battery"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
	Errors  []string        `json:"errors"`
}

type RoutersSuite struct {
	suite.Suite
	e        *echo.Echo
	store    *memory.Store
	authSvc  *auth.Auth
	routers  *httprouters.Routers
	adminID  uuid.UUID
	cookies  sessions.Store
	adminTok string
	otherTok string
}

func TestRoutersSuite(t *testing.T) {
	suite.Run(t, new(RoutersSuite))
}

func (s *RoutersSuite) SetupTest() {
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()

	s.store = memory.New()
	s.e = echo.New()
	s.e.Validator = &testValidator{v: validation.New()}
	s.cookies = sessions.NewCookieStore([]byte("test-session-secret"))

	s.authSvc = auth.New(log, s.store, s.store, repository.NewCacheTokenRepo(), "test-token-secret", time.Hour)

	adminID, err := s.authSvc.RegisterNewUser(ctx, "Admin", adminEmail, testPassword)
	s.Require().NoError(err)
	s.adminID = adminID

	_, err = s.authSvc.RegisterNewUser(ctx, "Stranger", strangerEmail, testPassword)
	s.Require().NoError(err)

	policy := auth.NewAdminPolicy(adminID)
	validate := validation.New()
	md := markdown.New()

	contentSvc := content.NewContentService(log, s.store, s.store, cache.NewMemory(time.Minute))
	postSvc := posts.NewPostService(log, s.store, policy, validate, md)
	collectionSvc := collection.NewCollectionService(log, s.store, policy, validate, contentSvc)

	s.routers = httprouters.NewRouter(log, contentSvc, postSvc, collectionSvc, s.authSvc, httprouters.Options{
		BaseURL:        "https://example.com/",
		RequestTimeout: time.Second,
		Markdown:       md,
	})

	s.adminTok, _, err = s.authSvc.Login(ctx, adminEmail, testPassword)
	s.Require().NoError(err)
	s.otherTok, _, err = s.authSvc.Login(ctx, strangerEmail, testPassword)
	s.Require().NoError(err)
}

// call runs h behind the session middlewares the server installs.
func (s *RoutersSuite) call(h echo.HandlerFunc, req *http.Request, params ...string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	handler := session.Middleware(s.cookies)(s.routers.SessionLoader(h))
	if err := handler(c); err != nil {
		s.e.HTTPErrorHandler(err, c)
	}

	return rec
}

func newRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type postPage struct {
	Items           []models.Post `json:"items"`
	Total           int           `json:"total"`
	Page            int           `json:"page"`
	PageSize        int           `json:"page_size"`
	TotalPages      int           `json:"total_pages"`
	HasNextPage     bool          `json:"has_next_page"`
	HasPreviousPage bool          `json:"has_previous_page"`
}

type layoutItem struct {
	Slug     string `json:"slug"`
	Featured bool   `json:"featured"`
	Layout   struct {
		Cols  int    `json:"cols"`
		Rows  int    `json:"rows"`
		Class string `json:"class"`
	} `json:"layout"`
}

type collectionPage struct {
	Items     []layoutItem `json:"items"`
	Total     int          `json:"total"`
	GridClass string       `json:"grid_class"`
}

func (s *RoutersSuite) seedPosts(n int, published bool) []models.Post {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		p := models.Post{
			Title:     fmt.Sprintf("Post %d", i),
			Slug:      fmt.Sprintf("post-%d-%t", i, published),
			Content:   "Some **bold** words",
			Published: published,
			AuthorID:  s.adminID,
		}
		if published {
			at := base.Add(time.Duration(i) * time.Hour)
			p.PublishedAt = &at
		}
		saved, err := s.store.SavePost(ctx, p)
		s.Require().NoError(err)
		out = append(out, saved)
	}
	return out
}

func (s *RoutersSuite) seedItem(slug string, t models.CollectionType, featured, published bool, order int, tags ...string) models.CollectionItem {
	item, err := s.store.SaveCollectionItem(context.Background(), models.CollectionItem{
		Type:         t,
		Title:        strings.ToUpper(slug),
		Slug:         slug,
		GridSize:     models.GridSizeMedium,
		DisplayOrder: order,
		Tags:         tags,
		Featured:     featured,
		Published:    published,
		AuthorID:     s.adminID,
	})
	s.Require().NoError(err)
	return item
}

func (s *RoutersSuite) TestListPosts_SecondPage() {
	s.seedPosts(15, true)
	s.seedPosts(1, false)

	rec := s.call(s.routers.ListPosts, newRequest(http.MethodGet, "/api/v1/posts?page=2&page_size=10", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var page postPage
	env := decode(s.T(), rec, &page)
	s.Equal("success", env.Status)
	s.Len(page.Items, 5)
	s.Equal(15, page.Total)
	s.Equal(2, page.TotalPages)
	s.False(page.HasNextPage)
	s.True(page.HasPreviousPage)
	s.Equal("Post 4", page.Items[0].Title)
}

func (s *RoutersSuite) TestListPosts_InvalidParamsFallBack() {
	s.seedPosts(3, true)

	rec := s.call(s.routers.ListPosts, newRequest(http.MethodGet, "/api/v1/posts?page=-3&page_size=abc", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var page postPage
	decode(s.T(), rec, &page)
	s.Equal(1, page.Page)
	s.Equal(10, page.PageSize)
	s.Len(page.Items, 3)
}

func (s *RoutersSuite) TestListPosts_SearchWithoutMatches() {
	s.seedPosts(3, true)

	rec := s.call(s.routers.ListPosts, newRequest(http.MethodGet, "/api/v1/posts?search=nothing-like-this", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var page postPage
	decode(s.T(), rec, &page)
	s.NotNil(page.Items)
	s.Empty(page.Items)
	s.Equal(0, page.Total)
	s.Equal(0, page.TotalPages)
}

func (s *RoutersSuite) TestGetPost() {
	published := s.seedPosts(1, true)[0]
	draft := s.seedPosts(1, false)[0]

	rec := s.call(s.routers.GetPost, newRequest(http.MethodGet, "/", "", ""), "slug", published.Slug)
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Slug        string `json:"slug"`
		ContentHTML string `json:"content_html"`
	}
	decode(s.T(), rec, &body)
	s.Equal(published.Slug, body.Slug)
	s.Contains(body.ContentHTML, "<strong>bold</strong>")

	rec = s.call(s.routers.GetPost, newRequest(http.MethodGet, "/", "", ""), "slug", draft.Slug)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.call(s.routers.GetPost, newRequest(http.MethodGet, "/", "", ""), "slug", "missing")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RoutersSuite) TestGetRelatedPosts() {
	seeded := s.seedPosts(5, true)
	current := seeded[4]

	rec := s.call(s.routers.GetRelatedPosts, newRequest(http.MethodGet, "/?limit=2", "", ""), "slug", current.Slug)
	s.Equal(http.StatusOK, rec.Code)

	var related []models.Post
	decode(s.T(), rec, &related)
	s.Require().Len(related, 2)
	for _, p := range related {
		s.NotEqual(current.ID, p.ID)
	}
	s.Equal(seeded[3].ID, related[0].ID)
}

func (s *RoutersSuite) TestListCollection_Layout() {
	for i := 0; i < 6; i++ {
		s.seedItem(fmt.Sprintf("item-%d", i), models.CollectionTypeBook, false, true, i+1)
	}

	rec := s.call(s.routers.ListCollection, newRequest(http.MethodGet, "/api/v1/collection", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var page collectionPage
	decode(s.T(), rec, &page)
	s.Require().Len(page.Items, 6)
	s.Equal(2, page.Items[2].Layout.Rows)
	s.Equal(2, page.Items[3].Layout.Cols)
	s.Equal(page.Items[0].Layout, page.Items[5].Layout)
	s.Contains(page.GridClass, "xl:grid-cols-5")

	rec = s.call(s.routers.ListCollection, newRequest(http.MethodGet, "/api/v1/collection?columns=3", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	decode(s.T(), rec, &page)
	for _, item := range page.Items {
		s.Equal(1, item.Layout.Cols)
		s.Equal(1, item.Layout.Rows)
	}
	s.Contains(page.GridClass, "md:grid-cols-3")
}

func (s *RoutersSuite) TestListCollection_Filters() {
	s.seedItem("dune", models.CollectionTypeBook, true, true, 1, "scifi")
	s.seedItem("alien", models.CollectionTypeMovie, false, true, 2, "scifi", "horror")
	s.seedItem("heat", models.CollectionTypeMovie, false, true, 3, "crime")
	s.seedItem("secret", models.CollectionTypeMovie, false, false, 4, "scifi")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "type", query: "type=movie", want: []string{"alien", "heat"}},
		{name: "all types", query: "type=all", want: []string{"dune", "alien", "heat"}},
		{name: "tags overlap", query: "tags=horror,%20crime", want: []string{"alien", "heat"}},
		{name: "featured", query: "featured=true", want: []string{"dune"}},
		{name: "search", query: "search=HEA", want: []string{"heat"}},
		{name: "combined", query: "type=movie&tags=scifi", want: []string{"alien"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.call(s.routers.ListCollection, newRequest(http.MethodGet, "/api/v1/collection?"+tt.query, "", ""))
			s.Require().Equal(http.StatusOK, rec.Code)

			var page collectionPage
			decode(s.T(), rec, &page)

			got := make([]string, 0, len(page.Items))
			for _, item := range page.Items {
				got = append(got, item.Slug)
			}
			s.Equal(tt.want, got)
			s.Equal(len(tt.want), page.Total)
		})
	}
}

func (s *RoutersSuite) TestListCollection_BadParams() {
	for _, query := range []string{"type=comic", "columns=7", "columns=1", "columns=x", "featured=maybe"} {
		rec := s.call(s.routers.ListCollection, newRequest(http.MethodGet, "/api/v1/collection?"+query, "", ""))
		s.Equal(http.StatusBadRequest, rec.Code, query)
	}
}

func (s *RoutersSuite) TestFeaturedCollection_IncludesNonFeatured() {
	s.seedItem("first", models.CollectionTypeBook, false, true, 1)
	s.seedItem("second", models.CollectionTypeBook, false, true, 2)
	s.seedItem("star", models.CollectionTypeArt, true, true, 9)

	rec := s.call(s.routers.FeaturedCollection, newRequest(http.MethodGet, "/api/v1/collection/featured", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var items []layoutItem
	decode(s.T(), rec, &items)
	s.Require().Len(items, 3)
	s.Equal("star", items[0].Slug)
	s.False(items[1].Featured)
}

func (s *RoutersSuite) TestTaxonomy() {
	s.seedItem("a", models.CollectionTypeMovie, false, true, 1, "zeta", "alpha")
	s.seedItem("b", models.CollectionTypeBook, false, true, 2, "alpha")
	s.seedItem("c", models.CollectionTypeArt, false, false, 3, "hidden")

	rec := s.call(s.routers.CollectionTypes, newRequest(http.MethodGet, "/", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var types []string
	decode(s.T(), rec, &types)
	s.Equal([]string{"book", "movie"}, types)

	rec = s.call(s.routers.CollectionTags, newRequest(http.MethodGet, "/", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	var tags []string
	decode(s.T(), rec, &tags)
	s.Equal([]string{"alpha", "zeta"}, tags)
}

func (s *RoutersSuite) TestGetCollectionItem() {
	item := s.seedItem("visible", models.CollectionTypeBook, false, true, 1)
	s.seedItem("draft", models.CollectionTypeBook, false, false, 1)

	rec := s.call(s.routers.GetCollectionItem, newRequest(http.MethodGet, "/", "", ""), "slug", item.Slug)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.call(s.routers.GetCollectionItem, newRequest(http.MethodGet, "/", "", ""), "slug", "draft")
	s.Equal(http.StatusNotFound, rec.Code)

	env := decode(s.T(), rec, nil)
	s.Equal("Collection item not found", env.Details)
}

func (s *RoutersSuite) TestCreatePost_Authorization() {
	body := `{"title":"Hello World","content":"Body","published":true}`

	rec := s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", body, ""))
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", body, s.otherTok))
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", body, s.adminTok))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var post models.Post
	decode(s.T(), rec, &post)
	s.Equal("hello-world", post.Slug)
	s.Equal(s.adminID, post.AuthorID)
	s.NotNil(post.PublishedAt)

	rec = s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", body, s.adminTok))
	s.Equal(http.StatusConflict, rec.Code)

	env := decode(s.T(), rec, nil)
	s.Equal("A post with this slug already exists", env.Details)
}

func (s *RoutersSuite) TestCreatePost_Validation() {
	rec := s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", `{"title":"","content":""}`, s.adminTok))
	s.Equal(http.StatusBadRequest, rec.Code)

	env := decode(s.T(), rec, nil)
	s.Equal("validation_failed", env.Error)
	s.NotEmpty(env.Errors)

	rec = s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", `{"title":`, s.adminTok))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutersSuite) TestPostAdminLifecycle() {
	rec := s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", `{"title":"Draft","content":"Body"}`, s.adminTok))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created models.Post
	decode(s.T(), rec, &created)
	id := created.ID.String()

	rec = s.call(s.routers.AdminGetPost, newRequest(http.MethodGet, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.call(s.routers.UpdatePost, newRequest(http.MethodPut, "/", `{"title":"Draft","slug":"renamed","content":"New body","published":true}`, s.adminTok), "id", id)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Post
	decode(s.T(), rec, &updated)
	s.Equal("renamed", updated.Slug)
	s.True(updated.Published)
	s.NotNil(updated.PublishedAt)

	rec = s.call(s.routers.AdminListPosts, newRequest(http.MethodGet, "/?page_size=5", "", s.adminTok))
	s.Equal(http.StatusOK, rec.Code)

	var page postPage
	decode(s.T(), rec, &page)
	s.Equal(1, page.Total)

	rec = s.call(s.routers.DeletePost, newRequest(http.MethodDelete, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.call(s.routers.DeletePost, newRequest(http.MethodDelete, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.call(s.routers.UpdatePost, newRequest(http.MethodPut, "/", `{"title":"X","content":"Y"}`, s.adminTok), "id", id)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.call(s.routers.AdminGetPost, newRequest(http.MethodGet, "/", "", s.adminTok), "id", "not-a-uuid")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RoutersSuite) TestAdminListPosts_RequiresAdmin() {
	rec := s.call(s.routers.AdminListPosts, newRequest(http.MethodGet, "/", "", ""))
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.call(s.routers.AdminListPosts, newRequest(http.MethodGet, "/", "", s.otherTok))
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RoutersSuite) TestCollectionAdminLifecycle() {
	body := `{"type":"book","title":"Dune","tags":["scifi","scifi"," classic "],"metadata":{"author":"Frank Herbert","pages":412},"published":true}`

	rec := s.call(s.routers.CreateCollectionItem, newRequest(http.MethodPost, "/", body, s.adminTok))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID       uuid.UUID      `json:"id"`
		Slug     string         `json:"slug"`
		GridSize string         `json:"grid_size"`
		Tags     []string       `json:"tags"`
		Metadata map[string]any `json:"metadata"`
	}
	decode(s.T(), rec, &created)
	s.Equal("dune", created.Slug)
	s.Equal(models.GridSizeMedium, created.GridSize)
	s.Equal([]string{"scifi", "classic"}, created.Tags)
	s.Equal("Frank Herbert", created.Metadata["author"])

	rec = s.call(s.routers.CollectionTags, newRequest(http.MethodGet, "/", "", ""))
	var tags []string
	decode(s.T(), rec, &tags)
	s.Equal([]string{"classic", "scifi"}, tags)

	rec = s.call(s.routers.CreateCollectionItem, newRequest(http.MethodPost, "/", body, s.adminTok))
	s.Equal(http.StatusConflict, rec.Code)

	id := created.ID.String()
	rec = s.call(s.routers.UpdateCollectionItem, newRequest(http.MethodPut, "/", `{"type":"book","title":"Dune","tags":["desert"],"published":true}`, s.adminTok), "id", id)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.call(s.routers.CollectionTags, newRequest(http.MethodGet, "/", "", ""))
	decode(s.T(), rec, &tags)
	s.Equal([]string{"desert"}, tags)

	rec = s.call(s.routers.AdminListCollection, newRequest(http.MethodGet, "/?type=book", "", s.adminTok))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.call(s.routers.AdminGetCollectionItem, newRequest(http.MethodGet, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.call(s.routers.DeleteCollectionItem, newRequest(http.MethodDelete, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.call(s.routers.AdminGetCollectionItem, newRequest(http.MethodGet, "/", "", s.adminTok), "id", id)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RoutersSuite) TestCreateCollectionItem_RejectsMismatchedMetadata() {
	tests := []struct {
		name string
		body string
	}{
		{name: "wrong field type", body: `{"type":"book","title":"Dune","metadata":{"pages":"many"}}`},
		{name: "unknown field", body: `{"type":"book","title":"Dune","metadata":{"director":"Villeneuve"}}`},
		{name: "unknown type", body: `{"type":"comic","title":"Dune"}`},
		{name: "bad grid size", body: `{"type":"book","title":"Dune","grid_size":"huge"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.call(s.routers.CreateCollectionItem, newRequest(http.MethodPost, "/", tt.body, s.adminTok))
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *RoutersSuite) TestLoginSessionLogout() {
	rec := s.call(s.routers.Login, newRequest(http.MethodPost, "/", `{"email":"admin@example.com","password":"wrong-password"}`, ""))
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.call(s.routers.Login, newRequest(http.MethodPost, "/", `{"email":"not-an-email","password":"x"}`, ""))
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.call(s.routers.Login, newRequest(http.MethodPost, "/", `{"email":"Admin@Example.com","password":"`+testPassword+`"}`, ""))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.NotEmpty(rec.Header().Get(echo.HeaderSetCookie))

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(s.T(), rec, &login)
	s.Equal("Bearer", login.TokenType)
	s.Equal(adminEmail, login.User.Email)

	rec = s.call(s.routers.GetSession, newRequest(http.MethodGet, "/", "", login.AccessToken))
	var sess struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(s.T(), rec, &sess)
	s.Equal(adminEmail, sess.User.Email)

	rec = s.call(s.routers.Logout, newRequest(http.MethodPost, "/", "", login.AccessToken))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.call(s.routers.GetSession, newRequest(http.MethodGet, "/", "", login.AccessToken))
	env := decode(s.T(), rec, nil)
	s.Equal("null", string(env.Data))

	rec = s.call(s.routers.CreatePost, newRequest(http.MethodPost, "/", `{"title":"T","content":"C"}`, login.AccessToken))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RoutersSuite) TestCookieSession() {
	rec := s.call(s.routers.Login, newRequest(http.MethodPost, "/", `{"email":"admin@example.com","password":"`+testPassword+`"}`, ""))
	s.Require().Equal(http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	s.Require().NotEmpty(cookies)

	req := newRequest(http.MethodPost, "/", `{"title":"Cookie Post","content":"Body"}`, "")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec = s.call(s.routers.CreatePost, req)
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *RoutersSuite) TestSitemapAndRobots() {
	s.seedPosts(2, true)
	s.seedPosts(1, false)
	s.seedItem("star", models.CollectionTypeArt, true, true, 1)
	s.seedItem("plain", models.CollectionTypeArt, false, true, 2)

	rec := s.call(s.routers.Sitemap, newRequest(http.MethodGet, "/sitemap.xml", "", ""))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentType), "xml")

	body := rec.Body.String()
	s.Contains(body, "<loc>https://example.com/blog</loc>")
	s.Contains(body, "<loc>https://example.com/things-i-like/star</loc>")
	s.Contains(body, "<loc>https://example.com/posts/post-0-true</loc>")
	s.NotContains(body, "post-0-false")
	s.Contains(body, "<priority>0.8</priority>")
	s.Contains(body, "<priority>0.6</priority>")
	s.Equal(3+2+2, strings.Count(body, "<url>"))

	rec = s.call(s.routers.Robots, newRequest(http.MethodGet, "/robots.txt", "", ""))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("User-agent: *\nAllow: /\nSitemap: https://example.com/sitemap.xml\n", rec.Body.String())
}

func (s *RoutersSuite) TestHealth() {
	rec := s.call(s.routers.Health, newRequest(http.MethodGet, "/healthz", "", ""))
	s.Equal(http.StatusOK, rec.Code)

	failing := httprouters.NewRouter(slogdiscard.NewDiscardLogger(), nil, nil, nil, s.authSvc, httprouters.Options{
		HealthCheck: func(context.Context) error { return errors.New("down") },
	})

	rec = httptest.NewRecorder()
	c := s.e.NewContext(newRequest(http.MethodGet, "/healthz", "", ""), rec)
	s.NoError(failing.Health(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

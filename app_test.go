package techpulse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/views"
)

const testSiteURL = "https://techpulse.example"

type downSource struct{}

func (downSource) Fetch(context.Context, cms.Request) (cms.Envelope, error) {
	return cms.Envelope{}, errors.New("backend down")
}

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func joinIDs(list []views.Article) string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return strings.Join(ids, ",")
}

func testViews() ViewFuncs {
	return ViewFuncs{
		Home: func(site views.SiteConfig, p views.HomePage) templ.Component {
			return text("home %s top=%s latest=%d featured=%d articles=%d views=%d subscribed=%t csrf=%t",
				site.Name, joinIDs(p.Top), len(p.Latest), len(p.Featured), p.Stats.Articles, p.Stats.TotalViews,
				p.Newsletter.Subscribed, p.Newsletter.CSRFToken != "")
		},
		Articles: func(_ views.SiteConfig, p views.ArticlesPage) templ.Component {
			return text("articles total=%d ids=%s categories=%d sort=%s filtered=%t", p.Total, joinIDs(p.Articles), len(p.Categories), p.Sort, p.Filtered())
		},
		ArticleList: func(p views.ArticlesPage) templ.Component {
			return text("list total=%d", p.Total)
		},
		Article: func(_ views.SiteConfig, p views.ArticlePage) templ.Component {
			return text("article %s title=%q related=%s og=%s url=%s", p.Article.ID, p.Meta.Title, joinIDs(p.Related), p.Meta.OGType, p.Meta.URL)
		},
		Categories: func(_ views.SiteConfig, p views.CategoriesPage) templ.Component {
			return text("categories total=%d views=%d", p.Total, p.TotalViews)
		},
		Category: func(_ views.SiteConfig, p views.CategoryPage) templ.Component {
			return text("category %s articles=%s", p.Category.Slug, joinIDs(p.Articles))
		},
		Authors: func(_ views.SiteConfig, p views.AuthorsPage) templ.Component {
			return text("authors total=%d", len(p.Authors))
		},
		Author: func(_ views.SiteConfig, p views.AuthorPage) templ.Component {
			return text("author %s articles=%d", p.Author.Name, len(p.Articles))
		},
		Tags: func(_ views.SiteConfig, p views.TagsPage) templ.Component {
			return text("tags total=%d", len(p.Tags))
		},
		Tag: func(_ views.SiteConfig, p views.TagPage) templ.Component {
			return text("tag %s", p.Tag.Slug)
		},
		Newsletter: func(s views.Newsletter) templ.Component {
			return text("newsletter subscribed=%t error=%q", s.Subscribed, s.Error)
		},
		NotFound: func() templ.Component {
			return text("not found page")
		},
		ServerError: func() templ.Component {
			return text("server error page")
		},
	}
}

func newTestApp(t *testing.T, src cms.Source, opts ...Option) *App {
	t.Helper()
	cfg := SiteConfig{
		URL:           testSiteURL,
		SessionSecret: "test-session-secret",
		LogLevel:      "off",
	}
	app := New(cfg, testViews(), append([]Option{WithSource(src)}, opts...)...)
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func fixtureApp(t *testing.T) *App {
	return newTestApp(t, cms.NewMockSource())
}

func do(app *App, method, target string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func get(app *App, target string) *httptest.ResponseRecorder {
	return do(app, http.MethodGet, target, nil, nil)
}

func TestNewAppliesDefaults(t *testing.T) {
	app := New(SiteConfig{}, ViewFuncs{})
	cfg := app.Config
	if cfg.Name != "TechPulse" || cfg.URL != "http://localhost:3000" || cfg.Addr != ":3000" {
		t.Errorf("unexpected site defaults: %+v", cfg)
	}
	if cfg.APIURL != defaultAPIURL || cfg.Timeout != cms.DefaultTimeout || cfg.Revalidate != cms.DefaultRevalidate {
		t.Errorf("unexpected backend defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestInitRequiresSessionSecret(t *testing.T) {
	app := New(SiteConfig{LogLevel: "off"}, testViews(), WithSource(cms.NewMockSource()))
	if err := app.Init(); err == nil {
		t.Fatal("expected an error without SessionSecret")
	}
}

func TestInitWithMockContent(t *testing.T) {
	app := New(SiteConfig{SessionSecret: "s", LogLevel: "off", MockContent: true}, testViews())
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer app.Close()

	if got := len(app.Content.Articles(context.Background())); got != 6 {
		t.Errorf("got %d articles, want the 6 preview fixtures", got)
	}
}

func TestInitWithBackendClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"articles":[{"documentId":"a1","title":"Hello","content":"x","description":"d",
			"featured":true,"author":null,"category":null,"publishedAt":"2024-05-01T00:00:00.000Z","views":7}]}`)
	}))
	defer srv.Close()

	app := New(SiteConfig{SessionSecret: "s", LogLevel: "off", APIURL: srv.URL + "/api/"}, testViews())
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer app.Close()

	rec := get(app, "/api/articles")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":"a1"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRevalidateDropsCachedResponses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, `{"articles":[{"documentId":"a1","title":"Hello","publishedAt":"2024-05-01T00:00:00.000Z","views":7}]}`)
	}))
	defer srv.Close()

	app := New(SiteConfig{SessionSecret: "s", LogLevel: "off", APIURL: srv.URL}, testViews())
	if err := app.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer app.Close()

	get(app, "/api/articles")
	first := hits.Load()
	if first == 0 {
		t.Fatal("backend was never called")
	}
	get(app, "/api/articles")
	if got := hits.Load(); got != first {
		t.Fatalf("hits = %d after cached read, want %d", got, first)
	}

	app.Revalidate(context.Background())
	get(app, "/api/articles")
	if got := hits.Load(); got <= first {
		t.Errorf("hits = %d after Revalidate, want more than %d", got, first)
	}
}

func TestRevalidateWithMockContent(t *testing.T) {
	app := fixtureApp(t)
	app.Revalidate(context.Background())
	if rec := get(app, "/api/articles"); rec.Code != http.StatusOK {
		t.Errorf("status = %d after Revalidate, want 200", rec.Code)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	app := fixtureApp(t)
	if err := app.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
}

func TestCustomRoutes(t *testing.T) {
	app := newTestApp(t, cms.NewMockSource(), WithCustomRoutes(func(a *App) {
		a.Echo.GET("/about/", func(c echo.Context) error {
			return c.String(http.StatusOK, "about "+a.Config.Name)
		})
	}))
	rec := get(app, "/about/")
	if rec.Code != http.StatusOK || rec.Body.String() != "about TechPulse" {
		t.Errorf("custom route = %d %q", rec.Code, rec.Body.String())
	}
}

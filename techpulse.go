// Package techpulse is a news site front end built with Go, Echo, and templ.
// Content lives in a headless CMS; techpulse fetches it, normalizes it into
// display records, and serves pages, feeds and a JSON API from it.
//
// Users provide their own templ templates via the ViewFuncs struct,
// and techpulse handles the retrieval, handler logic, and middleware.
package techpulse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/content"
	"github.com/eringen/techpulse/views"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home        func(site views.SiteConfig, page views.HomePage) templ.Component
	Articles    func(site views.SiteConfig, page views.ArticlesPage) templ.Component
	ArticleList func(page views.ArticlesPage) templ.Component // htmx partial of the search results
	Article     func(site views.SiteConfig, page views.ArticlePage) templ.Component
	Categories  func(site views.SiteConfig, page views.CategoriesPage) templ.Component
	Category    func(site views.SiteConfig, page views.CategoryPage) templ.Component
	Authors     func(site views.SiteConfig, page views.AuthorsPage) templ.Component
	Author      func(site views.SiteConfig, page views.AuthorPage) templ.Component
	Tags        func(site views.SiteConfig, page views.TagsPage) templ.Component
	Tag         func(site views.SiteConfig, page views.TagPage) templ.Component
	Newsletter  func(state views.Newsletter) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central techpulse application. It wires together the content
// source, response cache, handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *content.Service
	Views   ViewFuncs

	source       cms.Source
	cache        cms.ResponseCache
	redis        *cms.RedisCache
	limiter      *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	initialized  bool
}

// New creates a new techpulse App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init builds the content source, middleware and routes without starting the
// server. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("techpulse: SessionSecret is required")
	}

	lvl := ParseLogLevel(a.Config.LogLevel)
	a.Echo.Logger.SetLevel(lvl)

	src, err := a.newSource(lvl)
	if err != nil {
		return err
	}
	a.source = src
	a.Content = content.New(src, cms.NewMapper(a.Config.AssetHost), content.WithLogger(newLogger("content", lvl)))

	a.limiter = NewRateLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Revalidate drops cached backend responses so the next request reloads
// them. It is a no-op for sources without a cache.
func (a *App) Revalidate(ctx context.Context) {
	if inv, ok := a.source.(interface{ Invalidate(context.Context) }); ok {
		inv.Invalidate(ctx)
		a.Echo.Logger.Infof("content cache invalidated")
	}
}

func (a *App) newSource(lvl log.Lvl) (cms.Source, error) {
	if a.source != nil {
		return a.source, nil
	}
	if a.Config.MockContent {
		a.Echo.Logger.Infof("serving built-in preview content")
		return cms.NewMockSource(), nil
	}

	cache := a.cache
	if cache == nil && a.Config.RedisAddr != "" {
		rc, err := cms.NewRedisCache(cms.RedisConfig{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			Logger:   newLogger("cms", lvl),
		})
		if err != nil {
			return nil, fmt.Errorf("techpulse: init cache: %w", err)
		}
		a.redis = rc
		cache = rc
	}

	return cms.NewClient(cms.ClientConfig{
		BaseURL:    a.Config.APIURL,
		Timeout:    a.Config.Timeout,
		Revalidate: a.Config.Revalidate,
		Cache:      cache,
		Logger:     newLogger("cms", lvl),
	}), nil
}

func newLogger(prefix string, lvl log.Lvl) *log.Logger {
	l := log.New(prefix)
	l.SetLevel(lvl)
	return l
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/articles/", a.handleArticles)
	e.GET("/articles/:slug/", a.handleArticle)
	e.GET("/categories/", a.handleCategories)
	e.GET("/categories/:slug/", a.handleCategory)
	e.GET("/authors/", a.handleAuthors)
	e.GET("/authors/:slug/", a.handleAuthor)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:slug/", a.handleTag)
	e.POST("/newsletter/", a.handleNewsletter)

	a.registerAPI(e.Group("/api"))
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

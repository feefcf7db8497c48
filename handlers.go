package techpulse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/content"
	"github.com/eringen/techpulse/views"
)

// Page sizes of the home page sections.
const (
	homeTopLimit      = 3
	homeLatestLimit   = 8
	homeFeaturedLimit = 6
	relatedLimit      = 3
)

func (a *App) meta(title, description, ogType string, path ...string) views.PageMeta {
	full := a.Config.Name
	if title != "" {
		full = title + " | " + a.Config.Name
	}
	if description == "" {
		description = a.Config.Description
	}
	return views.PageMeta{
		Title:       full,
		Description: description,
		URL:         views.BuildURL(a.Config.URL, path...),
		OGType:      ogType,
	}
}

func (a *App) notFound(c echo.Context) error {
	var cmp templ.Component
	if a.Views.NotFound != nil {
		cmp = a.Views.NotFound()
	}
	return RenderStatus(c, http.StatusNotFound, cmp)
}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	page := views.HomePage{
		Meta:       a.meta("", "", "website"),
		Stats:      a.Content.Stats(ctx),
		Top:        a.Content.Top(ctx, homeTopLimit),
		Latest:     a.Content.Latest(ctx, homeLatestLimit),
		Featured:   a.Content.Featured(ctx, homeFeaturedLimit),
		Newsletter: views.Newsletter{Subscribed: IsSubscribed(c), CSRFToken: CsrfToken(c)},
	}
	return Render(c, view(a.Views.Home, a.Config.Site(), page))
}

func (a *App) handleArticles(c echo.Context) error {
	q := content.Query{
		Text:     strings.TrimSpace(c.QueryParam("q")),
		Category: c.QueryParam("category"),
		Sort:     content.NormalizeSort(c.QueryParam("sort")),
	}
	ctx := c.Request().Context()
	list := a.Content.Search(ctx, q)
	page := views.ArticlesPage{
		Meta:       a.meta("All Articles", "", "website", "articles"),
		Articles:   list,
		Total:      len(list),
		Categories: a.Content.Categories(ctx),
		Query:      q.Text,
		Category:   q.Category,
		Sort:       q.Sort,
	}
	if isHTMX(c) && a.Views.ArticleList != nil {
		return Render(c, a.Views.ArticleList(page))
	}
	return Render(c, view(a.Views.Articles, a.Config.Site(), page))
}

func (a *App) handleArticle(c echo.Context) error {
	ctx := c.Request().Context()
	article, ok := a.Content.ArticleBySlug(ctx, c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	meta := a.meta(article.Title, article.Excerpt, "article", "articles", article.Slug)
	meta.Image = article.Image
	page := views.ArticlePage{
		Meta:    meta,
		Article: article,
		Related: a.Content.Related(ctx, article.ID, article.Category, article.Tags, relatedLimit),
	}
	return Render(c, view(a.Views.Article, a.Config.Site(), page))
}

func (a *App) handleCategories(c echo.Context) error {
	stats := a.Content.CategoryStats(c.Request().Context())
	page := views.CategoriesPage{
		Meta:       a.meta("Categories", "Browse articles by topic.", "website", "categories"),
		Categories: stats,
		Total:      len(stats),
	}
	for _, s := range stats {
		page.TotalViews += s.TotalViews
	}
	return Render(c, view(a.Views.Categories, a.Config.Site(), page))
}

func (a *App) handleCategory(c echo.Context) error {
	ctx := c.Request().Context()
	cat, ok := a.Content.CategoryBySlug(ctx, c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	page := views.CategoryPage{
		Meta:     a.meta(cat.Name, fmt.Sprintf("Articles about %s.", cat.Name), "website", "categories", cat.Slug),
		Category: cat,
		Articles: a.Content.ArticlesByCategory(ctx, cat.Slug),
	}
	return Render(c, view(a.Views.Category, a.Config.Site(), page))
}

func (a *App) handleAuthors(c echo.Context) error {
	page := views.AuthorsPage{
		Meta:    a.meta("Authors", "The people writing for us.", "website", "authors"),
		Authors: a.Content.AuthorStats(c.Request().Context()),
	}
	return Render(c, view(a.Views.Authors, a.Config.Site(), page))
}

func (a *App) handleAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	author, ok := a.Content.AuthorBySlug(ctx, c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	meta := a.meta(author.Name, author.Bio, "profile", "authors", author.Slug)
	meta.Image = author.Avatar
	page := views.AuthorPage{
		Meta:     meta,
		Author:   author,
		Articles: a.Content.ArticlesByAuthor(ctx, author.Slug),
	}
	return Render(c, view(a.Views.Author, a.Config.Site(), page))
}

func (a *App) handleTags(c echo.Context) error {
	page := views.TagsPage{
		Meta: a.meta("Tags", "", "website", "tags"),
		Tags: a.Content.TagStats(c.Request().Context()),
	}
	return Render(c, view(a.Views.Tags, a.Config.Site(), page))
}

func (a *App) handleTag(c echo.Context) error {
	ctx := c.Request().Context()
	tag, ok := a.Content.TagBySlug(ctx, c.Param("slug"))
	if !ok {
		return a.notFound(c)
	}
	page := views.TagPage{
		Meta:     a.meta("#"+tag.Name, "", "website", "tags", tag.Slug),
		Tag:      tag,
		Articles: a.Content.ArticlesByTag(ctx, tag.Slug),
	}
	return Render(c, view(a.Views.Tag, a.Config.Site(), page))
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	return a.renderSitemap(c, a.Content.Articles(ctx), a.Content.Categories(ctx), a.Content.Authors(ctx))
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Content.Latest(c.Request().Context(), feedSize))
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " +
		strings.TrimSuffix(views.BuildURL(a.Config.URL), "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.apiError(err, c)
		return
	}
	if ok && he.Code == http.StatusNotFound {
		_ = a.notFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		var cmp templ.Component
		if a.Views.ServerError != nil {
			cmp = a.Views.ServerError()
		}
		_ = RenderStatus(c, code, cmp)
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

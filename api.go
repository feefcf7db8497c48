package techpulse

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/content"
)

const maxAPILimit = 100

type apiList[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type apiItem[T any] struct {
	Data T `json:"data"`
}

type apiErrorBody struct {
	Error string `json:"error"`
}

func writeList[T any](c echo.Context, items []T) error {
	return c.JSON(http.StatusOK, apiList[T]{Data: items, Total: len(items)})
}

func writeItem[T any](c echo.Context, v T, ok bool) error {
	if !ok {
		return c.JSON(http.StatusNotFound, apiErrorBody{Error: "not found"})
	}
	return c.JSON(http.StatusOK, apiItem[T]{Data: v})
}

// queryLimit reads the limit parameter. Missing or malformed values yield 0,
// which the listing functions treat as their default.
func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return min(n, maxAPILimit)
}

func (a *App) registerAPI(g *echo.Group) {
	g.GET("/articles", a.apiArticles)
	g.GET("/articles/featured", func(c echo.Context) error {
		return writeList(c, a.Content.Featured(c.Request().Context(), queryLimit(c)))
	})
	g.GET("/articles/latest", func(c echo.Context) error {
		return writeList(c, a.Content.Latest(c.Request().Context(), queryLimit(c)))
	})
	g.GET("/articles/top", func(c echo.Context) error {
		return writeList(c, a.Content.Top(c.Request().Context(), queryLimit(c)))
	})
	g.GET("/articles/:slug", func(c echo.Context) error {
		article, ok := a.Content.ArticleBySlug(c.Request().Context(), c.Param("slug"))
		return writeItem(c, article, ok)
	})
	g.GET("/articles/:slug/related", a.apiRelated)
	g.GET("/categories", func(c echo.Context) error {
		return writeList(c, a.Content.CategoryStats(c.Request().Context()))
	})
	g.GET("/categories/:slug", func(c echo.Context) error {
		cat, ok := a.Content.CategoryBySlug(c.Request().Context(), c.Param("slug"))
		return writeItem(c, cat, ok)
	})
	g.GET("/authors", func(c echo.Context) error {
		return writeList(c, a.Content.AuthorStats(c.Request().Context()))
	})
	g.GET("/authors/:slug", func(c echo.Context) error {
		author, ok := a.Content.AuthorBySlug(c.Request().Context(), c.Param("slug"))
		return writeItem(c, author, ok)
	})
	g.GET("/tags", func(c echo.Context) error {
		return writeList(c, a.Content.TagStats(c.Request().Context()))
	})
	g.GET("/stats", func(c echo.Context) error {
		return writeItem(c, a.Content.Stats(c.Request().Context()), true)
	})
}

// apiArticles lists every article in backend order, or runs a search when
// any of q, category or sort is given.
func (a *App) apiArticles(c echo.Context) error {
	ctx := c.Request().Context()
	q := content.Query{Text: c.QueryParam("q"), Category: c.QueryParam("category"), Sort: c.QueryParam("sort")}
	if q == (content.Query{}) {
		return writeList(c, a.Content.Articles(ctx))
	}
	return writeList(c, a.Content.Search(ctx, q))
}

func (a *App) apiRelated(c echo.Context) error {
	ctx := c.Request().Context()
	article, ok := a.Content.ArticleBySlug(ctx, c.Param("slug"))
	if !ok {
		return c.JSON(http.StatusNotFound, apiErrorBody{Error: "not found"})
	}
	return writeList(c, a.Content.Related(ctx, article.ID, article.Category, article.Tags, queryLimit(c)))
}

func (a *App) apiError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
	}
	if code == http.StatusNotFound {
		msg = "not found"
	}
	if code >= 500 {
		c.Logger().Errorf("api error: %v", err)
	}
	_ = c.JSON(code, apiErrorBody{Error: msg})
}

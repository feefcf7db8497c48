package techpulse

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, articles []views.Article, categories []views.Category, authors []views.Author) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, "articles")},
		{Loc: views.BuildURL(base, "categories")},
		{Loc: views.BuildURL(base, "authors")},
	}
	for _, art := range articles {
		u := sitemapURL{Loc: views.BuildURL(base, "articles", art.Slug)}
		if !art.PublishedAt.IsZero() {
			u.LastMod = art.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	for _, cat := range categories {
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base, "categories", cat.Slug)})
	}
	for _, au := range authors {
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base, "authors", au.Slug)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

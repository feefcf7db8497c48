package techpulse

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/views"
)

// feedSize is the number of latest articles in /feed.xml.
const feedSize = 20

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Category    string   `xml:"category,omitempty"`
	Enclosure   *rssFile `xml:"enclosure"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

type rssFile struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int    `xml:"length,attr"`
}

func (a *App) renderRSS(c echo.Context, articles []views.Article) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(articles))
	var newest time.Time
	for _, art := range articles {
		pubDate := ""
		if !art.PublishedAt.IsZero() {
			pubDate = art.PublishedAt.Format(time.RFC1123Z)
			if art.PublishedAt.After(newest) {
				newest = art.PublishedAt
			}
		}
		link := views.BuildURL(base, "articles", art.Slug)
		item := rssItem{
			Title:       art.Title,
			Link:        link,
			Description: art.Excerpt,
			Category:    art.Category.Name,
			PubDate:     pubDate,
			GUID:        link,
		}
		if art.Image != "" {
			item.Enclosure = &rssFile{URL: art.Image, Type: "image/jpeg"}
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	if !newest.IsZero() {
		feed.Channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

package views

import "time"

// SiteConfig holds site-wide settings handed to every page template so nothing
// is hardcoded in views.
type SiteConfig struct {
	Name        string // SITE_NAME (default "TechPulse")
	URL         string // SITE_URL  (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// Article is the display record for one piece of content.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	Category    Category  `json:"category"`
	Tags        []Tag     `json:"tags"`
	Author      Author    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Featured    bool      `json:"featured"`
	Views       int       `json:"views"`
}

// Link returns the site path of the article page.
func (a Article) Link() string {
	return "/articles/" + PathEscape(a.Slug) + "/"
}

// Author is the display record for an article's author.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Link returns the site path of the author page.
func (a Author) Link() string {
	return "/authors/" + PathEscape(a.Slug) + "/"
}

// Category groups articles; it is derived from the articles themselves.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Link returns the site path of the category page.
func (c Category) Link() string {
	return "/categories/" + PathEscape(c.Slug) + "/"
}

// Tag labels an article. The current backend has no tags.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Link returns the site path of the tag page.
func (t Tag) Link() string {
	return "/tags/" + PathEscape(t.Slug) + "/"
}

// Sentinels substituted when the backend omits a relation.
var (
	UncategorizedCategory = Category{ID: "uncategorized", Name: "Uncategorized", Slug: "uncategorized"}
	AnonymousAuthor       = Author{ID: "anonymous", Name: "Anonymous", Slug: "anonymous"}
)

// SiteStats summarizes the whole collection for the home page.
type SiteStats struct {
	Articles   int `json:"articles"`
	Authors    int `json:"authors"`
	Categories int `json:"categories"`
	TotalViews int `json:"totalViews"`
}

// CategoryStats is a category with aggregates over its articles.
type CategoryStats struct {
	Category     Category `json:"category"`
	ArticleCount int      `json:"articleCount"`
	TotalViews   int      `json:"totalViews"`
	AuthorCount  int      `json:"authorCount"`
	Latest       *Article `json:"latest,omitempty"`
}

// AuthorStats is an author with aggregates over their articles.
type AuthorStats struct {
	Author        Author   `json:"author"`
	ArticleCount  int      `json:"articleCount"`
	TotalViews    int      `json:"totalViews"`
	AvgViews      int      `json:"avgViews"`
	FeaturedCount int      `json:"featuredCount"`
	Latest        *Article `json:"latest,omitempty"`
}

// TagStats is a tag with the number of articles carrying it.
type TagStats struct {
	Tag          Tag `json:"tag"`
	ArticleCount int `json:"articleCount"`
}

package views

// HomePage is the data behind the landing page.
type HomePage struct {
	Meta       PageMeta
	Stats      SiteStats
	Top        []Article
	Latest     []Article
	Featured   []Article
	Newsletter Newsletter
}

// Newsletter is the state of the signup widget for the current visitor.
type Newsletter struct {
	Subscribed bool
	Error      string
	CSRFToken  string
}

// ArticlesPage is the searchable listing of every article.
type ArticlesPage struct {
	Meta       PageMeta
	Articles   []Article
	Total      int
	Categories []Category
	Query      string
	Category   string
	Sort       string
}

// Filtered reports whether any search, category or non-default sort is active.
func (p ArticlesPage) Filtered() bool {
	return p.Query != "" || (p.Category != "" && p.Category != "all") || (p.Sort != "" && p.Sort != "newest")
}

// ArticlePage is a single article with its related reads.
type ArticlePage struct {
	Meta    PageMeta
	Article Article
	Related []Article
}

// CategoriesPage lists categories with their statistics.
type CategoriesPage struct {
	Meta       PageMeta
	Categories []CategoryStats
	Total      int
	TotalViews int
}

// CategoryPage lists the articles of one category.
type CategoryPage struct {
	Meta     PageMeta
	Category Category
	Articles []Article
}

// AuthorsPage lists authors with their statistics.
type AuthorsPage struct {
	Meta    PageMeta
	Authors []AuthorStats
}

// AuthorPage lists the articles of one author.
type AuthorPage struct {
	Meta     PageMeta
	Author   Author
	Articles []Article
}

// TagsPage lists tags by popularity.
type TagsPage struct {
	Meta PageMeta
	Tags []TagStats
}

// TagPage lists the articles carrying one tag.
type TagPage struct {
	Meta     PageMeta
	Tag      Tag
	Articles []Article
}

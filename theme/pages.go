package theme

import (
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/techpulse"
	"github.com/eringen/techpulse/content"
	"github.com/eringen/techpulse/richtext"
	"github.com/eringen/techpulse/views"
)

// Views returns the built-in page set.
func Views() techpulse.ViewFuncs {
	return techpulse.ViewFuncs{
		Home:        Home,
		Articles:    Articles,
		ArticleList: ArticleList,
		Article:     Article,
		Categories:  Categories,
		Category:    Category,
		Authors:     Authors,
		Author:      Author,
		Tags:        Tags,
		Tag:         Tag,
		Newsletter:  Newsletter,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func Home(site views.SiteConfig, p views.HomePage) templ.Component {
	return page(site, p.Meta, views.WebsiteJsonLD(site), func(ctx context.Context, w *writer) {
		w.raw(`<section class="hero">`)
		w.rawf(`<h1>%s</h1><p>%s</p>`, attr(site.Name), attr(site.Description))
		w.rawf(`<ul class="stats"><li>%d articles</li><li>%d authors</li><li>%d categories</li><li>%s views</li></ul>`,
			p.Stats.Articles, p.Stats.Authors, p.Stats.Categories, views.CompactViews(p.Stats.TotalViews))
		w.raw(`</section>`)

		w.raw(`<section class="top"><h2>Trending</h2>`)
		articleGrid(w, p.Top, "Nothing trending yet.")
		w.raw(`</section><section class="featured"><h2>Featured</h2>`)
		articleGrid(w, p.Featured, "No featured stories.")
		w.raw(`</section><section class="latest"><h2>Latest</h2>`)
		articleGrid(w, p.Latest, "No articles published yet.")
		w.raw(`<a class="more" href="/articles/">All articles</a></section>`)

		w.component(ctx, Newsletter(p.Newsletter))
	})
}

func Articles(site views.SiteConfig, p views.ArticlesPage) templ.Component {
	return page(site, p.Meta, "", func(ctx context.Context, w *writer) {
		w.raw(`<h1>All Articles</h1>`)
		w.raw(`<form class="search" action="/articles/" method="get" hx-get="/articles/" hx-target="#results" hx-trigger="input changed delay:300ms from:input, change">`)
		w.rawf(`<input type="search" name="q" value="%s" placeholder="Search articles">`, attr(p.Query))
		w.raw(`<select name="category"><option value="all">All categories</option>`)
		for _, c := range p.Categories {
			selected := ""
			if c.Slug == p.Category {
				selected = " selected"
			}
			w.rawf(`<option value="%s"%s>%s</option>`, attr(c.Slug), selected, attr(c.Name))
		}
		w.raw(`</select><select name="sort">`)
		for _, s := range []struct{ value, label string }{
			{content.SortNewest, "Newest"},
			{content.SortOldest, "Oldest"},
			{content.SortPopular, "Most viewed"},
			{content.SortAlphabetical, "A-Z"},
		} {
			selected := ""
			if s.value == p.Sort {
				selected = " selected"
			}
			w.rawf(`<option value="%s"%s>%s</option>`, s.value, selected, s.label)
		}
		w.raw(`</select><button type="submit">Search</button></form>`)
		w.raw(`<div id="results">`)
		w.component(ctx, ArticleList(p))
		w.raw(`</div>`)
	})
}

// ArticleList renders the search results, swapped in by htmx.
func ArticleList(p views.ArticlesPage) templ.Component {
	return component(func(_ context.Context, w *writer) {
		if p.Filtered() {
			w.rawf(`<p class="count">%d results</p>`, p.Total)
		}
		articleGrid(w, p.Articles, "No articles match your search.")
	})
}

func Article(site views.SiteConfig, p views.ArticlePage) templ.Component {
	a := p.Article
	return page(site, p.Meta, views.ArticleJsonLD(site, a), func(ctx context.Context, w *writer) {
		w.raw(`<article class="post">`)
		w.rawf(`<a class="category" href="%s">%s</a>`, attr(a.Category.Link()), attr(a.Category.Name))
		w.rawf(`<h1>%s</h1>`, attr(a.Title))
		w.rawf(`<p class="byline"><a href="%s">%s</a>`, attr(a.Author.Link()), attr(a.Author.Name))
		if d := views.FormatDate(a.PublishedAt); d != "" {
			w.rawf(` · %s`, d)
		}
		w.rawf(` · %s views</p>`, views.CompactViews(a.Views))
		if a.Image != "" {
			w.rawf(`<img class="cover" src="%s" alt="%s">`, attr(a.Image), attr(a.Title))
		}
		w.raw(`<div class="body">`)
		w.component(ctx, richtext.HTML(a.Content))
		w.raw(`</div></article>`)
		if len(p.Related) > 0 {
			w.raw(`<section class="related"><h2>Related</h2>`)
			articleGrid(w, p.Related, "")
			w.raw(`</section>`)
		}
	})
}

func Categories(site views.SiteConfig, p views.CategoriesPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.rawf(`<h1>Categories</h1><p>%d categories · %s views</p>`, p.Total, views.CompactViews(p.TotalViews))
		w.raw(`<ul class="categories">`)
		for _, s := range p.Categories {
			w.rawf(`<li><a href="%s">%s</a> <span>%d articles · %d authors · %s views</span>`,
				attr(s.Category.Link()), attr(s.Category.Name), s.ArticleCount, s.AuthorCount, views.CompactViews(s.TotalViews))
			if s.Latest != nil {
				w.rawf(`<p>Latest: <a href="%s">%s</a></p>`, attr(s.Latest.Link()), attr(s.Latest.Title))
			}
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)
	})
}

func Category(site views.SiteConfig, p views.CategoryPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.rawf(`<h1>%s</h1>`, attr(p.Category.Name))
		articleGrid(w, p.Articles, "No articles in this category yet.")
	})
}

func Authors(site views.SiteConfig, p views.AuthorsPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.raw(`<h1>Authors</h1><ul class="authors">`)
		for _, s := range p.Authors {
			w.raw(`<li>`)
			avatar(w, s.Author)
			w.rawf(`<a href="%s">%s</a>`, attr(s.Author.Link()), attr(s.Author.Name))
			if s.Author.Bio != "" {
				w.rawf(`<p>%s</p>`, attr(s.Author.Bio))
			}
			w.rawf(`<span>%d articles · %d featured · %s avg views</span></li>`,
				s.ArticleCount, s.FeaturedCount, views.CompactViews(s.AvgViews))
		}
		w.raw(`</ul>`)
	})
}

func Author(site views.SiteConfig, p views.AuthorPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.raw(`<header class="author">`)
		avatar(w, p.Author)
		w.rawf(`<h1>%s</h1>`, attr(p.Author.Name))
		if p.Author.Bio != "" {
			w.rawf(`<p>%s</p>`, attr(p.Author.Bio))
		}
		w.raw(`</header>`)
		articleGrid(w, p.Articles, "No articles by this author yet.")
	})
}

func avatar(w *writer, a views.Author) {
	if a.Avatar != "" {
		w.rawf(`<img class="avatar" src="%s" alt="%s">`, attr(a.Avatar), attr(a.Name))
		return
	}
	w.rawf(`<span class="avatar">%s</span>`, attr(views.Initial(a.Name)))
}

func Tags(site views.SiteConfig, p views.TagsPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.raw(`<h1>Tags</h1>`)
		if len(p.Tags) == 0 {
			w.raw(`<p class="empty">No tags yet.</p>`)
			return
		}
		w.raw(`<ul class="tags">`)
		for _, s := range p.Tags {
			w.rawf(`<li><a href="%s">#%s</a> <span>%d</span></li>`, attr(s.Tag.Link()), attr(s.Tag.Name), s.ArticleCount)
		}
		w.raw(`</ul>`)
	})
}

func Tag(site views.SiteConfig, p views.TagPage) templ.Component {
	return page(site, p.Meta, "", func(_ context.Context, w *writer) {
		w.rawf(`<h1>#%s</h1>`, attr(p.Tag.Name))
		articleGrid(w, p.Articles, "No articles with this tag.")
	})
}

// Newsletter is the signup widget; htmx replaces it in place on submit.
func Newsletter(s views.Newsletter) templ.Component {
	return component(func(_ context.Context, w *writer) {
		w.raw(`<section id="newsletter" class="newsletter">`)
		if s.Subscribed {
			w.raw(`<p>Thanks for subscribing!</p></section>`)
			return
		}
		w.raw(`<h2>Stay in the loop</h2>`)
		if s.Error != "" {
			w.rawf(`<p class="error">%s</p>`, attr(s.Error))
		}
		w.raw(`<form method="post" action="/newsletter/" hx-post="/newsletter/" hx-target="#newsletter" hx-swap="outerHTML">`)
		w.rawf(`<input type="hidden" name="_csrf" value="%s">`, attr(s.CSRFToken))
		w.raw(`<input type="email" name="email" required placeholder="you@example.com"><button type="submit">Subscribe</button></form></section>`)
	})
}

func NotFound() templ.Component {
	return component(func(_ context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Not found</title></head>`)
		w.raw(`<body><h1>Page not found</h1><p><a href="/">Back to the front page</a></p></body></html>`)
	})
}

func ServerError() templ.Component {
	return component(func(_ context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error</title></head>`)
		w.raw(`<body><h1>Something went wrong</h1><p>Please try again in a moment.</p></body></html>`)
	})
}

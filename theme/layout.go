// Package theme is the built-in set of views used by the techpulse binary.
// Sites embedding the library usually supply their own templ templates.
package theme

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/techpulse/views"
)

// writer accumulates the first write error so markup can be emitted without
// checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) rawf(format string, args ...any) {
	if w.err == nil {
		_, w.err = fmt.Fprintf(w.w, format, args...)
	}
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err == nil {
		w.err = c.Render(ctx, w.w)
	}
}

func attr(s string) string {
	return templ.EscapeString(s)
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

// page wraps body in the document shell with OpenGraph metadata.
func page(site views.SiteConfig, meta views.PageMeta, jsonLD string, body func(ctx context.Context, w *writer)) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.rawf(`<title>%s</title>`, attr(meta.Title))
		w.rawf(`<meta name="description" content="%s">`, attr(meta.Description))
		w.rawf(`<link rel="canonical" href="%s">`, attr(meta.URL))
		w.rawf(`<meta property="og:title" content="%s">`, attr(meta.Title))
		w.rawf(`<meta property="og:description" content="%s">`, attr(meta.Description))
		w.rawf(`<meta property="og:url" content="%s">`, attr(meta.URL))
		w.rawf(`<meta property="og:type" content="%s">`, attr(meta.OGType))
		w.rawf(`<meta property="og:site_name" content="%s">`, attr(site.Name))
		if meta.Image != "" {
			w.rawf(`<meta property="og:image" content="%s">`, attr(meta.Image))
		}
		w.rawf(`<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">`, attr(site.Name))
		w.rawf(`<link rel="stylesheet" href="/public/styles.css">`)
		w.raw(`<script src="/public/htmx.min.js" defer></script>`)
		if jsonLD != "" {
			w.rawf(`<script type="application/ld+json">%s</script>`, jsonLD)
		}
		w.raw(`</head><body><header class="site-header">`)
		w.rawf(`<a class="brand" href="/">%s</a><nav>`, attr(site.Name))
		w.raw(`<a href="/articles/">Articles</a><a href="/categories/">Categories</a><a href="/authors/">Authors</a><a href="/tags/">Tags</a>`)
		w.raw(`</nav></header><main>`)
		body(ctx, w)
		w.rawf(`</main><footer class="site-footer"><p>%s</p><a href="/feed.xml">RSS</a></footer></body></html>`, attr(site.Description))
	})
}

func articleCard(w *writer, a views.Article) {
	w.raw(`<article class="card">`)
	if a.Image != "" {
		w.rawf(`<img src="%s" alt="%s" loading="lazy">`, attr(a.Image), attr(a.Title))
	}
	w.rawf(`<a class="category" href="%s">%s</a>`, attr(a.Category.Link()), attr(a.Category.Name))
	w.rawf(`<h3><a href="%s">%s</a></h3>`, attr(a.Link()), attr(a.Title))
	if a.Excerpt != "" {
		w.rawf(`<p>%s</p>`, attr(a.Excerpt))
	}
	w.rawf(`<p class="byline"><a href="%s">%s</a>`, attr(a.Author.Link()), attr(a.Author.Name))
	if d := views.FormatDate(a.PublishedAt); d != "" {
		w.rawf(` · <time datetime="%s">%s</time>`, a.PublishedAt.Format("2006-01-02"), d)
	}
	w.rawf(` · %s views</p></article>`, views.CompactViews(a.Views))
}

func articleGrid(w *writer, list []views.Article, empty string) {
	if len(list) == 0 {
		w.rawf(`<p class="empty">%s</p>`, attr(empty))
		return
	}
	w.raw(`<div class="grid">`)
	for _, a := range list {
		articleCard(w, a)
	}
	w.raw(`</div>`)
}

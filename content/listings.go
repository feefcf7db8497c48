package content

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/techpulse/views"
)

// Authors returns the distinct authors of all articles in first-seen order.
func (s *Service) Authors(ctx context.Context) []views.Author {
	return authorsOf(s.articles(ctx, "authors"))
}

// AuthorBySlug finds an author by slug with a linear scan of Authors.
func (s *Service) AuthorBySlug(ctx context.Context, slug string) (views.Author, bool) {
	for _, a := range s.Authors(ctx) {
		if a.Slug == slug {
			return a, true
		}
	}
	return views.Author{}, false
}

// Categories returns the distinct categories of all articles in first-seen order.
func (s *Service) Categories(ctx context.Context) []views.Category {
	return categoriesOf(s.articles(ctx, "categories"))
}

// CategoryBySlug finds a category by slug with a linear scan of Categories.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (views.Category, bool) {
	for _, c := range s.Categories(ctx) {
		if c.Slug == slug {
			return c, true
		}
	}
	return views.Category{}, false
}

// Tags returns every tag. The backend has none.
func (s *Service) Tags(context.Context) []views.Tag {
	return []views.Tag{}
}

// TagBySlug finds a tag by slug. The backend has none.
func (s *Service) TagBySlug(context.Context, string) (views.Tag, bool) {
	return views.Tag{}, false
}

// TagStats returns tags with their article counts, most used first.
func (s *Service) TagStats(ctx context.Context) []views.TagStats {
	stats := []views.TagStats{}
	for _, t := range s.Tags(ctx) {
		stats = append(stats, views.TagStats{Tag: t, ArticleCount: len(s.ArticlesByTag(ctx, t.Slug))})
	}
	slices.SortStableFunc(stats, func(a, b views.TagStats) int {
		return b.ArticleCount - a.ArticleCount
	})
	return stats
}

// Stats summarizes the site. The three listings are fetched concurrently.
func (s *Service) Stats(ctx context.Context) views.SiteStats {
	var (
		articles   []views.Article
		authors    []views.Author
		categories []views.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		articles = s.Articles(gctx)
		return nil
	})
	g.Go(func() error {
		authors = s.Authors(gctx)
		return nil
	})
	g.Go(func() error {
		categories = s.Categories(gctx)
		return nil
	})
	// Each listing absorbs its own failure, so Wait never returns an error.
	_ = g.Wait()

	return views.SiteStats{
		Articles:   len(articles),
		Authors:    len(authors),
		Categories: len(categories),
		TotalViews: totalViews(articles),
	}
}

// CategoryStats returns every category with aggregates over its articles,
// the categories with the most articles first.
func (s *Service) CategoryStats(ctx context.Context) []views.CategoryStats {
	list := s.articles(ctx, "category stats")
	byCategory := make(map[string][]views.Article)
	for _, a := range list {
		byCategory[a.Category.Slug] = append(byCategory[a.Category.Slug], a)
	}

	stats := []views.CategoryStats{}
	for _, c := range categoriesOf(list) {
		articles := byCategory[c.Slug]
		names := make(map[string]struct{})
		for _, a := range articles {
			names[a.Author.Name] = struct{}{}
		}
		stats = append(stats, views.CategoryStats{
			Category:     c,
			ArticleCount: len(articles),
			TotalViews:   totalViews(articles),
			AuthorCount:  len(names),
			Latest:       latestOf(articles),
		})
	}
	slices.SortStableFunc(stats, func(a, b views.CategoryStats) int {
		return b.ArticleCount - a.ArticleCount
	})
	return stats
}

// AuthorStats returns every author with aggregates over their articles, the
// most prolific authors first.
func (s *Service) AuthorStats(ctx context.Context) []views.AuthorStats {
	list := s.articles(ctx, "author stats")
	byAuthor := make(map[string][]views.Article)
	for _, a := range list {
		byAuthor[a.Author.Slug] = append(byAuthor[a.Author.Slug], a)
	}

	stats := []views.AuthorStats{}
	for _, au := range authorsOf(list) {
		articles := byAuthor[au.Slug]
		st := views.AuthorStats{
			Author:       au,
			ArticleCount: len(articles),
			TotalViews:   totalViews(articles),
			Latest:       latestOf(articles),
		}
		for _, a := range articles {
			if a.Featured {
				st.FeaturedCount++
			}
		}
		if st.ArticleCount > 0 {
			st.AvgViews = (st.TotalViews + st.ArticleCount/2) / st.ArticleCount
		}
		stats = append(stats, st)
	}
	slices.SortStableFunc(stats, func(a, b views.AuthorStats) int {
		return b.ArticleCount - a.ArticleCount
	})
	return stats
}

func authorsOf(list []views.Article) []views.Author {
	seen := make(map[string]struct{})
	authors := []views.Author{}
	for _, a := range list {
		if _, ok := seen[a.Author.ID]; ok {
			continue
		}
		seen[a.Author.ID] = struct{}{}
		authors = append(authors, a.Author)
	}
	return authors
}

func categoriesOf(list []views.Article) []views.Category {
	seen := make(map[string]struct{})
	categories := []views.Category{}
	for _, a := range list {
		if _, ok := seen[a.Category.ID]; ok {
			continue
		}
		seen[a.Category.ID] = struct{}{}
		categories = append(categories, a.Category)
	}
	return categories
}

func totalViews(list []views.Article) int {
	total := 0
	for _, a := range list {
		total += a.Views
	}
	return total
}

// latestOf returns the most recently published article, the earliest in
// list on ties, or nil for an empty list.
func latestOf(list []views.Article) *views.Article {
	if len(list) == 0 {
		return nil
	}
	latest := list[0]
	for _, a := range list[1:] {
		if a.PublishedAt.After(latest.PublishedAt) {
			latest = a
		}
	}
	return &latest
}

package content

import (
	"context"
	"slices"
	"strings"

	"github.com/eringen/techpulse/views"
)

// Sort orders for article listings.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortPopular      = "popular"
	SortAlphabetical = "alphabetical"
)

// Query filters and orders the article listing page.
type Query struct {
	Text     string // case-insensitive match on title, excerpt, author and category names
	Category string // category slug; "" or "all" matches every category
	Sort     string // one of the Sort constants; defaults to SortNewest
}

// Search returns the articles matching q in the requested order.
func (s *Service) Search(ctx context.Context, q Query) []views.Article {
	list := s.articles(ctx, "search")

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		list = filter(list, func(a views.Article) bool {
			return strings.Contains(strings.ToLower(a.Title), text) ||
				strings.Contains(strings.ToLower(a.Excerpt), text) ||
				strings.Contains(strings.ToLower(a.Author.Name), text) ||
				strings.Contains(strings.ToLower(a.Category.Name), text)
		})
	}
	if q.Category != "" && q.Category != "all" {
		list = filter(list, func(a views.Article) bool {
			return a.Category.Slug == q.Category
		})
	}
	sortArticles(list, q.Sort)
	return list
}

// NormalizeSort maps unknown sort names to SortNewest.
func NormalizeSort(s string) string {
	switch s {
	case SortOldest, SortPopular, SortAlphabetical:
		return s
	default:
		return SortNewest
	}
}

// sortArticles orders list in place. The sort is stable so equal keys keep
// their backend order.
func sortArticles(list []views.Article, order string) {
	switch NormalizeSort(order) {
	case SortOldest:
		slices.SortStableFunc(list, func(a, b views.Article) int {
			return a.PublishedAt.Compare(b.PublishedAt)
		})
	case SortPopular:
		slices.SortStableFunc(list, func(a, b views.Article) int {
			return b.Views - a.Views
		})
	case SortAlphabetical:
		slices.SortStableFunc(list, func(a, b views.Article) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	default:
		slices.SortStableFunc(list, func(a, b views.Article) int {
			return b.PublishedAt.Compare(a.PublishedAt)
		})
	}
}

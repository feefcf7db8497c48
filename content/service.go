// Package content implements the listing functions the site pages are built
// from. Every function re-reads the whole article collection and filters,
// sorts and slices it in memory. None of them return errors: failures are
// logged and turn into empty results.
package content

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/views"
)

// Default result sizes when a caller passes a non-positive limit.
const (
	DefaultFeaturedLimit = 5
	DefaultLatestLimit   = 10
	DefaultTopLimit      = 3
	DefaultRelatedLimit  = 3
)

// Service answers listing queries from a cms.Source.
type Service struct {
	src    cms.Source
	mapper cms.Mapper
	log    *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// New creates a Service reading from src and mapping records with mapper.
func New(src cms.Source, mapper cms.Mapper, opts ...Option) *Service {
	s := &Service{src: src, mapper: mapper}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New("content")
	}
	return s
}

// collection fetches and maps the full article list. Source errors and
// panics while mapping are reported as an error so the public functions can
// absorb them in one place.
func (s *Service) collection(ctx context.Context) (articles []views.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content: mapping collection: %v", r)
		}
	}()
	env, err := s.src.Fetch(ctx, cms.Collection())
	if err != nil {
		return nil, err
	}
	return s.mapper.Articles(env.Articles), nil
}

func (s *Service) document(ctx context.Context, id string) (article views.Article, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content: mapping document %q: %v", id, r)
		}
	}()
	env, err := s.src.Fetch(ctx, cms.Document(id))
	if err != nil {
		return views.Article{}, false, err
	}
	if env.Data == nil {
		return views.Article{}, false, nil
	}
	return s.mapper.Article(*env.Data), true, nil
}

// articles is the fail-closed entry point used by every listing.
func (s *Service) articles(ctx context.Context, op string) []views.Article {
	list, err := s.collection(ctx)
	if err != nil {
		s.log.Errorf("%s: %v", op, err)
		return []views.Article{}
	}
	return list
}

// Articles returns every article in backend order.
func (s *Service) Articles(ctx context.Context) []views.Article {
	return s.articles(ctx, "articles")
}

// ArticleBySlug returns the article whose slug (its document identifier) is slug.
func (s *Service) ArticleBySlug(ctx context.Context, slug string) (views.Article, bool) {
	if slug == "" {
		return views.Article{}, false
	}
	a, ok, err := s.document(ctx, slug)
	if err != nil {
		s.log.Warnf("article %q: %v", slug, err)
		return views.Article{}, false
	}
	return a, ok
}

// ArticlesByCategory returns the articles whose category slug equals slug.
func (s *Service) ArticlesByCategory(ctx context.Context, slug string) []views.Article {
	return filter(s.articles(ctx, "articles by category"), func(a views.Article) bool {
		return a.Category.Slug == slug
	})
}

// ArticlesByAuthor returns the articles whose author slug (or email) equals slug.
func (s *Service) ArticlesByAuthor(ctx context.Context, slug string) []views.Article {
	return filter(s.articles(ctx, "articles by author"), func(a views.Article) bool {
		return a.Author.Slug == slug
	})
}

// ArticlesByTag returns the articles carrying the tag. The backend has no
// tags, so the result is always empty.
func (s *Service) ArticlesByTag(_ context.Context, _ string) []views.Article {
	return []views.Article{}
}

// Featured returns up to limit articles flagged as featured, in backend order.
func (s *Service) Featured(ctx context.Context, limit int) []views.Article {
	featured := filter(s.articles(ctx, "featured"), func(a views.Article) bool {
		return a.Featured
	})
	return take(featured, orDefault(limit, DefaultFeaturedLimit))
}

// Latest returns the limit most recently published articles. Ties keep backend order.
func (s *Service) Latest(ctx context.Context, limit int) []views.Article {
	list := s.articles(ctx, "latest")
	sortArticles(list, SortNewest)
	return take(list, orDefault(limit, DefaultLatestLimit))
}

// Top returns the limit most viewed articles. Ties keep backend order.
func (s *Service) Top(ctx context.Context, limit int) []views.Article {
	list := s.articles(ctx, "top")
	sortArticles(list, SortPopular)
	return take(list, orDefault(limit, DefaultTopLimit))
}

// Related returns up to limit other articles in the same category as the
// current one. Tags are accepted for callers but not used: the backend has none.
func (s *Service) Related(ctx context.Context, currentID string, category views.Category, _ []views.Tag, limit int) []views.Article {
	related := filter(s.articles(ctx, "related"), func(a views.Article) bool {
		return a.ID != currentID && a.Category.Slug == category.Slug
	})
	return take(related, orDefault(limit, DefaultRelatedLimit))
}

func filter(list []views.Article, keep func(views.Article) bool) []views.Article {
	out := []views.Article{}
	for _, a := range list {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func take(list []views.Article, n int) []views.Article {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

package content

import (
	"context"
	"errors"
	"testing"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/views"
)

func TestAuthorsFirstSeen(t *testing.T) {
	authors := fixtureService().Authors(context.Background())
	want := []string{"sarah-chen", "emily@techpulse.dev", "mike-johnson"}
	if len(authors) != len(want) {
		t.Fatalf("got %d authors, want %d", len(authors), len(want))
	}
	for i, id := range want {
		if authors[i].ID != id {
			t.Errorf("authors[%d].ID = %q, want %q", i, authors[i].ID, id)
		}
	}
}

func TestCategoriesDeduplicated(t *testing.T) {
	s := newTestService(cms.NewMockSource(
		cms.Record{DocumentID: "a", Category: &cms.RecordCategory{Name: "AI", Slug: "ai"}},
		cms.Record{DocumentID: "b", Category: &cms.RecordCategory{Name: "AI", Slug: "ai"}},
		cms.Record{DocumentID: "c"},
	))
	cats := s.Categories(context.Background())
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2: %+v", len(cats), cats)
	}
	if cats[0].Slug != "ai" || cats[1] != views.UncategorizedCategory {
		t.Errorf("unexpected categories: %+v", cats)
	}
}

func TestLookupBySlug(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	if a, ok := s.AuthorBySlug(ctx, "sarah-chen"); !ok || a.Name != "Sarah Chen" {
		t.Errorf("AuthorBySlug(sarah-chen) = %+v, %v", a, ok)
	}
	if _, ok := s.AuthorBySlug(ctx, "nobody"); ok {
		t.Error("unknown author should not be found")
	}
	if c, ok := s.CategoryBySlug(ctx, "startups"); !ok || c.Name != "Startups" {
		t.Errorf("CategoryBySlug(startups) = %+v, %v", c, ok)
	}
	if _, ok := s.CategoryBySlug(ctx, "gardening"); ok {
		t.Error("unknown category should not be found")
	}
}

func TestTagsAreEmpty(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()
	if tags := s.Tags(ctx); tags == nil || len(tags) != 0 {
		t.Errorf("Tags = %v, want empty", tags)
	}
	if _, ok := s.TagBySlug(ctx, "go"); ok {
		t.Error("TagBySlug should never match")
	}
	if st := s.TagStats(ctx); st == nil || len(st) != 0 {
		t.Errorf("TagStats = %v, want empty", st)
	}
}

func TestStats(t *testing.T) {
	got := fixtureService().Stats(context.Background())
	want := views.SiteStats{Articles: 6, Authors: 3, Categories: 4, TotalViews: 4970}
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestStatsWithBackendDown(t *testing.T) {
	s := newTestService(failingSource{err: errors.New("down")})
	if got := s.Stats(context.Background()); got != (views.SiteStats{}) {
		t.Errorf("Stats = %+v, want zero", got)
	}
}

func TestCategoryStats(t *testing.T) {
	stats := fixtureService().CategoryStats(context.Background())
	wantOrder := []string{"ai", "web-development", "mobile", "startups"}
	if len(stats) != len(wantOrder) {
		t.Fatalf("got %d stats, want %d", len(stats), len(wantOrder))
	}
	for i, slug := range wantOrder {
		if stats[i].Category.Slug != slug {
			t.Errorf("stats[%d] = %q, want %q", i, stats[i].Category.Slug, slug)
		}
	}

	ai := stats[0]
	if ai.ArticleCount != 2 || ai.TotalViews != 2140 || ai.AuthorCount != 2 {
		t.Errorf("ai stats = %+v", ai)
	}
	if ai.Latest == nil || ai.Latest.ID != "k3v9future0ai1web" {
		t.Errorf("ai latest = %+v", ai.Latest)
	}
}

func TestAuthorStats(t *testing.T) {
	stats := fixtureService().AuthorStats(context.Background())
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}

	tests := []struct {
		slug     string
		total    int
		avg      int
		featured int
		latest   string
	}{
		{"sarah-chen", 2350, 1175, 2, "k3v9future0ai1web"},
		{"emily@techpulse.dev", 1870, 935, 2, "p8m2scalable0react"},
		{"mike-johnson", 750, 375, 0, "z1q7nextjs15news"},
	}
	for i, tt := range tests {
		st := stats[i]
		if st.Author.Slug != tt.slug {
			t.Fatalf("stats[%d].Author.Slug = %q, want %q", i, st.Author.Slug, tt.slug)
		}
		if st.ArticleCount != 2 || st.TotalViews != tt.total || st.AvgViews != tt.avg || st.FeaturedCount != tt.featured {
			t.Errorf("%s stats = %+v", tt.slug, st)
		}
		if st.Latest == nil || st.Latest.ID != tt.latest {
			t.Errorf("%s latest = %+v, want %s", tt.slug, st.Latest, tt.latest)
		}
	}
}

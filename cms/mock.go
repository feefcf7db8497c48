package cms

import (
	"context"
	"fmt"

	"github.com/eringen/techpulse/richtext"
)

type mockProvider func(ctx context.Context, req Request) (Envelope, error)

// MockSource answers requests from in-memory fixture records. Each request
// kind is dispatched to its own provider.
type MockSource struct {
	records   []Record
	providers map[RequestKind]mockProvider
}

// NewMockSource serves records, or the built-in fixtures when none are given.
func NewMockSource(records ...Record) *MockSource {
	if len(records) == 0 {
		records = Fixtures()
	}
	m := &MockSource{records: records}
	m.providers = map[RequestKind]mockProvider{
		KindCollection: m.collection,
		KindDocument:   m.document,
	}
	return m
}

// Fetch dispatches req to the provider registered for its kind.
func (m *MockSource) Fetch(ctx context.Context, req Request) (Envelope, error) {
	p, ok := m.providers[req.Kind]
	if !ok {
		return Envelope{}, fmt.Errorf("cms: no mock provider for %s", req.Kind)
	}
	return p(ctx, req)
}

func (m *MockSource) collection(context.Context, Request) (Envelope, error) {
	recs := make([]Record, len(m.records))
	copy(recs, m.records)
	return Envelope{Articles: recs}, nil
}

func (m *MockSource) document(_ context.Context, req Request) (Envelope, error) {
	for _, r := range m.records {
		if r.DocumentID == req.DocumentID {
			rec := r
			ok := true
			return Envelope{Success: &ok, Data: &rec}, nil
		}
	}
	return Envelope{}, fmt.Errorf("cms: document %q: %w", req.DocumentID, ErrNotFound)
}

// Fixtures returns the preview content used when the site runs without a backend.
func Fixtures() []Record {
	sarah := &RecordAuthor{
		Name:   "Sarah Chen",
		Email:  "sarah@techpulse.dev",
		Slug:   strPtr("sarah-chen"),
		Bio:    bio("Senior Tech Writer"),
		Avatar: &Media{URL: "/uploads/sarah_chen_4f1a.jpg"},
	}
	mike := &RecordAuthor{
		Name:  "Mike Johnson",
		Email: "mike@techpulse.dev",
		Slug:  strPtr("mike-johnson"),
		Bio:   bio("AI Researcher"),
	}
	emily := &RecordAuthor{
		Name:  "Emily Rodriguez",
		Email: "emily@techpulse.dev",
		Bio:   bio("Frontend Developer"),
	}
	ai := &RecordCategory{Name: "AI & Machine Learning", Slug: "ai"}
	web := &RecordCategory{Name: "Web Development", Slug: "web-development"}
	mobile := &RecordCategory{Name: "Mobile", Slug: "mobile"}
	startups := &RecordCategory{Name: "Startups", Slug: "startups"}

	return []Record{
		{
			DocumentID:  "k3v9future0ai1web",
			Title:       "The Future of AI in Web Development",
			Description: "Exploring how artificial intelligence is revolutionizing the way we build web applications.",
			Content:     "Artificial intelligence is transforming web development in unprecedented ways. From automated code generation to intelligent user interfaces, AI is becoming an integral part of the development process.\n\nIn this guide, we explore the latest AI tools and techniques that are reshaping how developers approach web projects.",
			Featured:    boolPtr(true),
			Author:      sarah,
			Category:    ai,
			PublishedAt: "2024-01-15T10:00:00.000Z",
			Views:       intPtr(1250),
			Cover:       &Media{URL: "/uploads/future_ai_web_7c2d.jpg"},
		},
		{
			DocumentID:  "p8m2scalable0react",
			Title:       "Building Scalable React Applications with TypeScript",
			Description: "Learn best practices for building large-scale React applications using TypeScript.",
			Content:     "TypeScript has become the go-to choice for building robust React applications.\n\nWe cover everything from proper type definitions to advanced component patterns that help you build maintainable applications.",
			Featured:    boolPtr(true),
			Author:      emily,
			Category:    web,
			PublishedAt: "2024-01-14T14:30:00.000Z",
			Views:       intPtr(980),
			Cover:       &Media{URL: "/uploads/scalable_react_91ab.jpg"},
		},
		{
			DocumentID:  "z1q7nextjs15news",
			Title:       "Next.js 15: What's New and Exciting",
			Description: "An overview of the latest features and improvements in Next.js 15.",
			Content:     "Next.js 15 brings new features that will enhance your development experience.\n\nLet's dive into the most significant updates and how they can benefit your projects.",
			Featured:    boolPtr(false),
			Author:      mike,
			Category:    web,
			PublishedAt: "2024-01-13T09:15:00.000Z",
			Views:       intPtr(750),
		},
		{
			DocumentID:  "r5t4mobile0trends",
			Title:       "Mobile App Development Trends in 2024",
			Description: "Discover the latest trends shaping mobile app development this year.",
			Content:     "Mobile app development continues to evolve rapidly. This year brings new frameworks, design patterns, and user experience innovations.\n\nStay ahead of the curve with these emerging trends and technologies.",
			Featured:    boolPtr(true),
			Author:      sarah,
			Category:    mobile,
			PublishedAt: "2024-01-12T16:45:00.000Z",
			Views:       intPtr(1100),
		},
		{
			DocumentID:  "u6w3startup0unicorns",
			Title:       "Startup Success Stories: Tech Unicorns of 2024",
			Description: "Learn from the most successful tech startups that achieved unicorn status this year.",
			Content:     "Several companies achieved unicorn status this year, disrupting traditional industries.\n\nWe examine their strategies and what made them successful.",
			Author:      mike,
			Category:    startups,
			PublishedAt: "2024-01-11T11:20:00.000Z",
		},
		{
			DocumentID:  "h2j8ml0frontend",
			Title:       "Machine Learning for Frontend Developers",
			Description: "How frontend developers can leverage machine learning in their applications.",
			Content:     "Machine learning isn't just for data scientists anymore. Frontend developers can now integrate ML capabilities directly into web applications.\n\nDiscover the tools and techniques that make this possible.",
			Featured:    boolPtr(true),
			Author:      emily,
			Category:    ai,
			PublishedAt: "2024-01-10T13:10:00.000Z",
			Views:       intPtr(890),
		},
	}
}

func bio(text string) []richtext.Block {
	return []richtext.Block{{Type: "paragraph", Children: []richtext.Node{{Type: "text", Text: text}}}}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

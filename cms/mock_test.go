package cms

import (
	"context"
	"errors"
	"testing"
)

func TestMockSourceCollection(t *testing.T) {
	m := NewMockSource()
	env, err := m.Fetch(context.Background(), Collection())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(env.Articles) != len(Fixtures()) {
		t.Errorf("got %d articles, want %d", len(env.Articles), len(Fixtures()))
	}
}

func TestMockSourceCollectionIsACopy(t *testing.T) {
	m := NewMockSource(Record{DocumentID: "a", Title: "A"})
	env, _ := m.Fetch(context.Background(), Collection())
	env.Articles[0].Title = "changed"
	again, _ := m.Fetch(context.Background(), Collection())
	if again.Articles[0].Title != "A" {
		t.Errorf("mutating a result leaked into the source")
	}
}

func TestMockSourceDocument(t *testing.T) {
	m := NewMockSource(Record{DocumentID: "a", Title: "A"}, Record{DocumentID: "b", Title: "B"})
	env, err := m.Fetch(context.Background(), Document("b"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if env.Data == nil || env.Data.Title != "B" {
		t.Fatalf("Data = %+v, want record b", env.Data)
	}

	_, err = m.Fetch(context.Background(), Document("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMockSourceUnknownKind(t *testing.T) {
	m := NewMockSource()
	if _, err := m.Fetch(context.Background(), Request{Kind: RequestKind(99)}); err == nil {
		t.Errorf("expected error for unknown request kind")
	}
}

func TestRequestPath(t *testing.T) {
	tests := []struct {
		req      Request
		expected string
		wantErr  bool
	}{
		{Collection(), "/articles/posts", false},
		{Document("abc"), "/articles/posts/abc", false},
		{Document("a b/c"), "/articles/posts/a%20b%2Fc", false},
		{Document(""), "", true},
		{Request{Kind: RequestKind(7)}, "", true},
	}
	for _, tt := range tests {
		got, err := tt.req.Path()
		if (err != nil) != tt.wantErr {
			t.Errorf("Path(%+v) err = %v, wantErr %v", tt.req, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("Path(%+v) = %q, want %q", tt.req, got, tt.expected)
		}
	}
}

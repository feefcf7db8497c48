package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
)

func quietLogger() *log.Logger {
	l := log.New("cms-test")
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		Timeout: timeout,
		Logger:  quietLogger(),
	})
}

const collectionBody = `{"articles":[
	{"documentId":"a1","title":"First","content":"x","description":"d","featured":true,
	 "author":{"name":"Jane","email":"jane@example.com","slug":null,"bio":[]},
	 "category":{"name":"AI","slug":"ai"},"publishedAt":"2024-01-01T00:00:00.000Z","slug":null,"views":100,"cover":null},
	{"documentId":"b2","title":"Second","content":"y","description":"","featured":null,
	 "author":null,"category":null,"publishedAt":"2024-01-02T00:00:00.000Z","slug":null,"views":null,"cover":null}
]}`

func TestClientFetchCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles/posts" {
			t.Errorf("path = %q, want /api/articles/posts", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, collectionBody)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL+"/api/", time.Second)
	env, err := c.Fetch(context.Background(), Collection())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(env.Articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(env.Articles))
	}
	if env.Articles[1].Author != nil || env.Articles[1].Views != nil || env.Articles[1].Featured != nil {
		t.Errorf("null fields should decode as nil: %+v", env.Articles[1])
	}
	if *env.Articles[0].Views != 100 {
		t.Errorf("views = %d, want 100", *env.Articles[0].Views)
	}
}

func TestClientFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/posts/a1" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"success":true,"data":{"documentId":"a1","title":"First"}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	env, err := c.Fetch(context.Background(), Document("a1"))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if env.Data == nil || env.Data.Title != "First" {
		t.Fatalf("Data = %+v", env.Data)
	}

	_, err = c.Fetch(context.Background(), Document("nope"))
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Errorf("err = %v, want 404 StatusError", err)
	}
}

func TestClientCachesWithinRevalidateWindow(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		io.WriteString(w, collectionBody)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		env, err := c.Fetch(context.Background(), Collection())
		if err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
		if len(env.Articles) != 2 {
			t.Fatalf("Fetch %d got %d articles", i, len(env.Articles))
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("backend hits = %d, want 1", got)
	}

	c.Invalidate(context.Background())
	if _, err := c.Fetch(context.Background(), Collection()); err != nil {
		t.Fatalf("Fetch after invalidate failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("backend hits after invalidate = %d, want 2", got)
	}
}

func TestClientCachingDisabled(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		io.WriteString(w, collectionBody)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Revalidate: -1, Logger: quietLogger()})
	c.Fetch(context.Background(), Collection())
	c.Fetch(context.Background(), Collection())
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("backend hits = %d, want 2", got)
	}
}

func TestClientNonSuccessStatusIsAnError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, collectionBody)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	env, err := c.Fetch(context.Background(), Collection())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Status != http.StatusInternalServerError || se.Body != "boom" {
		t.Errorf("StatusError = %+v", se)
	}
	if IsBenign(err) {
		t.Errorf("status errors must not be benign")
	}
	if !env.Empty() {
		t.Errorf("env should be empty on error")
	}

	// failures are not cached
	env, err = c.Fetch(context.Background(), Collection())
	if err != nil || len(env.Articles) != 2 {
		t.Errorf("second Fetch = %d articles, err %v", len(env.Articles), err)
	}
}

func TestClientTimeoutYieldsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 50*time.Millisecond)
	start := time.Now()
	env, err := c.Fetch(context.Background(), Collection())
	if err != nil {
		t.Fatalf("timeout should be absorbed, got %v", err)
	}
	if !env.Empty() {
		t.Errorf("env = %+v, want empty", env)
	}
	if time.Since(start) > time.Second {
		t.Errorf("request was not abandoned at the timeout")
	}
}

func TestClientConnectionRefusedYieldsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(url, time.Second)
	env, err := c.Fetch(context.Background(), Collection())
	if err != nil {
		t.Fatalf("connection failure should be absorbed, got %v", err)
	}
	if !env.Empty() {
		t.Errorf("env = %+v, want empty", env)
	}
}

func TestClientDecodeFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"articles": [`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	if _, err := c.Fetch(context.Background(), Collection()); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestIsBenign(t *testing.T) {
	if IsBenign(nil) {
		t.Errorf("nil is not benign")
	}
	if !IsBenign(context.DeadlineExceeded) {
		t.Errorf("deadline exceeded should be benign")
	}
	if IsBenign(errors.New("other")) {
		t.Errorf("plain errors are not benign")
	}
	if IsBenign(&StatusError{Status: 502}) {
		t.Errorf("status errors are not benign")
	}
}

func TestClientDoesNotCacheEmptyEnvelopes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false}`)
	}))
	defer srv.Close()

	mc := NewMemoryCache()
	c := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Cache:   mc,
		Logger:  quietLogger(),
	})
	for i := 0; i < 500; i++ {
		env, err := c.Fetch(context.Background(), Document(fmt.Sprintf("junk-%d", i)))
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !env.Empty() {
			t.Fatalf("env = %+v, want empty", env)
		}
	}
	if mc.Len() != 0 {
		t.Errorf("Len = %d after 500 misses, want 0", mc.Len())
	}
}

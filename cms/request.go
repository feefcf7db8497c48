package cms

import (
	"context"
	"fmt"
	"net/url"
)

// RequestKind tags what a Request asks the backend for.
type RequestKind int

const (
	// KindCollection asks for every article in one response.
	KindCollection RequestKind = iota
	// KindDocument asks for a single article by document identifier.
	KindDocument
)

func (k RequestKind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindDocument:
		return "document"
	default:
		return fmt.Sprintf("RequestKind(%d)", int(k))
	}
}

// Request describes one backend read.
type Request struct {
	Kind       RequestKind
	DocumentID string
}

// Collection returns the request for the full article collection.
func Collection() Request {
	return Request{Kind: KindCollection}
}

// Document returns the request for a single article.
func Document(id string) Request {
	return Request{Kind: KindDocument, DocumentID: id}
}

// Path returns the endpoint path of r relative to the API base URL.
func (r Request) Path() (string, error) {
	switch r.Kind {
	case KindCollection:
		return "/articles/posts", nil
	case KindDocument:
		if r.DocumentID == "" {
			return "", fmt.Errorf("cms: document request without id")
		}
		return "/articles/posts/" + url.PathEscape(r.DocumentID), nil
	default:
		return "", fmt.Errorf("cms: unknown request kind %s", r.Kind)
	}
}

// Source is anything that can answer backend requests: the HTTP client in
// production, the mock source in development and tests.
type Source interface {
	Fetch(ctx context.Context, req Request) (Envelope, error)
}

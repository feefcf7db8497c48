// Package cms talks to the headless content backend: it fetches raw records,
// keeps them for a short revalidation window, and maps them onto the display
// model used by the site.
package cms

import "github.com/eringen/techpulse/richtext"

// Record is one article as the backend returns it.
type Record struct {
	DocumentID  string          `json:"documentId"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Description string          `json:"description"`
	Featured    *bool           `json:"featured"`
	Author      *RecordAuthor   `json:"author"`
	Category    *RecordCategory `json:"category"`
	PublishedAt string          `json:"publishedAt"`
	Slug        *string         `json:"slug"`
	Views       *int            `json:"views"`
	Cover       *Media          `json:"cover"`
}

// RecordAuthor is the author relation embedded in a Record.
type RecordAuthor struct {
	Name   string           `json:"name"`
	Email  string           `json:"email"`
	Bio    []richtext.Block `json:"bio"`
	Slug   *string          `json:"slug"`
	Avatar *Media           `json:"avatar"`
}

// RecordCategory is the category relation embedded in a Record.
type RecordCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Media references an uploaded asset.
type Media struct {
	DocumentID string `json:"documentId,omitempty"`
	URL        string `json:"url"`
}

// Envelope is the top-level body of every backend response. The collection
// endpoint fills Articles; the document endpoint fills Data.
type Envelope struct {
	Success  *bool    `json:"success,omitempty"`
	Data     *Record  `json:"data,omitempty"`
	Articles []Record `json:"articles"`
}

// Empty reports whether the envelope carries no records at all.
func (e Envelope) Empty() bool {
	return e.Data == nil && len(e.Articles) == 0
}

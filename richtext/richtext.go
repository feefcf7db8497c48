// Package richtext turns CMS text fields into HTML and exposes the result as
// templ components.
package richtext

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Block is one node of a CMS rich-text tree, e.g. a paragraph.
type Block struct {
	Type     string `json:"type"`
	Children []Node `json:"children"`
}

// Node is a leaf of a rich-text block.
type Node struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Paragraphs converts plain text into a sequence of <p> elements. Every
// non-blank line becomes one paragraph; runs of blank lines collapse. Line
// text is written verbatim, so entities and inline markup from the CMS pass
// through.
func Paragraphs(text string) string {
	var buf bytes.Buffer
	RenderParagraphs(&buf, text)
	return buf.String()
}

// RenderParagraphs writes the paragraph HTML for text to buf.
func RenderParagraphs(buf *bytes.Buffer, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		buf.WriteString("<p>")
		buf.WriteString(line)
		buf.WriteString("</p>")
	}
}

// FirstText returns the text of the first text node in blocks, or "".
func FirstText(blocks []Block) string {
	for _, b := range blocks {
		for _, n := range b.Children {
			if n.Type == "text" && n.Text != "" {
				return n.Text
			}
		}
	}
	return ""
}

// HTML returns a templ.Component that writes already-rendered HTML unchanged.
func HTML(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// ParagraphsComponent returns a templ.Component that renders text as paragraphs.
func ParagraphsComponent(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderParagraphs(&buf, text)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

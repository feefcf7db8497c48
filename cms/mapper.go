package cms

import (
	"strings"
	"time"

	"github.com/eringen/techpulse/richtext"
	"github.com/eringen/techpulse/views"
)

// DefaultAssetHost serves uploaded covers and avatars.
const DefaultAssetHost = "https://memburb-assets.fra1.cdn.digitaloceanspaces.com"

// Mapper converts backend records into display records. It owns every
// presence default, so display records never carry nil relations.
type Mapper struct {
	AssetHost string
}

// NewMapper returns a Mapper that rewrites asset URLs onto host.
func NewMapper(host string) Mapper {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		host = DefaultAssetHost
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return Mapper{AssetHost: host}
}

// Articles maps every record, preserving order.
func (m Mapper) Articles(recs []Record) []views.Article {
	out := make([]views.Article, 0, len(recs))
	for _, r := range recs {
		out = append(out, m.Article(r))
	}
	return out
}

// Article maps one record. The backend slug is ignored; the document
// identifier doubles as the display slug.
func (m Mapper) Article(r Record) views.Article {
	a := views.Article{
		ID:          r.DocumentID,
		Title:       r.Title,
		Slug:        r.DocumentID,
		Excerpt:     strings.TrimSpace(r.Description),
		Content:     richtext.Paragraphs(r.Content),
		Category:    m.Category(r.Category),
		Tags:        []views.Tag{},
		Author:      m.Author(r.Author),
		PublishedAt: parseTime(r.PublishedAt),
		Featured:    r.Featured != nil && *r.Featured,
	}
	if r.Cover != nil {
		a.Image = m.ImageURL(r.Cover.URL)
	}
	if r.Views != nil && *r.Views > 0 {
		a.Views = *r.Views
	}
	return a
}

// Author maps an author relation, substituting the Anonymous sentinel when absent.
func (m Mapper) Author(ra *RecordAuthor) views.Author {
	if ra == nil {
		return views.AnonymousAuthor
	}
	id := ""
	if ra.Slug != nil {
		id = strings.TrimSpace(*ra.Slug)
	}
	if id == "" {
		id = strings.TrimSpace(ra.Email)
	}
	if id == "" {
		id = views.AnonymousAuthor.ID
	}
	name := strings.TrimSpace(ra.Name)
	if name == "" {
		name = views.AnonymousAuthor.Name
	}
	a := views.Author{
		ID:   id,
		Name: name,
		Slug: id,
		Bio:  richtext.FirstText(ra.Bio),
	}
	if ra.Avatar != nil {
		a.Avatar = m.AvatarURL(ra.Avatar.URL)
	}
	return a
}

// Category maps a category relation, substituting the Uncategorized sentinel when absent.
func (m Mapper) Category(rc *RecordCategory) views.Category {
	if rc == nil || strings.TrimSpace(rc.Slug) == "" {
		return views.UncategorizedCategory
	}
	slug := strings.TrimSpace(rc.Slug)
	name := strings.TrimSpace(rc.Name)
	if name == "" {
		name = slug
	}
	return views.Category{ID: slug, Name: name, Slug: slug}
}

// ImageURL places the filename of ref on the asset host. An empty ref yields "".
func (m Mapper) ImageURL(ref string) string {
	name := filename(ref)
	if name == "" {
		return ""
	}
	return m.AssetHost + "/" + name
}

// AvatarURL resolves an avatar reference. Absolute and protocol-relative URLs
// are kept; anything else is a path and goes through ImageURL.
func (m Mapper) AvatarURL(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	default:
		return m.ImageURL(ref)
	}
}

func filename(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

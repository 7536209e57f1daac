package feed

import (
	"strings"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns raw entries into candidate items. Entries without a title
// or link after cleanup are dropped silently; an unparsable timestamp leaves
// the date empty rather than failing the entry.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run normalizes a single raw entry. The second return value is false when
// the entry is rejected.
func (n *Normalizer) Run(source string, entry Entry) (Item, bool) {
	title := normalizeWhitespace(norm.NFC.String(entry.Title))
	link := strings.TrimSpace(entry.Link)

	if title == "" || link == "" {
		return Item{}, false
	}

	return Item{
		Date:   n.parseDate(entry),
		Source: source,
		Title:  title,
		URL:    link,
	}, true
}

// parseDate resolves the entry's publication day in UTC, preferring the
// published timestamp over updated. Parse failure degrades to "no date".
func (n *Normalizer) parseDate(entry Entry) string {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC().Format("2006-01-02")
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC().Format("2006-01-02")
	}

	raw := entry.Published
	if raw == "" {
		raw = entry.Updated
	}
	if raw == "" {
		return ""
	}

	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return ""
	}
	return parsed.UTC().Format("2006-01-02")
}

// normalizeWhitespace collapses any run of whitespace to a single space and
// trims both ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package feed

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Riku888/industry-news-discord-bot/app/config"
)

// Fetcher pulls raw entries from RSS/Atom sources. A failing source degrades
// to zero entries for that source, never to a run failure.
type Fetcher struct {
	parser         *gofeed.Parser
	perSourceLimit int
}

// NewFetcher creates a fetcher with a bounded per-request timeout.
func NewFetcher(timeout time.Duration, userAgent string, perSourceLimit int) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent

	return &Fetcher{
		parser:         parser,
		perSourceLimit: perSourceLimit,
	}
}

// Run fetches all sources sequentially and returns their raw entries tagged
// with the source name.
func (f *Fetcher) Run(ctx context.Context, sources []config.Source) []SourceEntries {
	results := make([]SourceEntries, 0, len(sources))
	successCount := 0

	for _, src := range sources {
		entries, err := f.fetchSource(ctx, src)
		if err != nil {
			log.Printf("Warning: failed to fetch %s (%s): %v", src.Name, src.RSS, err)
			continue
		}
		results = append(results, SourceEntries{Source: src.Name, Entries: entries})
		successCount++
	}

	log.Printf("Fetched %d/%d sources", successCount, len(sources))
	return results
}

func (f *Fetcher) fetchSource(ctx context.Context, src config.Source) ([]Entry, error) {
	parsed, err := f.parser.ParseURLWithContext(src.RSS, ctx)
	if err != nil {
		return nil, err
	}

	items := parsed.Items
	if f.perSourceLimit > 0 && len(items) > f.perSourceLimit {
		items = items[:f.perSourceLimit]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Title:           item.Title,
			Link:            item.Link,
			Published:       item.Published,
			Updated:         item.Updated,
			PublishedParsed: item.PublishedParsed,
			UpdatedParsed:   item.UpdatedParsed,
		})
	}

	return entries, nil
}

// SourceEntries groups the raw entries fetched from a single source.
type SourceEntries struct {
	Source  string
	Entries []Entry
}

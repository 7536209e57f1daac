package feed

import (
	"sort"
	"strings"
)

// Filterer removes URL duplicates from a batch and drops items irrelevant to
// the configured industry. Dedup is batch-local and first-seen-wins; true
// cross-run dedup happens at the store via insert-or-ignore.
type Filterer struct {
	industryKeywords []string
}

func NewFilterer(industryKeywords []string) *Filterer {
	return &Filterer{industryKeywords: industryKeywords}
}

// Run dedups the batch by URL and then applies the relevance filter, in that
// order.
func (f *Filterer) Run(items []Item) []Item {
	return f.KeepRelevant(f.DedupeByURL(items))
}

// DedupeByURL keeps the first occurrence of each exact URL.
func (f *Filterer) DedupeByURL(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))

	for _, item := range items {
		if seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		out = append(out, item)
	}

	return out
}

// KeepRelevant keeps items where at least one industry keyword appears as a
// case-insensitive substring of the title and URL combined. The keyword set
// is the flattened union across all categories: an item can pass on a
// keyword from a category other than the one it was assigned.
func (f *Filterer) KeepRelevant(items []Item) []Item {
	out := make([]Item, 0, len(items))

	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.URL)
		for _, keyword := range f.industryKeywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				out = append(out, item)
				break
			}
		}
	}

	return out
}

// PickTop returns the n most recent items for the digest: dated items before
// undated ones, newer dates first. The sort is stable so items keep their
// batch order within the same day.
func PickTop(items []Item, n int) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.Date != "") != (b.Date != "") {
			return a.Date != ""
		}
		return a.Date > b.Date
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

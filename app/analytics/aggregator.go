package analytics

import (
	"fmt"

	"github.com/Riku888/industry-news-discord-bot/app/database"
)

// ArticleStats is the read-side store surface the aggregator needs.
type ArticleStats interface {
	CountByDate(days int) ([]database.DateCount, error)
	CountByDateCategory(days int) ([]database.DateLabelCount, error)
	CountByDateSource(days int) ([]database.DateLabelCount, error)
}

// Aggregator computes per-day totals and breakdowns over a trailing window.
// The result is recomputed from scratch on every run; there is no
// incremental state.
type Aggregator struct {
	stats ArticleStats
}

func NewAggregator(stats ArticleStats) *Aggregator {
	return &Aggregator{stats: stats}
}

// Run aggregates dated articles over the trailing window. "Now" is the store
// engine's current date.
func (a *Aggregator) Run(days int) (*DailyCounts, error) {
	totals, err := a.stats.CountByDate(days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	categories, err := a.stats.CountByDateCategory(days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	sources, err := a.stats.CountByDateSource(days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sources: %w", err)
	}

	result := &DailyCounts{
		Dates:      make([]string, 0, len(totals)),
		Total:      make([]int, 0, len(totals)),
		ByCategory: make(map[string]map[string]int, len(totals)),
		BySource:   make(map[string]map[string]int, len(totals)),
	}

	// The totals query is ordered by date ascending, so it doubles as the
	// date axis.
	for _, dc := range totals {
		result.Dates = append(result.Dates, dc.Date)
		result.Total = append(result.Total, dc.Count)
		result.ByCategory[dc.Date] = make(map[string]int)
		result.BySource[dc.Date] = make(map[string]int)
	}

	fillBreakdown(result.ByCategory, categories, UncategorizedLabel)
	fillBreakdown(result.BySource, sources, UnknownSourceLabel)

	return result, nil
}

func fillBreakdown(dest map[string]map[string]int, rows []database.DateLabelCount, fallback string) {
	for _, row := range rows {
		labels, ok := dest[row.Date]
		if !ok {
			continue
		}
		label := row.Label
		if label == "" {
			label = fallback
		}
		labels[label] = row.Count
	}
}

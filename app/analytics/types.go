package analytics

import "encoding/json"

// Fallback labels for rows whose category or source is missing. Breakdown
// maps never carry empty keys.
const (
	UncategorizedLabel = "uncategorized"
	UnknownSourceLabel = "unknown"
)

// DailyCounts is the daily aggregation artifact. Dates is the sorted axis of
// days that have at least one dated article in the window; Total is aligned
// with it index by index. Days with zero articles simply do not appear. Key
// insertion order in the breakdown maps is not meaningful.
type DailyCounts struct {
	Dates      []string                  `json:"dates"`
	Total      []int                     `json:"total"`
	ByCategory map[string]map[string]int `json:"by_category"`
	BySource   map[string]map[string]int `json:"by_source"`
}

// KeywordReport is the trend artifact for a single day.
type KeywordReport struct {
	Date     string        `json:"date"`
	TopToday []TokenCount  `json:"top_today"`
	Rising   []RisingToken `json:"rising"`
}

// TokenCount serializes as a [token, count] pair.
type TokenCount struct {
	Token string
	Count int
}

func (t TokenCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Token, t.Count})
}

// RisingToken serializes as a [token, count, score] triple.
type RisingToken struct {
	Token string
	Count int
	Score float64
}

func (t RisingToken) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Token, t.Count, t.Score})
}

package analytics

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	topTokenCount    = 20
	risingTokenCount = 10

	// Smoothing added to the per-day baseline so tokens unseen in the past
	// window do not divide by zero.
	baselineSmoothing = 0.5
)

var tokenPattern = regexp.MustCompile(`[a-z0-9-]{3,}`)

// stopWords are common English function words excluded from trend counting.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "of": true, "in": true,
	"on": true, "for": true, "and": true, "or": true, "with": true,
	"from": true, "by": true, "as": true, "is": true, "are": true,
	"was": true, "were": true,
}

// TrendSource is the read-side store surface the trend engine needs.
type TrendSource interface {
	TitlesOn(day string) ([]string, error)
	TitlesBefore(days int) ([]string, error)
}

// TrendEngine ranks today's title tokens against a historical baseline.
type TrendEngine struct {
	source TrendSource
	now    func() time.Time
}

func NewTrendEngine(source TrendSource) *TrendEngine {
	return &TrendEngine{
		source: source,
		now:    time.Now,
	}
}

// Run computes today's top tokens and the rising subset. "Today" is the
// current UTC calendar date; the baseline covers the trailing window up to
// but excluding today.
func (e *TrendEngine) Run(days int) (*KeywordReport, error) {
	today := e.now().UTC().Format("2006-01-02")

	todayTitles, err := e.source.TitlesOn(today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's titles: %w", err)
	}

	pastTitles, err := e.source.TitlesBefore(days)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline titles: %w", err)
	}

	todayFreq := countTokens(todayTitles)
	pastFreq := countTokens(pastTitles)

	topToday := topTokens(todayFreq, topTokenCount)

	rising := make([]RisingToken, 0, len(topToday))
	for _, tc := range topToday {
		rising = append(rising, RisingToken{
			Token: tc.Token,
			Count: tc.Count,
			Score: RisingScore(tc.Count, pastFreq[tc.Token], days),
		})
	}

	sort.SliceStable(rising, func(i, j int) bool {
		return rising[i].Score > rising[j].Score
	})
	if len(rising) > risingTokenCount {
		rising = rising[:risingTokenCount]
	}

	return &KeywordReport{
		Date:     today,
		TopToday: topToday,
		Rising:   rising,
	}, nil
}

// RisingScore relates today's count for a token to its smoothed per-day
// frequency in the baseline window, rounded to 2 decimal places.
func RisingScore(todayCount, pastCount, windowDays int) float64 {
	window := windowDays
	if window < 1 {
		window = 1
	}
	baseline := float64(pastCount) / float64(window)
	score := float64(todayCount) / (baseline + baselineSmoothing)
	return math.Round(score*100) / 100
}

// Tokenize extracts lowercased alphanumeric-and-hyphen tokens of length >= 3
// from a title, dropping stop words. Multiplicity within a title is kept.
func Tokenize(title string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(title), -1)

	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if stopWords[m] {
			continue
		}
		tokens = append(tokens, m)
	}
	return tokens
}

func countTokens(titles []string) map[string]int {
	freq := make(map[string]int)
	for _, title := range titles {
		for _, token := range Tokenize(title) {
			freq[token]++
		}
	}
	return freq
}

// topTokens returns the n highest-frequency tokens. Ties are broken
// lexicographically to keep the output stable across runs.
func topTokens(freq map[string]int, n int) []TokenCount {
	tokens := make([]TokenCount, 0, len(freq))
	for token, count := range freq {
		tokens = append(tokens, TokenCount{Token: token, Count: count})
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Count != tokens[j].Count {
			return tokens[i].Count > tokens[j].Count
		}
		return tokens[i].Token < tokens[j].Token
	})

	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}

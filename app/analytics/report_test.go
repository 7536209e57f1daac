package analytics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDailyCounts(t *testing.T) {
	dir := t.TempDir()

	payload := &DailyCounts{
		Dates: []string{"2024-01-01"},
		Total: []int{3},
		ByCategory: map[string]map[string]int{
			"2024-01-01": {"Tech": 3},
		},
		BySource: map[string]map[string]int{
			"2024-01-01": {"Reuters": 3},
		},
	}

	if err := WriteDailyCounts(dir, payload); err != nil {
		t.Fatalf("WriteDailyCounts failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, DailyCountsFile))
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}

	var decoded struct {
		Dates      []string                  `json:"dates"`
		Total      []int                     `json:"total"`
		ByCategory map[string]map[string]int `json:"by_category"`
		BySource   map[string]map[string]int `json:"by_source"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Artifact is not valid JSON: %v", err)
	}

	if len(decoded.Dates) != 1 || decoded.Dates[0] != "2024-01-01" {
		t.Errorf("Unexpected dates: %v", decoded.Dates)
	}
	if decoded.ByCategory["2024-01-01"]["Tech"] != 3 {
		t.Errorf("Unexpected category breakdown: %v", decoded.ByCategory)
	}
}

func TestWriteKeywordReport_PairAndTripleShapes(t *testing.T) {
	dir := t.TempDir()

	payload := &KeywordReport{
		Date:     "2024-01-01",
		TopToday: []TokenCount{{Token: "chip", Count: 4}},
		Rising:   []RisingToken{{Token: "chip", Count: 4, Score: 5.71}},
	}

	if err := WriteKeywordReport(dir, payload); err != nil {
		t.Fatalf("WriteKeywordReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, TopKeywordsFile))
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}

	// Tokens serialize as positional arrays, the shape downstream consumers
	// already expect.
	var decoded struct {
		Date     string  `json:"date"`
		TopToday [][]any `json:"top_today"`
		Rising   [][]any `json:"rising"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Artifact is not valid JSON: %v", err)
	}

	if len(decoded.TopToday) != 1 || len(decoded.TopToday[0]) != 2 {
		t.Fatalf("Expected [token, count] pairs, got %v", decoded.TopToday)
	}
	if decoded.TopToday[0][0] != "chip" || decoded.TopToday[0][1].(float64) != 4 {
		t.Errorf("Unexpected top_today entry: %v", decoded.TopToday[0])
	}

	if len(decoded.Rising) != 1 || len(decoded.Rising[0]) != 3 {
		t.Fatalf("Expected [token, count, score] triples, got %v", decoded.Rising)
	}
	if decoded.Rising[0][2].(float64) != 5.71 {
		t.Errorf("Unexpected rising score: %v", decoded.Rising[0])
	}
}

func TestWriteJSON_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	if err := WriteDailyCounts(dir, &DailyCounts{}); err != nil {
		t.Fatalf("WriteDailyCounts failed: %v", err)
	}
	// Overwrite publishes a fresh artifact in place.
	if err := WriteDailyCounts(dir, &DailyCounts{Dates: []string{"2024-01-01"}, Total: []int{1}}); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("Expected a single artifact, found %d entries", len(entries))
	}
}

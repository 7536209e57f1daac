package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report artifact file names, stable paths under the output directory.
const (
	DailyCountsFile = "daily_counts.json"
	TopKeywordsFile = "top_keywords.json"
)

// WriteDailyCounts publishes the daily aggregation artifact.
func WriteDailyCounts(outDir string, payload *DailyCounts) error {
	return writeJSON(filepath.Join(outDir, DailyCountsFile), payload)
}

// WriteKeywordReport publishes the keyword trend artifact.
func WriteKeywordReport(outDir string, payload *KeywordReport) error {
	return writeJSON(filepath.Join(outDir, TopKeywordsFile), payload)
}

// writeJSON writes the payload to a temporary file in the target directory
// and renames it into place, so consumers never observe a partial artifact.
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish %s: %w", filepath.Base(path), err)
	}

	return nil
}

package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Riku888/industry-news-discord-bot/app/database"
)

// Range pairs a trailing window with its export file name.
type Range struct {
	Days     int
	Filename string
}

// DefaultRanges mirrors the windows the dashboard links to.
var DefaultRanges = []Range{
	{30, "articles_30d.xlsx"},
	{90, "articles_90d.xlsx"},
	{365, "articles_1y.xlsx"},
	{1095, "articles_3y.xlsx"},
}

var header = []any{"date", "source", "title", "url", "category", "created_at"}

// ArticleReader is the read-only store surface the exporter needs.
type ArticleReader interface {
	RecentArticles(days int) ([]database.Article, error)
}

// Exporter writes windowed article snapshots as spreadsheets. Pure read
// path; it never modifies the store.
type Exporter struct {
	reader ArticleReader
	outDir string
}

func NewExporter(reader ArticleReader, outDir string) *Exporter {
	return &Exporter{reader: reader, outDir: outDir}
}

// RunAll exports every default range.
func (e *Exporter) RunAll() error {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, r := range DefaultRanges {
		if err := e.Run(r.Days, r.Filename); err != nil {
			return err
		}
	}
	return nil
}

// Run exports articles from the trailing window to a single xlsx file.
func (e *Exporter) Run(days int, filename string) error {
	articles, err := e.reader.RecentArticles(days)
	if err != nil {
		return fmt.Errorf("failed to load articles for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, a := range articles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []any{a.Date, a.Source, a.Title, a.URL, a.Category, a.CreatedAt}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(e.outDir, filename)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}

	log.Printf("Exported %d articles to %s", len(articles), path)
	return nil
}

package database

import (
	"database/sql"
	"fmt"
)

// ArticleRepository handles database operations for articles
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// DateCount is one row of a per-day total.
type DateCount struct {
	Date  string
	Count int
}

// DateLabelCount is one row of a per-day breakdown by category or source.
type DateLabelCount struct {
	Date  string
	Label string
	Count int
}

// InsertArticles stores a batch with insert-or-ignore semantics keyed on the
// id column and returns how many rows were actually inserted. Re-running the
// same batch is a no-op reporting zero. An empty date is stored as NULL so
// that "date IS NOT NULL" queries reliably exclude undated articles.
func (r *ArticleRepository) InsertArticles(articles []Article) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO articles (id, date, source, title, url, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, a := range articles {
		var date sql.NullString
		if a.Date != "" {
			date = sql.NullString{String: a.Date, Valid: true}
		}

		result, err := stmt.Exec(a.ID, date, a.Source, a.Title, a.URL, a.Category, a.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article %s: %w", a.ID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert: %w", err)
	}

	return inserted, nil
}

// CountByDate returns per-day totals for dated articles within the trailing
// window, ordered by date ascending.
func (r *ArticleRepository) CountByDate(days int) ([]DateCount, error) {
	rows, err := r.db.Query(`
		SELECT date, COUNT(*) AS cnt
		FROM articles
		WHERE date IS NOT NULL
		  AND date >= date('now', ?)
		GROUP BY date
		ORDER BY date ASC
	`, windowOffset(days))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	var counts []DateCount
	for rows.Next() {
		var dc DateCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily total row: %w", err)
		}
		counts = append(counts, dc)
	}

	return counts, rows.Err()
}

// CountByDateCategory returns per-day per-category counts within the
// trailing window. NULL categories come back as empty labels.
func (r *ArticleRepository) CountByDateCategory(days int) ([]DateLabelCount, error) {
	return r.countByDateLabel("category", days)
}

// CountByDateSource returns per-day per-source counts within the trailing
// window. NULL sources come back as empty labels.
func (r *ArticleRepository) CountByDateSource(days int) ([]DateLabelCount, error) {
	return r.countByDateLabel("source", days)
}

func (r *ArticleRepository) countByDateLabel(column string, days int) ([]DateLabelCount, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT date, %s, COUNT(*) AS cnt
		FROM articles
		WHERE date IS NOT NULL
		  AND date >= date('now', ?)
		GROUP BY date, %s
		ORDER BY date ASC
	`, column, column), windowOffset(days))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily %s counts: %w", column, err)
	}
	defer rows.Close()

	var counts []DateLabelCount
	for rows.Next() {
		var dlc DateLabelCount
		var label sql.NullString
		if err := rows.Scan(&dlc.Date, &label, &dlc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily %s row: %w", column, err)
		}
		dlc.Label = label.String
		counts = append(counts, dlc)
	}

	return counts, rows.Err()
}

// TitlesOn returns the titles of all articles dated exactly day.
func (r *ArticleRepository) TitlesOn(day string) ([]string, error) {
	rows, err := r.db.Query(`SELECT title FROM articles WHERE date = ?`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles for %s: %w", day, err)
	}
	defer rows.Close()

	return scanTitles(rows)
}

// TitlesBefore returns titles of dated articles within the trailing window
// but strictly before today, the baseline for trend scoring.
func (r *ArticleRepository) TitlesBefore(days int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT title FROM articles
		WHERE date IS NOT NULL
		  AND date >= date('now', ?)
		  AND date < date('now')
	`, windowOffset(days))
	if err != nil {
		return nil, fmt.Errorf("failed to query baseline titles: %w", err)
	}
	defer rows.Close()

	return scanTitles(rows)
}

// ArticleCount returns the total number of stored articles.
func (r *ArticleRepository) ArticleCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// CountByCategory returns totals per category over all stored articles.
func (r *ArticleRepository) CountByCategory() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT COALESCE(category, ''), COUNT(*)
		FROM articles
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}

	return counts, rows.Err()
}

// RecentArticles returns dated articles within the trailing window, newest
// first. Used by the spreadsheet export and the dashboard API.
func (r *ArticleRepository) RecentArticles(days int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, COALESCE(date, ''), COALESCE(source, ''), title, url,
		       COALESCE(category, ''), created_at
		FROM articles
		WHERE date IS NOT NULL
		  AND date >= date('now', ?)
		ORDER BY date DESC
	`, windowOffset(days))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		err := rows.Scan(&a.ID, &a.Date, &a.Source, &a.Title, &a.URL, &a.Category, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

func scanTitles(rows *sql.Rows) ([]string, error) {
	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// windowOffset builds the SQLite date modifier for a trailing window of days.
func windowOffset(days int) string {
	return fmt.Sprintf("-%d day", days)
}

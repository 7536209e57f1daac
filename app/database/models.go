package database

import (
	"crypto/sha256"
	"encoding/hex"
)

// Article is the persisted entity. Date is a UTC calendar day (YYYY-MM-DD)
// or empty, in which case the column is stored as NULL. Rows are append-only
// from the pipeline's point of view.
type Article struct {
	ID        string
	Date      string
	Source    string
	Title     string
	URL       string
	Category  string
	CreatedAt string
}

// ArticleID derives the storage primary key from the URL. The id must stay a
// pure function of the URL so re-ingesting the same link always hits the
// same row; changing the hash family or encoding would orphan existing data.
func ArticleID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

package feed

import "time"

// Entry is a raw feed entry as delivered by a source, before normalization.
// Timestamp fields carry both the source's original strings and, when the
// feed library managed to parse them, the parsed values.
type Entry struct {
	Title           string
	Link            string
	Published       string
	Updated         string
	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
}

// Item is a normalized, categorized news item. Date is a UTC calendar day in
// YYYY-MM-DD form, or empty when the source gave no usable timestamp.
type Item struct {
	Date     string
	Source   string
	Title    string
	URL      string
	Category string
}

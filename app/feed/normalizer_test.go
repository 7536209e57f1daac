package feed

import (
	"testing"
	"time"
)

func TestNormalizer_Run_CollapsesWhitespace(t *testing.T) {
	normalizer := NewNormalizer()

	item, ok := normalizer.Run("Reuters", Entry{
		Title: "  Chip   maker\t announces \n new   fab  ",
		Link:  " https://example.com/a ",
	})

	if !ok {
		t.Fatal("Expected entry to be accepted")
	}
	if item.Title != "Chip maker announces new fab" {
		t.Errorf("Expected collapsed title, got %q", item.Title)
	}
	if item.URL != "https://example.com/a" {
		t.Errorf("Expected trimmed link, got %q", item.URL)
	}
	if item.Source != "Reuters" {
		t.Errorf("Expected source 'Reuters', got %q", item.Source)
	}
}

func TestNormalizer_Run_RejectsEmptyTitleOrLink(t *testing.T) {
	normalizer := NewNormalizer()

	tests := []struct {
		name  string
		entry Entry
	}{
		{"empty title", Entry{Title: "   ", Link: "https://example.com/a"}},
		{"empty link", Entry{Title: "Some title", Link: "  "}},
		{"both empty", Entry{}},
	}

	for _, test := range tests {
		if _, ok := normalizer.Run("src", test.entry); ok {
			t.Errorf("%s: expected rejection", test.name)
		}
	}
}

func TestNormalizer_Run_UsesParsedPublishedDate(t *testing.T) {
	normalizer := NewNormalizer()

	// 23:30 in UTC+9 is already the next day locally; the stored date must
	// be the UTC calendar day.
	jst := time.FixedZone("JST", 9*3600)
	published := time.Date(2024, 3, 15, 23, 30, 0, 0, jst)

	item, ok := normalizer.Run("src", Entry{
		Title:           "Title",
		Link:            "https://example.com/a",
		PublishedParsed: &published,
	})

	if !ok {
		t.Fatal("Expected entry to be accepted")
	}
	if item.Date != "2024-03-15" {
		t.Errorf("Expected UTC date 2024-03-15, got %q", item.Date)
	}
}

func TestNormalizer_Run_FallsBackToUpdated(t *testing.T) {
	normalizer := NewNormalizer()

	updated := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)
	item, _ := normalizer.Run("src", Entry{
		Title:         "Title",
		Link:          "https://example.com/a",
		UpdatedParsed: &updated,
	})

	if item.Date != "2024-03-16" {
		t.Errorf("Expected date from updated timestamp, got %q", item.Date)
	}
}

func TestNormalizer_Run_ParsesRawDateString(t *testing.T) {
	normalizer := NewNormalizer()

	item, _ := normalizer.Run("src", Entry{
		Title:     "Title",
		Link:      "https://example.com/a",
		Published: "Mon, 02 Jan 2006 15:04:05 GMT",
	})

	if item.Date != "2006-01-02" {
		t.Errorf("Expected parsed raw date 2006-01-02, got %q", item.Date)
	}
}

func TestNormalizer_Run_UnparsableDateDegradesToEmpty(t *testing.T) {
	normalizer := NewNormalizer()

	tests := []struct {
		name  string
		entry Entry
	}{
		{"garbage timestamp", Entry{Title: "T", Link: "https://example.com/a", Published: "not a date at all ???"}},
		{"missing timestamp", Entry{Title: "T", Link: "https://example.com/a"}},
	}

	for _, test := range tests {
		item, ok := normalizer.Run("src", test.entry)
		if !ok {
			t.Fatalf("%s: expected entry to be accepted", test.name)
		}
		if item.Date != "" {
			t.Errorf("%s: expected empty date, got %q", test.name, item.Date)
		}
	}
}

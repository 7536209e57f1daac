package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/Riku888/industry-news-discord-bot/app/feed"
)

// maxSummaryItems caps how many items are handed to the summarizer.
const maxSummaryItems = 10

// BuildInput renders the top items as numbered plain-text lines, the raw
// material handed to the summarization collaborator.
func BuildInput(items []feed.Item) string {
	if len(items) > maxSummaryItems {
		items = items[:maxSummaryItems]
	}

	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s | source:%s | date:%s | category:%s | %s\n",
			i+1, item.Title, item.Source, item.Date, item.Category, item.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildBasic builds the deterministic digest used when AI summarization is
// disabled or fails. Same items and clock always produce the same text.
func BuildBasic(industry string, top []feed.Item, total int, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📌 **%s news digest** (%s)\n", industry, now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Collected items: %d\n\n", total)

	for i, item := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Title)

		meta := "source:" + item.Source
		if item.Date != "" {
			meta += " / date:" + item.Date
		}
		meta += " / category:" + item.Category
		b.WriteString(meta + "\n")
		b.WriteString(item.URL + "\n\n")
	}

	return strings.TrimSpace(b.String())
}

// AppendFallbackNote marks a digest that fell back from AI summarization.
func AppendFallbackNote(message string, err error) string {
	return fmt.Sprintf("%s\n\n(basic digest, AI summary failed)\n%v", message, err)
}

// AppendDashboardLink adds the dashboard pointer when one is configured.
func AppendDashboardLink(message, dashboardURL string) string {
	if dashboardURL == "" {
		return message
	}
	return fmt.Sprintf("%s\n\n📊 Dashboard: %s", message, dashboardURL)
}

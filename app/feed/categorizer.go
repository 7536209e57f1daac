package feed

import (
	"strings"

	"github.com/Riku888/industry-news-discord-bot/app/config"
)

// FallbackCategory is assigned when no configured keyword matches a title.
const FallbackCategory = "uncategorized"

// Categorizer assigns a category label to a title by ordered keyword
// matching. Categories and their keywords are checked in configuration
// order; the first keyword found as a case-insensitive substring of the
// title wins. This is deliberately first-match, not best-match.
type Categorizer struct {
	categories []config.Category
}

func NewCategorizer(categories []config.Category) *Categorizer {
	return &Categorizer{categories: categories}
}

func (c *Categorizer) Run(title string) string {
	lowered := strings.ToLower(title)

	for _, cat := range c.categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return cat.Name
			}
		}
	}

	return FallbackCategory
}

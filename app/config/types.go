package config

// Config is the industry configuration loaded from a single YAML file.
// It drives relevance filtering, categorization and digest composition.
type Config struct {
	Industry     string     `yaml:"industry"`
	UseAISummary bool       `yaml:"use_ai_summary"`
	TopN         int        `yaml:"top_n"`
	Sources      []Source   `yaml:"sources"`
	Categories   []Category `yaml:"categories"`
}

// Source is a single RSS feed to pull from.
type Source struct {
	Name string `yaml:"name"`
	RSS  string `yaml:"rss"`
}

// Category maps a label to the keywords that select it. Categories are a
// slice, not a map: categorization is first-match and depends on the order
// they appear in the configuration file.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// IndustryKeywords returns the flattened union of all category keywords, in
// configuration order. Used by the relevance filter.
func (c *Config) IndustryKeywords() []string {
	var keywords []string
	for _, cat := range c.Categories {
		keywords = append(keywords, cat.Keywords...)
	}
	return keywords
}

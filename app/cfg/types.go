package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Pipeline configuration
	ConfigPath     string
	OutDir         string
	ExportDir      string
	WindowDays     int
	PerSourceLimit int
	TimeoutSeconds int

	// Delivery configuration
	WebhookURL   string
	DashboardURL string

	// Summarization configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Run modes
	Export bool
	Serve  bool
	Port   string

	// Application metadata
	UserAgent string
	Version   string
}

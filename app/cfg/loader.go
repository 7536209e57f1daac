package cfg

import (
	"cmp"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"data/news.db" description:"Path to the SQLite database file"`

	// Pipeline configuration
	ConfigPath     string `long:"config" env:"CONFIG_PATH" default:"config.yaml" description:"Path to the industry configuration file"`
	OutDir         string `long:"out-dir" env:"OUT_DIR" default:"docs/data" description:"Directory for generated report artifacts"`
	ExportDir      string `long:"export-dir" env:"EXPORT_DIR" default:"docs/exports" description:"Directory for spreadsheet exports"`
	WindowDays     int    `long:"window-days" env:"WINDOW_DAYS" default:"30" description:"Trailing window in days for analytics"`
	PerSourceLimit int    `long:"per-source-limit" env:"PER_SOURCE_LIMIT" default:"30" description:"Maximum entries taken from each feed"`
	TimeoutSeconds int    `long:"timeout" env:"HTTP_TIMEOUT" default:"30" description:"Timeout in seconds for outbound HTTP calls"`

	// Delivery configuration
	WebhookURL   string `long:"webhook-url" env:"DISCORD_WEBHOOK_URL" description:"Discord webhook URL (required for batch runs)"`
	DashboardURL string `long:"dashboard-url" env:"DASHBOARD_URL" description:"Public dashboard URL appended to the digest (optional)"`

	// Summarization configuration
	OpenAIAPIKey string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key for AI digests (optional)"`
	OpenAIModel  string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4.1-mini" description:"OpenAI model used for AI digests"`

	// Run modes
	Export bool   `long:"export" env:"EXPORT_XLSX" description:"Write spreadsheet exports after the pipeline run"`
	Serve  bool   `long:"serve" env:"SERVE" description:"Serve the dashboard API instead of running the pipeline"`
	Port   string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for dashboard mode"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Industry News Bot/1.0" description:"User agent string for HTTP requests"`
}

// Load parses process configuration from the command line and environment.
// A nil cfg with a nil error means help was requested and printed.
func Load() (*Cfg, error) {
	return loadArgs(os.Args[1:])
}

func loadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		ConfigPath:     raw.ConfigPath,
		OutDir:         raw.OutDir,
		ExportDir:      raw.ExportDir,
		WindowDays:     raw.WindowDays,
		PerSourceLimit: raw.PerSourceLimit,
		TimeoutSeconds: raw.TimeoutSeconds,
		WebhookURL:     raw.WebhookURL,
		DashboardURL:   raw.DashboardURL,
		OpenAIAPIKey:   raw.OpenAIAPIKey,
		OpenAIModel:    raw.OpenAIModel,
		Export:         raw.Export,
		Serve:          raw.Serve,
		Port:           raw.Port,
		UserAgent:      raw.UserAgent,
		Version:        GetVersion(),
	}

	if cfg.WindowDays <= 0 {
		return nil, fmt.Errorf("window-days must be positive, got %d", cfg.WindowDays)
	}

	return cfg, nil
}

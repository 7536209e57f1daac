package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Riku888/industry-news-discord-bot/app/ai"
	"github.com/Riku888/industry-news-discord-bot/app/analytics"
	"github.com/Riku888/industry-news-discord-bot/app/api"
	"github.com/Riku888/industry-news-discord-bot/app/cfg"
	"github.com/Riku888/industry-news-discord-bot/app/config"
	"github.com/Riku888/industry-news-discord-bot/app/database"
	"github.com/Riku888/industry-news-discord-bot/app/digest"
	"github.com/Riku888/industry-news-discord-bot/app/export"
	"github.com/Riku888/industry-news-discord-bot/app/feed"
	"github.com/Riku888/industry-news-discord-bot/app/notify"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	log.Printf("Loading industry configuration from %s...", appCfg.ConfigPath)
	industryCfg, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		log.Fatalf("Failed to load industry configuration: %v", err)
	}
	log.Printf("Industry: %s, %d sources, %d categories",
		industryCfg.Industry, len(industryCfg.Sources), len(industryCfg.Categories))

	// Delivery target is validated before any network or store work so a
	// misconfigured run fails immediately.
	if !appCfg.Serve && appCfg.WebhookURL == "" {
		log.Fatal("DISCORD_WEBHOOK_URL is required for a pipeline run")
	}

	log.Printf("Opening database at %s...", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Database schema at version %d (dirty: %v)", version, dirty)

	repo := database.NewArticleRepository(db)

	if appCfg.Serve {
		runServer(appCfg, repo)
		return
	}

	runPipeline(appCfg, industryCfg, repo)
}

func runPipeline(appCfg *cfg.Cfg, industryCfg *config.Config, repo *database.ArticleRepository) {
	ctx := context.Background()
	timeout := time.Duration(appCfg.TimeoutSeconds) * time.Second

	fetcher := feed.NewFetcher(timeout, appCfg.UserAgent, appCfg.PerSourceLimit)
	normalizer := feed.NewNormalizer()
	categorizer := feed.NewCategorizer(industryCfg.Categories)
	filterer := feed.NewFilterer(industryCfg.IndustryKeywords())

	batches := fetcher.Run(ctx, industryCfg.Sources)

	var items []feed.Item
	for _, batch := range batches {
		for _, entry := range batch.Entries {
			item, ok := normalizer.Run(batch.Source, entry)
			if !ok {
				continue
			}
			item.Category = categorizer.Run(item.Title)
			items = append(items, item)
		}
	}
	log.Printf("Collected %d entries", len(items))

	items = filterer.Run(items)
	log.Printf("%d relevant items after dedup and filtering", len(items))

	now := time.Now().UTC()
	createdAt := now.Format("2006-01-02T15:04:05Z")

	articles := make([]database.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, database.Article{
			ID:        database.ArticleID(item.URL),
			Date:      item.Date,
			Source:    item.Source,
			Title:     item.Title,
			URL:       item.URL,
			Category:  item.Category,
			CreatedAt: createdAt,
		})
	}

	inserted, err := repo.InsertArticles(articles)
	if err != nil {
		log.Fatalf("Failed to store articles: %v", err)
	}
	log.Printf("Stored %d new articles (%d already known)", inserted, len(articles)-inserted)

	counts, err := analytics.NewAggregator(repo).Run(appCfg.WindowDays)
	if err != nil {
		log.Fatalf("Failed to aggregate daily counts: %v", err)
	}
	if err := analytics.WriteDailyCounts(appCfg.OutDir, counts); err != nil {
		log.Fatalf("Failed to write daily counts: %v", err)
	}

	trends, err := analytics.NewTrendEngine(repo).Run(appCfg.WindowDays)
	if err != nil {
		log.Fatalf("Failed to compute keyword trends: %v", err)
	}
	if err := analytics.WriteKeywordReport(appCfg.OutDir, trends); err != nil {
		log.Fatalf("Failed to write keyword trends: %v", err)
	}
	log.Printf("Report artifacts written to %s", appCfg.OutDir)

	if appCfg.Export {
		exporter := export.NewExporter(repo, appCfg.ExportDir)
		if err := exporter.RunAll(); err != nil {
			log.Fatalf("Failed to export spreadsheets: %v", err)
		}
	}

	message := buildMessage(ctx, appCfg, industryCfg, items, now)
	message = digest.AppendDashboardLink(message, appCfg.DashboardURL)

	notifier := notify.NewNotifier(appCfg.WebhookURL, timeout)
	if err := notifier.Send(message); err != nil {
		log.Fatalf("Failed to deliver digest: %v", err)
	}
	log.Println("Digest posted to Discord")
}

// buildMessage prefers the AI digest when enabled and falls back to the
// deterministic template on any summarization failure. Summarization errors
// never fail the run.
func buildMessage(ctx context.Context, appCfg *cfg.Cfg, industryCfg *config.Config,
	items []feed.Item, now time.Time) string {

	top := feed.PickTop(items, industryCfg.TopN)
	basic := digest.BuildBasic(industryCfg.Industry, top, len(items), now)

	if !industryCfg.UseAISummary {
		return basic
	}

	timeout := time.Duration(appCfg.TimeoutSeconds) * time.Second
	summarizer, err := ai.New(appCfg.OpenAIAPIKey, appCfg.OpenAIModel, timeout)
	if err != nil {
		log.Printf("Warning: AI summary unavailable: %v", err)
		return digest.AppendFallbackNote(basic, err)
	}

	input := digest.BuildInput(feed.PickTop(items, 10))
	text, err := summarizer.Summarize(ctx, industryCfg.Industry, input)
	if err != nil {
		log.Printf("Warning: AI summary failed: %v", err)
		return digest.AppendFallbackNote(basic, err)
	}

	return text
}

func runServer(appCfg *cfg.Cfg, repo *database.ArticleRepository) {
	handler := api.NewHandler(repo, appCfg.OutDir, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting dashboard server on port %s", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)
		log.Printf("  Daily counts:  http://localhost:%s/data/daily_counts.json", appCfg.Port)
		log.Printf("  Top keywords:  http://localhost:%s/data/top_keywords.json", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}
}

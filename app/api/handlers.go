package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riku888/industry-news-discord-bot/app/analytics"
	"github.com/Riku888/industry-news-discord-bot/app/database"
)

// Handler serves the dashboard API: health, stats and the generated report
// artifacts.
type Handler struct {
	repo    *database.ArticleRepository
	outDir  string
	version string
}

func NewHandler(repo *database.ArticleRepository, outDir, version string) *Handler {
	return &Handler{
		repo:    repo,
		outDir:  outDir,
		version: version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	}

	if count, err := h.repo.ArticleCount(); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	total, err := h.repo.ArticleCount()
	if err != nil {
		slog.Error("Database error", "operation", "article_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	byCategory, err := h.repo.CountByCategory()
	if err != nil {
		slog.Error("Database error", "operation", "count_by_category", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	// Empty labels come from rows stored before categorization existed.
	if count, ok := byCategory[""]; ok {
		delete(byCategory, "")
		byCategory[analytics.UncategorizedLabel] += count
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":    total,
		"by_category": byCategory,
	})
}

func (h *Handler) GetDailyCounts(c *gin.Context) {
	h.serveArtifact(c, analytics.DailyCountsFile)
}

func (h *Handler) GetTopKeywords(c *gin.Context) {
	h.serveArtifact(c, analytics.TopKeywordsFile)
}

func (h *Handler) serveArtifact(c *gin.Context, name string) {
	path := filepath.Join(h.outDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not generated yet"})
		return
	}
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(path)
}

func (h *Handler) GetArticles(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	articles, err := h.repo.RecentArticles(days)
	if err != nil {
		slog.Error("Database error", "operation", "recent_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]gin.H, 0, len(articles))
	for _, a := range articles {
		out = append(out, gin.H{
			"date":       a.Date,
			"source":     a.Source,
			"title":      a.Title,
			"url":        a.URL,
			"category":   a.Category,
			"created_at": a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "articles": out})
}

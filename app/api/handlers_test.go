package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riku888/industry-news-discord-bot/app/database"
)

func setupTestServer(t *testing.T) (*gin.Engine, *database.ArticleRepository, string) {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := database.NewArticleRepository(db)
	outDir := t.TempDir()
	server := NewServer(NewHandler(repo, outDir, "test"))

	return server, repo, outDir
}

func doRequest(server *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	server.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	server, _, _ := setupTestServer(t)

	w := doRequest(server, "GET", "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["version"] != "test" {
		t.Errorf("Unexpected version: %v", body["version"])
	}
	if body["articles"].(float64) != 0 {
		t.Errorf("Expected 0 articles, got %v", body["articles"])
	}
}

func TestGetStats(t *testing.T) {
	server, repo, _ := setupTestServer(t)

	_, err := repo.InsertArticles([]database.Article{
		{ID: database.ArticleID("https://example.com/1"), Date: "2024-03-15", Source: "Reuters", Title: "A", URL: "https://example.com/1", Category: "Tech", CreatedAt: "2024-03-15T09:00:00Z"},
		{ID: database.ArticleID("https://example.com/2"), Date: "2024-03-15", Source: "Reuters", Title: "B", URL: "https://example.com/2", Category: "", CreatedAt: "2024-03-15T09:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Failed to insert articles: %v", err)
	}

	w := doRequest(server, "GET", "/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Articles   int            `json:"articles"`
		ByCategory map[string]int `json:"by_category"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body.Articles != 2 {
		t.Errorf("Expected 2 articles, got %d", body.Articles)
	}
	if body.ByCategory["Tech"] != 1 {
		t.Errorf("Unexpected Tech count: %v", body.ByCategory)
	}
	// Rows without a category surface under the fallback label.
	if body.ByCategory["uncategorized"] != 1 {
		t.Errorf("Expected uncategorized fallback, got %v", body.ByCategory)
	}
}

func TestGetDailyCounts_NotGenerated(t *testing.T) {
	server, _, _ := setupTestServer(t)

	w := doRequest(server, "GET", "/data/daily_counts.json")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before the artifact exists, got %d", w.Code)
	}
}

func TestGetDailyCounts_ServesArtifact(t *testing.T) {
	server, _, outDir := setupTestServer(t)

	artifact := `{"dates":["2024-03-15"],"total":[2]}`
	if err := os.WriteFile(filepath.Join(outDir, "daily_counts.json"), []byte(artifact), 0o644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	w := doRequest(server, "GET", "/data/daily_counts.json")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != artifact {
		t.Errorf("Artifact served with altered content: %s", w.Body.String())
	}
}

func TestGetArticles(t *testing.T) {
	server, repo, _ := setupTestServer(t)

	today := time.Now().UTC().Format("2006-01-02")
	_, err := repo.InsertArticles([]database.Article{
		{ID: database.ArticleID("https://example.com/1"), Date: today, Source: "Reuters", Title: "A", URL: "https://example.com/1", Category: "Tech", CreatedAt: today + "T09:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Failed to insert articles: %v", err)
	}

	w := doRequest(server, "GET", "/articles")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Days     int              `json:"days"`
		Articles []map[string]any `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body.Days != 30 {
		t.Errorf("Expected default 30-day window, got %d", body.Days)
	}
	if len(body.Articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(body.Articles))
	}
	if body.Articles[0]["title"] != "A" {
		t.Errorf("Unexpected article: %v", body.Articles[0])
	}
}

func TestGetArticles_InvalidDays(t *testing.T) {
	server, _, _ := setupTestServer(t)

	for _, query := range []string{"days=abc", "days=0", "days=-5"} {
		w := doRequest(server, "GET", "/articles?"+query)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", query, w.Code)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	server, _, _ := setupTestServer(t)

	w := doRequest(server, "GET", "/health")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Missing CORS header, got %q", got)
	}

	w = doRequest(server, "OPTIONS", "/health")
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
}

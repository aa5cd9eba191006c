package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fdciabdul/go-safelink/pkg/safelink/cache"
	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

func setupTest(t *testing.T) (*gin.Engine, *links.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	NewHandler(db).RegisterRoutes(api)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return r, links.NewStore(db, cache.New(nil, testLogger))
}

func TestStatsEmpty(t *testing.T) {
	router, _ := setupTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.TotalLinks != 0 || resp.TotalClicks != 0 || resp.AverageClicks != 0 {
		t.Errorf("Expected zeroed stats, got %+v", resp)
	}
}

func TestStatsTotalsAndTopLinks(t *testing.T) {
	router, store := setupTest(t)

	a, _ := store.Insert(links.InsertParams{Title: "A", DestinationURL: "https://a.example", Slug: "stat-a"})
	b, _ := store.Insert(links.InsertParams{Title: "B", DestinationURL: "https://b.example", Slug: "stat-b"})

	for i := 0; i < 5; i++ {
		store.IncrementClicks(a.ID)
	}
	store.IncrementClicks(b.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.TotalLinks != 2 {
		t.Errorf("Expected 2 links, got %d", resp.TotalLinks)
	}
	if resp.TotalClicks != 6 {
		t.Errorf("Expected 6 clicks, got %d", resp.TotalClicks)
	}
	if resp.AverageClicks != 3 {
		t.Errorf("Expected average 3, got %f", resp.AverageClicks)
	}
	if len(resp.TopLinks) != 2 || resp.TopLinks[0].Slug != "stat-a" {
		t.Errorf("Unexpected top links order: %+v", resp.TopLinks)
	}
}

package shortcode

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fdciabdul/go-safelink/pkg/safelink/cache"
	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

func setupTestExpander(t *testing.T) (*Expander, *links.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	testLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := links.NewStore(db, cache.New(nil, testLogger))
	return NewExpander(store, "http://localhost:8080"), store
}

func TestExpandByID(t *testing.T) {
	e, store := setupTestExpander(t)
	link, err := store.Insert(links.InsertParams{
		Title:          "A",
		DestinationURL: "https://example.com",
		Slug:           "known123",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	in := fmt.Sprintf(`Before [safelink id="%d"]Click here[/safelink] after.`, link.ID)
	out := e.Expand(in)

	want := `<a href="http://localhost:8080/go/known123" rel="nofollow" target="_blank">Click here</a>`
	if !strings.Contains(out, want) {
		t.Errorf("Expected anchor %q in %q", want, out)
	}
	if !strings.HasPrefix(out, "Before ") || !strings.HasSuffix(out, " after.") {
		t.Errorf("Surrounding content mangled: %q", out)
	}
}

func TestExpandInactiveOrMissingID(t *testing.T) {
	e, store := setupTestExpander(t)
	link, err := store.Insert(links.InsertParams{
		Title:          "A",
		DestinationURL: "https://example.com",
		Slug:           "down1234",
		Status:         models.StatusInactive,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	for _, in := range []string{
		fmt.Sprintf(`[safelink id="%d"]x[/safelink]`, link.ID),
		`[safelink id="9999"]x[/safelink]`,
	} {
		out := e.Expand(in)
		if !strings.Contains(out, "not found or inactive") {
			t.Errorf("Expected error span for %q, got %q", in, out)
		}
		if strings.Contains(out, "<a ") {
			t.Errorf("Inactive or missing link rendered an anchor: %q", out)
		}
	}
}

func TestExpandLegacyURLInsertsOnce(t *testing.T) {
	e, store := setupTestExpander(t)

	in := `[safelink url="https://legacy.example/page" title="Legacy"]Go[/safelink]`
	first := e.Expand(in)
	second := e.Expand(in)

	if !strings.Contains(first, "/go/") {
		t.Fatalf("Legacy expansion produced no anchor: %q", first)
	}
	if first != second {
		t.Errorf("Legacy expansion not stable across renders: %q vs %q", first, second)
	}

	_, total, err := store.List(links.ListQuery{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected a single ensured row, got %d", total)
	}

	row, _, _ := store.List(links.ListQuery{})
	if !strings.HasPrefix(row[0].Title, "Shortcode generated: ") {
		t.Errorf("Ensured row missing generated title: %q", row[0].Title)
	}
	if row[0].CustomTitle != "Legacy" {
		t.Errorf("Shortcode title attribute not stored: %q", row[0].CustomTitle)
	}
}

func TestExpandMissingAttrs(t *testing.T) {
	e, _ := setupTestExpander(t)

	out := e.Expand(`[safelink]x[/safelink]`)
	if !strings.Contains(out, "ID or URL is required") {
		t.Errorf("Expected error span, got %q", out)
	}
}

func TestExpandLeavesPlainContentAlone(t *testing.T) {
	e, _ := setupTestExpander(t)

	in := "No shortcodes here, just [brackets] and text."
	if out := e.Expand(in); out != in {
		t.Errorf("Content without shortcodes changed: %q", out)
	}
}

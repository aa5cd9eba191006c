package redirect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
)

func setupTestRouter(r *Resolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.LoadHTMLGlob("../../../web/templates/*.html")
	NewHandler(r, "/").RegisterRoutes(engine)
	return engine
}

func TestGoRendersInterstitial(t *testing.T) {
	resolver, store, _ := setupTestResolver(t)
	router := setupTestRouter(resolver)

	insertLink(t, store, links.InsertParams{
		Title:          "A",
		DestinationURL: "https://example.com/target",
		Slug:           "page1234",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/go/page1234", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "https://example.com/target") {
		t.Error("Interstitial does not carry the destination URL")
	}
	if !strings.Contains(body, "Continue to Destination") {
		t.Error("Interstitial missing the continue button")
	}
}

func TestGoUnknownSlugRedirectsHome(t *testing.T) {
	resolver, _, _ := setupTestResolver(t)
	router := setupTestRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/go/nosuch", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
}

func TestGoInactiveLookSameAsUnknown(t *testing.T) {
	resolver, store, _ := setupTestResolver(t)
	router := setupTestRouter(resolver)

	insertLink(t, store, links.InsertParams{
		Title:          "A",
		DestinationURL: "https://example.com",
		Slug:           "offline1",
		Status:         "inactive",
	})

	for _, path := range []string{"/go/offline1", "/go/never-existed"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Errorf("GET %s: got %d -> %q, want 302 -> /", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestGoWithoutSlugRedirectsHome(t *testing.T) {
	resolver, _, _ := setupTestResolver(t)
	router := setupTestRouter(resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/go", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", w.Code)
	}
}

func TestGoTrailingSlash(t *testing.T) {
	resolver, store, _ := setupTestResolver(t)
	router := setupTestRouter(resolver)

	insertLink(t, store, links.InsertParams{
		Title:          "A",
		DestinationURL: "https://example.com",
		Slug:           "slashed1",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/go/slashed1/", nil)
	router.ServeHTTP(w, req)

	// gin folds the trailing slash onto the slug route with a redirect.
	if w.Code != http.StatusMovedPermanently && w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("Expected trailing-slash redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasSuffix(loc, "/go/slashed1") {
		t.Errorf("Unexpected redirect target %q", loc)
	}
}

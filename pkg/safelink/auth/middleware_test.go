package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(TokenAuth(token))
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func doRequest(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/api/ping", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenAuth(t *testing.T) {
	r := setupTestRouter("secret-token")

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Missing key: expected 401, got %d", w.Code)
	}
	if w := doRequest(r, "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("Wrong key: expected 401, got %d", w.Code)
	}
	if w := doRequest(r, "secret-token"); w.Code != http.StatusOK {
		t.Errorf("Valid key: expected 200, got %d", w.Code)
	}
}

func TestTokenAuthUnconfiguredLocksOut(t *testing.T) {
	r := setupTestRouter("")

	if w := doRequest(r, "anything"); w.Code != http.StatusUnauthorized {
		t.Errorf("Unconfigured token: expected 401, got %d", w.Code)
	}
}

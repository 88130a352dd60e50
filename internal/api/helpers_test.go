package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nmr14/adpoints-backend/internal/db"
)

const testSecret = "test-secret"

// setupRouter builds a router over a fresh temp-file SQLite database so
// every test gets an isolated store.
func setupRouter(t *testing.T, cooldown time.Duration) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return NewRouter(gdb, nil, testSecret, cooldown), gdb
}

func performJSONRequest(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// registerAndLogin creates a regular user through the API and returns a token
func registerAndLogin(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	resp := performJSONRequest(t, r, http.MethodPost, "/register",
		map[string]any{"username": username, "password": password}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", resp.Code, resp.Body.String())
	}
	return login(t, r, username, password)
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	resp := performJSONRequest(t, r, http.MethodPost, "/login",
		map[string]any{"username": username, "password": password}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	return body.Token
}

// adminToken bootstraps the admin account and logs it in
func adminToken(t *testing.T, r http.Handler, gdb *gorm.DB) string {
	t.Helper()
	if err := db.BootstrapAdmin(gdb, "admin", "adminpass123"); err != nil {
		t.Fatalf("failed to bootstrap admin: %v", err)
	}
	return login(t, r, "admin", "adminpass123")
}

// createAd creates an ad through the admin API and returns its ID
func createAd(t *testing.T, r http.Handler, token, title string, reward int) uint {
	t.Helper()
	resp := performJSONRequest(t, r, http.MethodPost, "/admin/ads",
		map[string]any{"title": title, "url": "https://ads.example.com/" + title, "duration": 30, "reward_points": reward}, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("create ad failed: %d %s", resp.Code, resp.Body.String())
	}
	var body struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &body)
	return body.ID
}

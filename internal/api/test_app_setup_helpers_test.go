package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/security"
	"go.uber.org/zap"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

var (
	testLocation = time.FixedZone("UTC-5", -5*60*60)
	// 12:00 local on 2026-10-15.
	testNow = time.Date(2026, time.October, 15, 17, 0, 0, 0, time.UTC)
)

type testApp struct {
	app     *fiber.App
	handler *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCache(t, cache.Noop{})
}

func newTestAppWithCache(t *testing.T, dashboardCache cache.DashboardCache) *testApp {
	t.Helper()
	return newConfiguredTestApp(t, dashboardCache, zap.NewNop())
}

func newConfiguredTestApp(t *testing.T, dashboardCache cache.DashboardCache, log *zap.Logger) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "wellnest-api-test.db")
	database, err := db.OpenSQLite(databasePath, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(Dependencies{
		Database:  database,
		SecretKey: testSecretKey,
		Location:  testLocation,
		Clock:     calendar.FixedClock{Instant: testNow},
		Cache:     dashboardCache,
		Logger:    log,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, handler: handler}
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()

	token, err := security.IssueToken([]byte(testSecretKey), userID, time.Hour, testNow)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func (ta *testApp) do(t *testing.T, method string, path string, userID string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		request.Header.Set("Authorization", bearerFor(t, userID))
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()
	defer response.Body.Close()

	var value T
	if err := json.NewDecoder(response.Body).Decode(&value); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return value
}

func errorMessage(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}

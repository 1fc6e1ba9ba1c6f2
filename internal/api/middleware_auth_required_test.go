package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/security"
)

func TestHealthDoesNotRequireAuth(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodGet, "/healthz", "", "")
	expectStatus(t, response, fiber.StatusOK)
	if status := decodeJSON[map[string]string](t, response)["status"]; status != "ok" {
		t.Fatalf("expected status ok, got %q", status)
	}
}

func TestAuthRequiredRejectsMissingAndForeignTokens(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodGet, "/api/moods", "", "")
	expectStatus(t, response, fiber.StatusUnauthorized)
	if message := errorMessage(t, response); message != "unauthorized" {
		t.Fatalf("expected unauthorized error, got %q", message)
	}

	foreign, err := security.IssueToken([]byte("some-other-secret-with-32-characters!"), "user-1", time.Hour, testNow)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	request := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	request.Header.Set("Authorization", "Bearer "+foreign)
	response, err = ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	expectStatus(t, response, fiber.StatusUnauthorized)

	request = httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	response, err = ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	expectStatus(t, response, fiber.StatusUnauthorized)
}

func TestAuthRequiredThrottlesRepeatedFailures(t *testing.T) {
	ta := newTestApp(t)

	for attempt := 0; attempt < authFailureLimit; attempt++ {
		response := ta.do(t, http.MethodGet, "/api/goals", "", "")
		expectStatus(t, response, fiber.StatusUnauthorized)
	}

	response := ta.do(t, http.MethodGet, "/api/goals", "user-1", "")
	expectStatus(t, response, fiber.StatusTooManyRequests)
}

func TestAuthRequiredExposesUserToHandlers(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodGet, "/api/goals", "user-1", "")
	expectStatus(t, response, fiber.StatusOK)
}

func TestAuthRequiredChecksExpiryAgainstHandlerClock(t *testing.T) {
	ta := newTestApp(t)

	for _, testCase := range []struct {
		name     string
		issuedAt time.Time
		status   int
	}{
		{name: "live", issuedAt: testNow.Add(-30 * time.Minute), status: fiber.StatusOK},
		{name: "expired", issuedAt: testNow.Add(-2 * time.Hour), status: fiber.StatusUnauthorized},
	} {
		token, err := security.IssueToken([]byte(testSecretKey), "user-1", time.Hour, testCase.issuedAt)
		if err != nil {
			t.Fatalf("%s: issue token: %v", testCase.name, err)
		}
		request := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response, err := ta.app.Test(request, -1)
		if err != nil {
			t.Fatalf("%s: request failed: %v", testCase.name, err)
		}
		if response.StatusCode != testCase.status {
			t.Fatalf("%s: expected status %d, got %d", testCase.name, testCase.status, response.StatusCode)
		}
	}
}

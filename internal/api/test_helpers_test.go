package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/db"
	"github.com/terraincognita07/ovucast/internal/i18n"
	"github.com/terraincognita07/ovucast/internal/logger"
)

const testPasscode = "Moonrise2024"

func newTestApp(t *testing.T, now time.Time) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ovucast-api-test.db"), logger.Nop())
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

	i18nManager, err := i18n.NewDefaultManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key-0123456789abcdef", time.UTC, i18nManager, false, logger.Nop())
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return now }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

// newAuthenticatedTestApp sets up the owner passcode and returns the session
// cookie header value.
func newAuthenticatedTestApp(t *testing.T, now time.Time) (*fiber.App, *Handler, string) {
	t.Helper()

	app, handler := newTestApp(t, now)
	response := doJSON(t, app, http.MethodPost, "/api/auth/setup", "", map[string]string{"passcode": testPasscode})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected setup status 201, got %d", response.StatusCode)
	}
	token := responseCookieValue(response.Cookies(), authCookieName)
	if token == "" {
		t.Fatal("expected auth cookie after setup")
	}
	return app, handler, authCookieName + "=" + token
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, cookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}

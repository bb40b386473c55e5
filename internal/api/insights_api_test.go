package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dataglance/tably/internal/models"
	"github.com/dataglance/tably/internal/services"
	"github.com/gofiber/fiber/v2"
)

func newFakeCompletionServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected completion path %q", r.URL.Path)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": reply,
					},
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newInsightsApp(t *testing.T, reply string, status int) (*fiber.App, *http.Cookie) {
	t.Helper()

	server := newFakeCompletionServer(t, reply, status)
	app, _, _ := newTestApp(t, func(config *Config) {
		config.Insights = services.InsightConfig{
			APIKey:  "test-key",
			BaseURL: server.URL + "/v1",
		}
	})
	signupTestUser(t, app, "analyst@example.com", models.RoleUser)
	return app, loginSessionCookie(t, app, "analyst@example.com", "OrigPass1")
}

func TestGenerateInsightsRequiresSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodPost, "/api/ai/insights", map[string]any{
		"data": []map[string]any{{"Region": "North"}},
	})
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestGenerateInsightsReturnsModelText(t *testing.T) {
	app, cookie := newInsightsApp(t, "Sales trend upward in the north.", http.StatusOK)

	response := doJSON(t, app, http.MethodPost, "/api/ai/insights", map[string]any{
		"data": []map[string]any{
			{"Region": "North", "Sales": 1200},
			{"Region": "South", "Sales": 340.5},
		},
	}, cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	var body struct {
		Insights string `json:"insights"`
	}
	decodeJSON(t, response, &body)
	if body.Insights != "Sales trend upward in the north." {
		t.Fatalf("unexpected insights %q", body.Insights)
	}
}

func TestGenerateInsightsRejectsEmptyPayload(t *testing.T) {
	app, cookie := newInsightsApp(t, "unused", http.StatusOK)

	response := doJSON(t, app, http.MethodPost, "/api/ai/insights", map[string]any{
		"data": []map[string]any{},
	}, cookie)
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty data, got %d", response.StatusCode)
	}
}

func TestGenerateInsightsUpstreamFailure(t *testing.T) {
	app, cookie := newInsightsApp(t, "", http.StatusInternalServerError)

	response := doJSON(t, app, http.MethodPost, "/api/ai/insights", map[string]any{
		"data": []map[string]any{{"Region": "North"}},
	}, cookie)
	response.Body.Close()
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 on upstream failure, got %d", response.StatusCode)
	}
}

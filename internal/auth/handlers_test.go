package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/fitcoach/internal/config"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		AuthMode:      mode,
		JWTSecret:     "test-secret-key-for-testing-only",
		JWTIssuer:     "fitcoach-test",
		JWTTTLMinutes: 60,
	}
}

func TestHandleDevAuthIssuesVerifiableToken(t *testing.T) {
	service := NewService(testConfig("dev"))
	handler := NewHandlers(service)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	w := httptest.NewRecorder()
	handler.HandleDevAuth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp DevAuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	sub, err := service.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if sub != "dev-user" {
		t.Fatalf("sub = %q, want dev-user", sub)
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	service := NewService(testConfig("dev"))
	if _, err := service.VerifyJWT("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestRequireAuthDevMode(t *testing.T) {
	cfg := testConfig("dev")
	service := NewService(cfg)
	middleware := NewMiddleware(cfg, service)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	wrapped := middleware.RequireAuth(next)

	// Без токена — 401
	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/abc", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// Публичный путь проходит всегда
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for public path, got %d", w.Code)
	}

	// С валидным токеном — user id в контексте
	resp, err := service.SignInDev(req.Context())
	if err != nil {
		t.Fatalf("dev sign-in failed: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/abc", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", w.Code, w.Body.String())
	}
	if gotUserID != "dev-user" {
		t.Fatalf("context user = %q, want dev-user", gotUserID)
	}
}

func TestRequireAuthModeNonePassesThrough(t *testing.T) {
	cfg := testConfig("none")
	middleware := NewMiddleware(cfg, NewService(cfg))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := middleware.RequireAuth(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/abc", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 in mode none, got %d", w.Code)
	}
}

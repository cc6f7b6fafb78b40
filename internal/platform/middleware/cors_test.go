package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testOrigins = []string{"http://localhost:*", "tauri://localhost"}

func TestCORSAllowsWildcardPortOrigin(t *testing.T) {
	called := false
	h := CORS(testOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "http://127.0.0.1/commands/get_data_from_fastapi", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if !called {
		t.Fatal("expected downstream handler to be called")
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:1420" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if !strings.Contains(resp.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id") {
		t.Fatalf("expected X-Request-Id exposed, got %q", resp.Header().Get("Access-Control-Expose-Headers"))
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := CORS(testOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "http://127.0.0.1/commands", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}

func TestCORSHandlesPreflightWithoutCallingNext(t *testing.T) {
	called := false
	h := CORS(testOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "http://127.0.0.1/commands/x", nil)
	req.Header.Set("Origin", "tauri://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered by CORS middleware")
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "tauri://localhost" {
		t.Fatalf("expected tauri origin allowed, got %q", got)
	}
	if !strings.Contains(resp.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("expected POST allowed, got %q", resp.Header().Get("Access-Control-Allow-Methods"))
	}
}

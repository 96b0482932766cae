package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
)

func testLogger() *logger.Logger {
	log, _ := logger.New("", "test", "info")
	return log
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestBuildBaseHandler_SetsTraceAndSecurityHeaders(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	BuildBaseHandler("profiles", testLogger(), inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if seen == "" || rec.Header().Get("X-Trace-ID") != seen {
		t.Errorf("expected trace id in context and header, got %q / %q", seen, rec.Header().Get("X-Trace-ID"))
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("expected security headers")
	}
	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:") {
		t.Errorf("expected CSP allowing https avatars")
	}
}

func TestTraceIDMiddleware_KeepsIncomingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "given-id")
	rec := httptest.NewRecorder()

	TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TraceIDFromContext(r.Context()) != "given-id" {
			t.Errorf("expected incoming trace id to be kept")
		}
	})).ServeHTTP(rec, req)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != CodeUnknown {
		t.Errorf("expected code %s, got %s", CodeUnknown, env.Code)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, false, "/health")
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("exempt path must not be limited, got %d", rec.Code)
	}
}

func TestErrorHandler_DomainError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, commonerrors.ErrInvalidUpstreamPayload.WithCause(errors.New("unexpected EOF")), testLogger())

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "INVALID_UPSTREAM_PAYLOAD" || env.Message != "Failed to decode user list" {
		t.Errorf("unexpected envelope %#v", env)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, errors.New("template exploded"), testLogger())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", env.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthHandler(testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestMaxRequestSizeMiddleware(t *testing.T) {
	h := MaxRequestSizeMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too large")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
}

func TestRateLimiter_IgnoresSpoofedHeadersByDefault(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, false)
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var last int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.0.%d", i))
		h.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("rotating proxy headers must not bypass the limit, got %d", last)
	}

	rl.mu.Lock()
	clients := len(rl.limiters)
	rl.mu.Unlock()
	if clients != 1 {
		t.Errorf("expected one bucket keyed on the connection address, got %d", clients)
	}
}

func TestRateLimiter_TrustedProxyKeysOnHeader(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, true)
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = "127.0.0.1:8000"
		req.Header.Set("X-Real-IP", ip)
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("client %s behind the proxy should have its own bucket, got %d", ip, rec.Code)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		trust   bool
		headers map[string]string
		remote  string
		want    string
	}{
		{"real ip header trusted", true, map[string]string{"X-Real-IP": "10.0.0.9"}, "1.2.3.4:5", "10.0.0.9"},
		{"first forwarded hop trusted", true, map[string]string{"X-Forwarded-For": "10.0.0.7, 10.0.0.8"}, "1.2.3.4:5", "10.0.0.7"},
		{"headers ignored untrusted", false, map[string]string{"X-Real-IP": "10.0.0.9", "X-Forwarded-For": "10.0.0.7"}, "1.2.3.4:5", "1.2.3.4"},
		{"remote addr v4", false, nil, "1.2.3.4:5678", "1.2.3.4"},
		{"remote addr v6", false, nil, "[::1]:5678", "::1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req, tc.trust); got != tc.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

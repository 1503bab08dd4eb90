package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baharkarakas/budget-backend/internal/auth"
	"github.com/baharkarakas/budget-backend/internal/models"
)

func whoami(w http.ResponseWriter, r *http.Request) {
	u, _ := FromCtx(r.Context())
	_, _ = w.Write([]byte(u.UserID + "|" + u.Role))
}

func errCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return body.Code
}

func TestAuth(t *testing.T) {
	tm := auth.NewTokenManager("a", "r", "test", time.Minute, time.Hour)
	pair, err := tm.GeneratePair("11111111-1111-1111-1111-111111111111", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	devID := uuid.NewString()

	tests := []struct {
		name   string
		env    string
		header string
		status int
		body   string
	}{
		{"missing", "prod", "", 401, ""},
		{"not bearer", "prod", "Basic abc", 401, ""},
		{"access token", "prod", "Bearer " + pair.AccessToken, 200, "11111111-1111-1111-1111-111111111111|admin"},
		{"lowercase scheme", "prod", "bearer " + pair.AccessToken, 200, "11111111-1111-1111-1111-111111111111|admin"},
		{"refresh token rejected", "prod", "Bearer " + pair.RefreshToken, 401, ""},
		{"dev token in dev", "dev", "Bearer dev-" + devID, 200, devID + "|user"},
		{"dev token outside dev", "prod", "Bearer dev-" + devID, 401, ""},
		{"malformed dev token", "dev", "Bearer dev-nope", 401, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthMiddleware(tm, tc.env).Auth(http.HandlerFunc(whoami))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if tc.status == 200 && rr.Body.String() != tc.body {
				t.Fatalf("body = %q, want %q", rr.Body.String(), tc.body)
			}
			if tc.status == 401 && errCode(t, rr) != "unauthorized" {
				t.Fatalf("code = %s", rr.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleAdmin)(http.HandlerFunc(whoami))

	tests := []struct {
		name   string
		user   *UserCtx
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"wrong role", &UserCtx{UserID: "u1", Role: models.RoleUser}, http.StatusForbidden},
		{"admin", &UserCtx{UserID: "u1", Role: models.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil || rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("minted id = %q, header = %q", seen, rr.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("incoming id not kept: %q", seen)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError || errCode(t, rr) != "internal_error" {
		t.Fatalf("got %d %s", rr.Code, rr.Body.String())
	}
}

func TestRateLimitPerClient(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := rateLimit(2, func() time.Time { return now })(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := hit("10.0.0.1:1000"); code != 200 {
			t.Fatalf("request %d = %d", i, code)
		}
	}
	if code := hit("10.0.0.1:2000"); code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", code)
	}
	if code := hit("10.0.0.2:1000"); code != 200 {
		t.Fatalf("other client = %d", code)
	}
	now = now.Add(time.Second)
	if code := hit("10.0.0.1:1000"); code != 200 {
		t.Fatalf("after refill = %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h := RateLimit(0)(next)
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != 200 {
			t.Fatalf("status = %d", rr.Code)
		}
	}
}

func TestLoggingUsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(RequestID, Logging(log), HTTPMetrics)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	line := buf.String()
	for _, want := range []string{`"route":"/items/{id}"`, `"status":418`, `"request_id":"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %s missing %s", line, want)
		}
	}
}

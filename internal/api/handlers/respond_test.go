package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baharkarakas/budget-backend/internal/api/validate"
	"github.com/baharkarakas/budget-backend/internal/middleware"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
	"github.com/baharkarakas/budget-backend/internal/services"
)

func TestWriteServiceError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", validate.Field("name", "required"), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("get budget: %w", repo.ErrNotFound), http.StatusNotFound},
		{"no scope", repo.ErrNoScope, http.StatusUnauthorized},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"refresh", services.ErrInvalidToken, http.StatusUnauthorized},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), log, tc.err)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
		})
	}
}

func TestScopeFrom(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := scopeFrom(r); ok {
		t.Fatal("anonymous request has a scope")
	}
	r = r.WithContext(middleware.WithUser(r.Context(), middleware.UserCtx{UserID: "u-1", Role: "user"}))
	sc, ok := scopeFrom(r)
	if !ok || sc.UserID != "u-1" {
		t.Fatalf("scope = %+v, %v", sc, ok)
	}
}

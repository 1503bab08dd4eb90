package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/api/validate"
	"github.com/baharkarakas/budget-backend/internal/middleware"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
	"github.com/baharkarakas/budget-backend/internal/services"
)

// scopeFrom is the only place a request's owner scope is derived.
func scopeFrom(r *http.Request) (repo.Scope, bool) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		return repo.Scope{}, false
	}
	return repo.ForUser(u.UserID), true
}

// withScope rejects requests that reached a handler without a principal.
func withScope(w http.ResponseWriter, r *http.Request) (repo.Scope, bool) {
	sc, ok := scopeFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required", nil)
	}
	return sc, ok
}

func writeBadBody(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON body: "+err.Error(), nil)
}

// writeServiceError maps service and storage errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, "validation failed", verrs)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "not found", nil)
	case errors.Is(err, repo.ErrNoScope):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid credentials", nil)
	case errors.Is(err, services.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid refresh token", nil)
	default:
		log.ErrorContext(r.Context(), "request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error", nil)
	}
}

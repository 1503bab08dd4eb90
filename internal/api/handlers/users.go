package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/middleware"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type UserHandler struct {
	Users    *services.UserService
	Log      *slog.Logger
	PageSize int
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required", nil)
		return
	}
	u, err := h.Users.Me(r.Context(), principal.UserID)
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// List is admin only; the route guards it with RequireRole.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePage(r, h.PageSize)
	if !ok {
		writeInvalidPage(w)
		return
	}
	users, count, err := h.Users.List(r.Context(), p.repo())
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	if p.beyond(count) {
		writeInvalidPage(w)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writePage(w, r, p, count, users)
}

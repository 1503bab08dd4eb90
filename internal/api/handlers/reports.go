package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type ReportHandler struct {
	Svc *services.ReportService
	Log *slog.Logger
}

// Monthly serves ?month=&year=. Bad values fall back to the current month.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	rep, err := h.Svc.Monthly(r.Context(), sc, q.Get("month"), q.Get("year"))
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rep)
}

// Weekly serves ?weeks_ago=.
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	rep, err := h.Svc.Weekly(r.Context(), sc, r.URL.Query().Get("weeks_ago"))
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rep)
}

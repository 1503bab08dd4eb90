package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type BudgetHandler struct {
	Svc      *services.BudgetService
	Log      *slog.Logger
	PageSize int
}

type budgetReq struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

func (b budgetReq) fields() services.BudgetFields {
	return services.BudgetFields{Name: b.Name, Category: b.Category, TotalAmount: b.TotalAmount}
}

type budgetResp struct {
	ID              string    `json:"id"`
	User            string    `json:"user"`
	Name            string    `json:"name"`
	TotalAmount     string    `json:"total_amount"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	RemainingAmount string    `json:"remaining_amount"`
	SpentPercentage float64   `json:"spent_percentage"`
}

func toBudgetResp(b models.Budget) budgetResp {
	return budgetResp{
		ID:              b.ID,
		User:            b.Username,
		Name:            b.Name,
		TotalAmount:     models.FormatMoney(b.TotalAmount),
		Category:        b.Category,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		RemainingAmount: models.FormatMoney(b.RemainingAmount()),
		SpentPercentage: b.SpentPercentage(),
	}
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	p, ok := parsePage(r, h.PageSize)
	if !ok {
		writeInvalidPage(w)
		return
	}
	list, count, err := h.Svc.List(r.Context(), sc, p.repo())
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	if p.beyond(count) {
		writeInvalidPage(w)
		return
	}
	out := make([]budgetResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBudgetResp(b))
	}
	writePage(w, r, p, count, out)
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	var req budgetReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	b, err := h.Svc.Create(r.Context(), sc, req.fields())
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toBudgetResp(b))
}

func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	b, err := h.Svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBudgetResp(b))
}

func (h *BudgetHandler) Replace(w http.ResponseWriter, r *http.Request) { h.update(w, r, true) }

func (h *BudgetHandler) Patch(w http.ResponseWriter, r *http.Request) { h.update(w, r, false) }

func (h *BudgetHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	var req budgetReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	var (
		b   models.Budget
		err error
	)
	if full {
		b, err = h.Svc.Replace(r.Context(), sc, id, req.fields())
	} else {
		b, err = h.Svc.Patch(r.Context(), sc, id, req.fields())
	}
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBudgetResp(b))
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), sc, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type ExpenseHandler struct {
	Svc      *services.ExpenseService
	Log      *slog.Logger
	PageSize int
}

type expenseReq struct {
	BudgetID    *string          `json:"budget_id"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Category    *string          `json:"category"`
}

func (e expenseReq) fields() services.ExpenseFields {
	return services.ExpenseFields{
		BudgetID:    e.BudgetID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    e.Category,
	}
}

type expenseResp struct {
	ID             string     `json:"id"`
	BudgetID       string     `json:"budget_id"`
	BudgetName     string     `json:"budget_name"`
	BudgetCategory string     `json:"budget_category"`
	User           string     `json:"user"`
	Description    string     `json:"description"`
	Amount         string     `json:"amount"`
	Date           civil.Date `json:"date"`
	Category       string     `json:"category"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toExpenseResp(e models.Expense) expenseResp {
	return expenseResp{
		ID:             e.ID,
		BudgetID:       e.BudgetID,
		BudgetName:     e.BudgetName,
		BudgetCategory: e.BudgetCategory,
		User:           e.Username,
		Description:    e.Description,
		Amount:         models.FormatMoney(e.Amount),
		Date:           e.Date,
		Category:       e.Category,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	p, ok := parsePage(r, h.PageSize)
	if !ok {
		writeInvalidPage(w)
		return
	}
	q := r.URL.Query()
	query := services.ExpenseQuery{
		Category: q.Get("category"),
		Date:     q.Get("date"),
		Budget:   q.Get("budget"),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}
	list, count, err := h.Svc.List(r.Context(), sc, query, p.repo())
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	if p.beyond(count) {
		writeInvalidPage(w)
		return
	}
	out := make([]expenseResp, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResp(e))
	}
	writePage(w, r, p, count, out)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	var req expenseReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	e, err := h.Svc.Create(r.Context(), sc, req.fields())
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toExpenseResp(e))
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	e, err := h.Svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpenseResp(e))
}

func (h *ExpenseHandler) Replace(w http.ResponseWriter, r *http.Request) { h.update(w, r, true) }

func (h *ExpenseHandler) Patch(w http.ResponseWriter, r *http.Request) { h.update(w, r, false) }

func (h *ExpenseHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	sc, ok := withScope(w, r)
	if !ok {
		return
	}
	var req expenseReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	var (
		e   models.Expense
		err error
	)
	if full {
		e, err = h.Svc.Replace(r.Context(), sc, id, req.fields())
	} else {
		e, err = h.Svc.Patch(r.Context(), sc, id, req.fields())
	}
	if err != nil {
		writeServiceError(w, r, h.Log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpenseResp(e))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

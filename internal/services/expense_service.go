package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/api/validate"
	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

// ExpenseFields carries client input. A nil field was not sent. Date is kept
// raw so a malformed value surfaces as a field error.
type ExpenseFields struct {
	BudgetID    *string
	Description *string
	Amount      *decimal.Decimal
	Date        *string
	Category    *string
}

// ExpenseQuery is the raw query string of an expense listing.
type ExpenseQuery struct {
	Category string
	Date     string
	Budget   string
	Search   string
	Ordering string
}

type ExpenseService struct {
	r       repo.Expenses
	budgets repo.Budgets
	clock   Clock
	audit   auditor
}

func NewExpenseService(r repo.Expenses, budgets repo.Budgets, logs repo.AuditLogs, clock Clock, log *slog.Logger) *ExpenseService {
	return &ExpenseService{r: r, budgets: budgets, clock: clock, audit: newAuditor(logs, log)}
}

func (s *ExpenseService) List(ctx context.Context, sc repo.Scope, q ExpenseQuery, p repo.Page) ([]models.Expense, int, error) {
	f, err := q.filter()
	if err != nil {
		return nil, 0, err
	}
	f.Page = p
	out, n, err := s.r.List(ctx, sc, f)
	return out, n, wrap("list expenses", err)
}

func (q ExpenseQuery) filter() (repo.ExpenseFilter, error) {
	f := repo.ExpenseFilter{
		Category: q.Category,
		Search:   strings.TrimSpace(q.Search),
		Ordering: ParseOrdering(q.Ordering),
	}
	var errs validate.Errs
	if q.Date != "" {
		d, ferr := parseDate("date", q.Date)
		if ferr != nil {
			errs = errs.Append(ferr)
		} else {
			f.Date = &d
		}
	}
	if q.Budget != "" {
		if !repo.ValidID(q.Budget) {
			errs = errs.Append(&validate.ErrField{Field: "budget", Msg: "must be a valid id"})
		}
		f.BudgetID = q.Budget
	}
	return f, errs.Err()
}

// ParseOrdering reads a comma separated list such as "-amount,date". Unknown
// fields are dropped; an empty result means the default ordering.
func ParseOrdering(raw string) []repo.OrderField {
	var out []repo.OrderField
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		switch name {
		case "date", "amount", "created_at":
		default:
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, repo.OrderField{Field: name, Desc: desc})
	}
	return out
}

func (s *ExpenseService) Get(ctx context.Context, sc repo.Scope, id string) (models.Expense, error) {
	if err := lookupID(id); err != nil {
		return models.Expense{}, err
	}
	e, err := s.r.Get(ctx, sc, id)
	return e, wrap("get expense", err)
}

func (s *ExpenseService) Create(ctx context.Context, sc repo.Scope, in ExpenseFields) (models.Expense, error) {
	e, err := s.build(models.Expense{}, in, true)
	if err == nil {
		e, err = s.resolveBudget(ctx, sc, e)
	}
	if err == nil {
		e, err = s.r.Create(ctx, sc, e)
	}
	if err != nil {
		s.audit.failed(models.EntityExpense)
		return models.Expense{}, wrap("create expense", err)
	}
	s.audit.record(ctx, sc, models.EntityExpense, e.ID, models.ActionCreated, expenseDetails(e))
	return e, nil
}

func (s *ExpenseService) Replace(ctx context.Context, sc repo.Scope, id string, in ExpenseFields) (models.Expense, error) {
	return s.update(ctx, sc, id, in, true)
}

func (s *ExpenseService) Patch(ctx context.Context, sc repo.Scope, id string, in ExpenseFields) (models.Expense, error) {
	return s.update(ctx, sc, id, in, false)
}

func (s *ExpenseService) update(ctx context.Context, sc repo.Scope, id string, in ExpenseFields, full bool) (models.Expense, error) {
	current, err := s.Get(ctx, sc, id)
	if err != nil {
		return models.Expense{}, err
	}
	e, err := s.build(current, in, full)
	if err == nil {
		e, err = s.resolveBudget(ctx, sc, e)
	}
	if err == nil {
		e, err = s.r.Update(ctx, sc, e)
	}
	if err != nil {
		s.audit.failed(models.EntityExpense)
		return models.Expense{}, wrap("update expense", err)
	}
	s.audit.record(ctx, sc, models.EntityExpense, e.ID, models.ActionUpdated, expenseDetails(e))
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, sc repo.Scope, id string) error {
	if err := lookupID(id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, sc, id); err != nil {
		s.audit.failed(models.EntityExpense)
		return wrap("delete expense", err)
	}
	s.audit.record(ctx, sc, models.EntityExpense, id, models.ActionDeleted, nil)
	return nil
}

// resolveBudget looks the budget up under the caller's scope and takes the
// expense owner from it. A budget the caller does not own is not found.
func (s *ExpenseService) resolveBudget(ctx context.Context, sc repo.Scope, e models.Expense) (models.Expense, error) {
	if err := lookupID(e.BudgetID); err != nil {
		return e, err
	}
	b, err := s.budgets.Get(ctx, sc, e.BudgetID)
	if err != nil {
		return e, err
	}
	e.UserID = b.UserID
	e.BudgetName = b.Name
	e.BudgetCategory = b.Category
	return e, nil
}

func (s *ExpenseService) build(base models.Expense, in ExpenseFields, full bool) (models.Expense, error) {
	var errs validate.Errs
	e := base
	if in.BudgetID != nil {
		e.BudgetID = strings.TrimSpace(*in.BudgetID)
		errs = errs.Append(validate.Required("budget_id", e.BudgetID))
	} else if full {
		errs = errs.Append(validate.Required("budget_id", ""))
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
		errs = errs.Append(validate.Required("description", e.Description), validate.MaxLen("description", e.Description, maxDescriptionLen))
	} else if full {
		errs = errs.Append(validate.Required("description", ""))
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
		errs = errs.Append(validate.Required("category", e.Category), validate.MaxLen("category", e.Category, maxCategoryLen))
	} else if full {
		errs = errs.Append(validate.Required("category", ""))
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
		errs = errs.Append(validate.Money("amount", e.Amount, models.MaxMoney))
	} else if full {
		errs = errs.Append(validate.Required("amount", ""))
	}
	if in.Date != nil {
		d, ferr := parseDate("date", strings.TrimSpace(*in.Date))
		if ferr != nil {
			errs = errs.Append(ferr)
		} else {
			e.Date = d
			errs = errs.Append(validate.NotAfter("date", d, s.clock.Today()))
		}
	} else if full {
		errs = errs.Append(validate.Required("date", ""))
	}
	return e, errs.Err()
}

func expenseDetails(e models.Expense) map[string]any {
	return map[string]any{
		"budget_id":   e.BudgetID,
		"description": e.Description,
		"amount":      models.FormatMoney(e.Amount),
		"date":        e.Date.String(),
		"category":    e.Category,
	}
}

package memory

import (
	"context"
	"sort"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/shopspring/decimal"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type reportsRepo struct{ s *Store }

// inInterval returns the owner's expenses dated inside iv. Callers hold the lock.
func (s *Store) inInterval(sc repo.Scope, iv models.Interval) []*expenseRow {
	var rows []*expenseRow
	for _, e := range s.expenses {
		if e.UserID == sc.UserID && iv.Contains(e.Date) {
			rows = append(rows, e)
		}
	}
	return rows
}

func (r reportsRepo) SumExpenses(_ context.Context, sc repo.Scope, iv models.Interval) (decimal.Decimal, error) {
	if err := sc.Check(); err != nil {
		return decimal.Zero, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range r.s.inInterval(sc, iv) {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r reportsRepo) SumBudgets(_ context.Context, sc repo.Scope) (decimal.Decimal, error) {
	if err := sc.Check(); err != nil {
		return decimal.Zero, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, b := range r.s.budgets {
		if b.UserID == sc.UserID {
			total = total.Add(b.TotalAmount)
		}
	}
	return total, nil
}

func (r reportsRepo) ExpensesByCategory(_ context.Context, sc repo.Scope, iv models.Interval) ([]models.CategoryTotal, error) {
	if err := sc.Check(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sums := map[string]decimal.Decimal{}
	for _, e := range r.s.inInterval(sc, iv) {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	out := make([]models.CategoryTotal, 0, len(sums))
	for c, t := range sums {
		out = append(out, models.CategoryTotal{Category: c, Total: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r reportsRepo) ExpensesByDay(_ context.Context, sc repo.Scope, iv models.Interval) ([]models.DailyTotal, error) {
	if err := sc.Check(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	idx := map[string]int{}
	out := []models.DailyTotal{}
	for _, e := range r.s.inInterval(sc, iv) {
		key := e.Date.String()
		if i, ok := idx[key]; ok {
			out[i].Total = out[i].Total.Add(e.Amount)
			continue
		}
		idx[key] = len(out)
		out = append(out, models.DailyTotal{Date: e.Date, Total: e.Amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r reportsRepo) BudgetActuals(_ context.Context, sc repo.Scope, iv models.Interval) ([]models.BudgetActual, error) {
	if err := sc.Check(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	actual := map[string]decimal.Decimal{}
	for _, e := range r.s.inInterval(sc, iv) {
		actual[e.BudgetID] = actual[e.BudgetID].Add(e.Amount)
	}
	rows := r.s.scopedBudgets(sc)
	out := make([]models.BudgetActual, 0, len(rows))
	for _, b := range rows {
		out = append(out, models.BudgetActual{
			BudgetID: b.ID,
			Name:     b.Name,
			Category: b.Category,
			Budgeted: b.TotalAmount,
			Actual:   actual[b.ID],
		})
	}
	return out, nil
}

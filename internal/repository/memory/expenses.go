package memory

import (
	"context"
	"sort"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type expensesRepo struct{ s *Store }

func matchesFilter(e *expenseRow, f repo.ExpenseFilter) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Date != nil && e.Date != *f.Date {
		return false
	}
	if f.BudgetID != "" && e.BudgetID != f.BudgetID {
		return false
	}
	if f.Search != "" && !containsFold(e.Description, f.Search) && !containsFold(e.Category, f.Search) {
		return false
	}
	return true
}

// compareField orders two rows by one field, ascending.
func compareField(a, b *expenseRow, field string) int {
	switch field {
	case "date":
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "created_at":
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
	}
	return 0
}

func sortExpenses(rows []*expenseRow, ordering []repo.OrderField) {
	if len(ordering) == 0 {
		ordering = repo.DefaultExpenseOrdering
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range ordering {
			c := compareField(rows[i], rows[j], o.Field)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return rows[i].seq < rows[j].seq
	})
}

func (r expensesRepo) List(_ context.Context, sc repo.Scope, f repo.ExpenseFilter) ([]models.Expense, int, error) {
	if err := sc.Check(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*expenseRow
	for _, e := range r.s.expenses {
		if e.UserID == sc.UserID && matchesFilter(e, f) {
			rows = append(rows, e)
		}
	}
	sortExpenses(rows, f.Ordering)

	out := make([]models.Expense, 0, len(rows))
	for _, row := range paginate(rows, f.Page) {
		out = append(out, r.s.expenseView(row))
	}
	return out, len(rows), nil
}

func (r expensesRepo) Get(_ context.Context, sc repo.Scope, id string) (models.Expense, error) {
	if err := sc.Check(); err != nil {
		return models.Expense{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.ownedExpense(sc, id)
	if !ok {
		return models.Expense{}, repo.ErrNotFound
	}
	return r.s.expenseView(row), nil
}

func (r expensesRepo) Create(_ context.Context, sc repo.Scope, e models.Expense) (models.Expense, error) {
	if err := sc.Check(); err != nil {
		return models.Expense{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	budget, ok := r.s.ownedBudget(sc, e.BudgetID)
	if !ok {
		return models.Expense{}, repo.ErrNotFound
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.UserID = budget.UserID
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	row := &expenseRow{Expense: e, seq: r.s.nextSeq()}
	r.s.expenses[e.ID] = row
	return r.s.expenseView(row), nil
}

func (r expensesRepo) Update(_ context.Context, sc repo.Scope, e models.Expense) (models.Expense, error) {
	if err := sc.Check(); err != nil {
		return models.Expense{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.ownedExpense(sc, e.ID)
	if !ok {
		return models.Expense{}, repo.ErrNotFound
	}
	budget, ok := r.s.ownedBudget(sc, e.BudgetID)
	if !ok {
		return models.Expense{}, repo.ErrNotFound
	}
	row.BudgetID = budget.ID
	row.UserID = budget.UserID
	row.Description = e.Description
	row.Amount = e.Amount
	row.Date = e.Date
	row.Category = e.Category
	row.UpdatedAt = r.s.now()
	return r.s.expenseView(row), nil
}

func (r expensesRepo) Delete(_ context.Context, sc repo.Scope, id string) error {
	if err := sc.Check(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ownedExpense(sc, id); !ok {
		return repo.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

package memory

import (
	"context"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type budgetsRepo struct{ s *Store }

func (r budgetsRepo) List(_ context.Context, sc repo.Scope, p repo.Page) ([]models.Budget, int, error) {
	if err := sc.Check(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.scopedBudgets(sc)
	out := make([]models.Budget, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.s.budgetView(row))
	}
	return paginate(out, p), len(out), nil
}

// scopedBudgets returns the owner's budgets newest first. Callers hold the lock.
func (s *Store) scopedBudgets(sc repo.Scope) []*budgetRow {
	var rows []*budgetRow
	for _, row := range s.budgets {
		if row.UserID == sc.UserID {
			rows = append(rows, row)
		}
	}
	sortBudgetsNewestFirst(rows)
	return rows
}

func (r budgetsRepo) Get(_ context.Context, sc repo.Scope, id string) (models.Budget, error) {
	if err := sc.Check(); err != nil {
		return models.Budget{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.ownedBudget(sc, id)
	if !ok {
		return models.Budget{}, repo.ErrNotFound
	}
	return r.s.budgetView(row), nil
}

func (r budgetsRepo) ExistsByKey(_ context.Context, sc repo.Scope, name, category, excludeID string) (bool, error) {
	if err := sc.Check(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.keyTaken(sc.UserID, name, category, excludeID), nil
}

// keyTaken enforces the (owner, name, category) uniqueness the way the
// database constraint does. Callers hold the lock.
func (s *Store) keyTaken(userID, name, category, excludeID string) bool {
	for _, row := range s.budgets {
		if row.ID != excludeID && row.UserID == userID && row.Name == name && row.Category == category {
			return true
		}
	}
	return false
}

func (r budgetsRepo) Create(_ context.Context, sc repo.Scope, b models.Budget) (models.Budget, error) {
	if err := sc.Check(); err != nil {
		return models.Budget{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.keyTaken(sc.UserID, b.Name, b.Category, "") {
		return models.Budget{}, repo.ErrDuplicate
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.UserID = sc.UserID
	b.CreatedAt = r.s.now()
	b.UpdatedAt = b.CreatedAt
	row := &budgetRow{Budget: b, seq: r.s.nextSeq()}
	r.s.budgets[b.ID] = row
	return r.s.budgetView(row), nil
}

func (r budgetsRepo) Update(_ context.Context, sc repo.Scope, b models.Budget) (models.Budget, error) {
	if err := sc.Check(); err != nil {
		return models.Budget{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.ownedBudget(sc, b.ID)
	if !ok {
		return models.Budget{}, repo.ErrNotFound
	}
	if r.s.keyTaken(sc.UserID, b.Name, b.Category, b.ID) {
		return models.Budget{}, repo.ErrDuplicate
	}
	row.Name = b.Name
	row.Category = b.Category
	row.TotalAmount = b.TotalAmount
	row.UpdatedAt = r.s.now()
	return r.s.budgetView(row), nil
}

func (r budgetsRepo) Delete(_ context.Context, sc repo.Scope, id string) error {
	if err := sc.Check(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedBudget(sc, id); !ok {
		return repo.ErrNotFound
	}
	delete(r.s.budgets, id)
	for eid, e := range r.s.expenses {
		if e.BudgetID == id {
			delete(r.s.expenses, eid)
		}
	}
	return nil
}

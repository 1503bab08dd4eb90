// Package memory is an in-process implementation of the repository
// interfaces. It backs DATA_BACKEND=memory and the service and handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type budgetRow struct {
	models.Budget
	seq int64
}

type expenseRow struct {
	models.Expense
	seq int64
}

type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      int64
	users    map[string]models.User
	budgets  map[string]*budgetRow
	expenses map[string]*expenseRow
	audit    []models.AuditLog
}

type Option func(*Store)

// WithClock sets the source of created_at/updated_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		users:    map[string]models.User{},
		budgets:  map[string]*budgetRow{},
		expenses: map[string]*expenseRow{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Users:     usersRepo{s},
		Budgets:   budgetsRepo{s},
		Expenses:  expensesRepo{s},
		Reports:   reportsRepo{s},
		AuditLogs: auditLogsRepo{s},
	}
}

// AuditLogs returns a copy of the recorded audit trail.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.audit...)
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// budgetView fills the derived fields. Callers hold the lock.
func (s *Store) budgetView(row *budgetRow) models.Budget {
	b := row.Budget
	b.Username = s.users[b.UserID].Username
	b.Spent = decimal.Zero
	for _, e := range s.expenses {
		if e.BudgetID == b.ID {
			b.Spent = b.Spent.Add(e.Amount)
		}
	}
	return b
}

// expenseView fills budget and user names. Callers hold the lock.
func (s *Store) expenseView(row *expenseRow) models.Expense {
	e := row.Expense
	if b, ok := s.budgets[e.BudgetID]; ok {
		e.BudgetName = b.Name
		e.BudgetCategory = b.Category
	}
	e.Username = s.users[e.UserID].Username
	return e
}

// ownedBudget is the single owner check every budget lookup goes through.
func (s *Store) ownedBudget(sc repo.Scope, id string) (*budgetRow, bool) {
	row, ok := s.budgets[id]
	if !ok || row.UserID != sc.UserID {
		return nil, false
	}
	return row, true
}

func (s *Store) ownedExpense(sc repo.Scope, id string) (*expenseRow, bool) {
	row, ok := s.expenses[id]
	if !ok || row.UserID != sc.UserID {
		return nil, false
	}
	return row, true
}

func paginate[T any](items []T, p repo.Page) []T {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[p.Offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

func sortBudgetsNewestFirst(rows []*budgetRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.seq > b.seq
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

package repository

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context, p Page) ([]models.User, int, error)
}

// Budgets returns budgets with Username and Spent populated.
type Budgets interface {
	List(ctx context.Context, s Scope, p Page) ([]models.Budget, int, error)
	Get(ctx context.Context, s Scope, id string) (models.Budget, error)
	ExistsByKey(ctx context.Context, s Scope, name, category, excludeID string) (bool, error)
	Create(ctx context.Context, s Scope, b models.Budget) (models.Budget, error)
	Update(ctx context.Context, s Scope, b models.Budget) (models.Budget, error)
	Delete(ctx context.Context, s Scope, id string) error
}

// Expenses returns expenses with budget and user names populated. Create and
// Update only succeed when the referenced budget is owned by the scope.
type Expenses interface {
	List(ctx context.Context, s Scope, f ExpenseFilter) ([]models.Expense, int, error)
	Get(ctx context.Context, s Scope, id string) (models.Expense, error)
	Create(ctx context.Context, s Scope, e models.Expense) (models.Expense, error)
	Update(ctx context.Context, s Scope, e models.Expense) (models.Expense, error)
	Delete(ctx context.Context, s Scope, id string) error
}

// Reports aggregates over closed date intervals. Budgets are never
// interval-filtered.
type Reports interface {
	SumExpenses(ctx context.Context, s Scope, iv models.Interval) (decimal.Decimal, error)
	SumBudgets(ctx context.Context, s Scope) (decimal.Decimal, error)
	// ExpensesByCategory is ordered by total descending.
	ExpensesByCategory(ctx context.Context, s Scope, iv models.Interval) ([]models.CategoryTotal, error)
	// ExpensesByDay is ordered by date ascending.
	ExpensesByDay(ctx context.Context, s Scope, iv models.Interval) ([]models.DailyTotal, error)
	// BudgetActuals has one entry per budget, newest budget first.
	BudgetActuals(ctx context.Context, s Scope, iv models.Interval) ([]models.BudgetActual, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

type Repositories struct {
	Users     Users
	Budgets   Budgets
	Expenses  Expenses
	Reports   Reports
	AuditLogs AuditLogs
}

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Category string
	Date     *civil.Date
	BudgetID string
	Search   string
	Ordering []OrderField
	Page     Page
}

type OrderField struct {
	Field string // date | amount | created_at
	Desc  bool
}

// DefaultExpenseOrdering is newest date first, then newest record.
var DefaultExpenseOrdering = []OrderField{{Field: "date", Desc: true}, {Field: "created_at", Desc: true}}

type Page struct {
	Limit  int
	Offset int
}

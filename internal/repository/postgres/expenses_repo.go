package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type expensesRepo struct{ pool *pgxpool.Pool }

const expenseSelect = `
SELECT e.id, e.budget_id, b.name, b.category, e.user_id, u.username,
       e.description, e.amount, e.date, e.category, e.created_at, e.updated_at
  FROM expenses e
  JOIN budgets b ON b.id = e.budget_id
  JOIN users u ON u.id = e.user_id`

var orderColumns = map[string]string{
	"date":       "e.date",
	"amount":     "e.amount",
	"created_at": "e.created_at",
}

func pgDate(d civil.Date) time.Time { return d.In(time.UTC) }

func scanExpense(row pgx.Row) (models.Expense, error) {
	var (
		e models.Expense
		d time.Time
	)
	err := row.Scan(&e.ID, &e.BudgetID, &e.BudgetName, &e.BudgetCategory, &e.UserID, &e.Username,
		&e.Description, &e.Amount, &d, &e.Category, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Expense{}, translate(err)
	}
	e.Date = civil.DateOf(d)
	return e, nil
}

// buildExpenseWhere renders the filter as SQL predicates. $1 is always the
// owner, taken from the scope.
func buildExpenseWhere(f repo.ExpenseFilter, args []any) (string, []any) {
	conds := []string{"e.user_id = $1"}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Category != "" {
		conds = append(conds, "e.category = "+next(f.Category))
	}
	if f.Date != nil {
		conds = append(conds, "e.date = "+next(pgDate(*f.Date)))
	}
	if f.BudgetID != "" {
		conds = append(conds, "e.budget_id = "+next(f.BudgetID))
	}
	if f.Search != "" {
		p := next("%" + escapeLike(f.Search) + "%")
		conds = append(conds, "(e.description ILIKE "+p+" OR e.category ILIKE "+p+")")
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildExpenseOrder(fields []repo.OrderField) string {
	if len(fields) == 0 {
		fields = repo.DefaultExpenseOrdering
	}
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		col, ok := orderColumns[f.Field]
		if !ok {
			continue
		}
		if f.Desc {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	parts = append(parts, "e.id")
	return " ORDER BY " + strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *expensesRepo) List(ctx context.Context, s repo.Scope, f repo.ExpenseFilter) ([]models.Expense, int, error) {
	args, err := scoped(s)
	if err != nil {
		return nil, 0, err
	}
	where, args := buildExpenseWhere(f, args)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM expenses e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	n := len(args)
	q := expenseSelect + where + buildExpenseOrder(f.Ordering) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	rows, err := r.pool.Query(ctx, q, append(args, f.Page.Limit, f.Page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *expensesRepo) Get(ctx context.Context, s repo.Scope, id string) (models.Expense, error) {
	args, err := scoped(s, id)
	if err != nil {
		return models.Expense{}, err
	}
	return scanExpense(r.pool.QueryRow(ctx, expenseSelect+` WHERE e.user_id = $1 AND e.id = $2`, args...))
}

// Create copies the owner from the budget row; a budget outside the scope
// inserts nothing and yields ErrNotFound.
func (r *expensesRepo) Create(ctx context.Context, s repo.Scope, e models.Expense) (models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	args, err := scoped(s, e.ID, e.BudgetID, e.Description, e.Amount, pgDate(e.Date), e.Category)
	if err != nil {
		return models.Expense{}, err
	}
	var id string
	err = r.pool.QueryRow(ctx,
		`INSERT INTO expenses(id, budget_id, user_id, description, amount, date, category)
		 SELECT $2::uuid, b.id, b.user_id, $4::text, $5::numeric, $6::date, $7::text
		   FROM budgets b
		  WHERE b.id = $3 AND b.user_id = $1
		 RETURNING id`,
		args...,
	).Scan(&id)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense: %w", translate(err))
	}
	return r.Get(ctx, s, id)
}

func (r *expensesRepo) Update(ctx context.Context, s repo.Scope, e models.Expense) (models.Expense, error) {
	args, err := scoped(s, e.ID, e.BudgetID, e.Description, e.Amount, pgDate(e.Date), e.Category)
	if err != nil {
		return models.Expense{}, err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses e
		    SET budget_id = b.id, user_id = b.user_id, description = $4, amount = $5,
		        date = $6, category = $7, updated_at = now()
		   FROM budgets b
		  WHERE e.id = $2 AND e.user_id = $1 AND b.id = $3 AND b.user_id = $1`,
		args...,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return models.Expense{}, repo.ErrNotFound
	}
	return r.Get(ctx, s, e.ID)
}

func (r *expensesRepo) Delete(ctx context.Context, s repo.Scope, id string) error {
	args, err := scoped(s, id)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, args...)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type reportsRepo struct{ pool *pgxpool.Pool }

func (r *reportsRepo) SumExpenses(ctx context.Context, s repo.Scope, iv models.Interval) (decimal.Decimal, error) {
	args, err := scoped(s, pgDate(iv.Start), pgDate(iv.End))
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date BETWEEN $2 AND $3`,
		args...,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func (r *reportsRepo) SumBudgets(ctx context.Context, s repo.Scope) (decimal.Decimal, error) {
	args, err := scoped(s)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM budgets WHERE user_id = $1`, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum budgets: %w", err)
	}
	return total, nil
}

func (r *reportsRepo) ExpensesByCategory(ctx context.Context, s repo.Scope, iv models.Interval) ([]models.CategoryTotal, error) {
	args, err := scoped(s, pgDate(iv.Start), pgDate(iv.End))
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT category, SUM(amount) AS total
		   FROM expenses
		  WHERE user_id = $1 AND date BETWEEN $2 AND $3
		  GROUP BY category
		  ORDER BY total DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer rows.Close()

	out := []models.CategoryTotal{}
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

func (r *reportsRepo) ExpensesByDay(ctx context.Context, s repo.Scope, iv models.Interval) ([]models.DailyTotal, error) {
	args, err := scoped(s, pgDate(iv.Start), pgDate(iv.End))
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT date, SUM(amount) AS total
		   FROM expenses
		  WHERE user_id = $1 AND date BETWEEN $2 AND $3
		  GROUP BY date
		  ORDER BY date`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("expenses by day: %w", err)
	}
	defer rows.Close()

	out := []models.DailyTotal{}
	for rows.Next() {
		var (
			d  time.Time
			dt models.DailyTotal
		)
		if err := rows.Scan(&d, &dt.Total); err != nil {
			return nil, err
		}
		dt.Date = civil.DateOf(d)
		out = append(out, dt)
	}
	return out, rows.Err()
}

func (r *reportsRepo) BudgetActuals(ctx context.Context, s repo.Scope, iv models.Interval) ([]models.BudgetActual, error) {
	args, err := scoped(s, pgDate(iv.Start), pgDate(iv.End))
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.name, b.category, b.total_amount, COALESCE(SUM(e.amount), 0) AS actual
		   FROM budgets b
		   LEFT JOIN expenses e
		     ON e.budget_id = b.id AND e.date BETWEEN $2 AND $3
		  WHERE b.user_id = $1
		  GROUP BY b.id
		  ORDER BY b.created_at DESC, b.id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("budget actuals: %w", err)
	}
	defer rows.Close()

	out := []models.BudgetActual{}
	for rows.Next() {
		var a models.BudgetActual
		if err := rows.Scan(&a.BudgetID, &a.Name, &a.Category, &a.Budgeted, &a.Actual); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

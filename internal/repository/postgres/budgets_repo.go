package postgres

import (
	"context"
	"fmt"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type budgetsRepo struct{ pool *pgxpool.Pool }

// Spent is aggregated over every expense of the budget, not a date range.
const budgetSelect = `
SELECT b.id, b.user_id, u.username, b.name, b.category, b.total_amount,
       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.budget_id = b.id), 0) AS spent,
       b.created_at, b.updated_at
  FROM budgets b
  JOIN users u ON u.id = b.user_id
 WHERE b.user_id = $1`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Username, &b.Name, &b.Category, &b.TotalAmount, &b.Spent, &b.CreatedAt, &b.UpdatedAt)
	return b, translate(err)
}

func (r *budgetsRepo) List(ctx context.Context, s repo.Scope, p repo.Page) ([]models.Budget, int, error) {
	args, err := scoped(s)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM budgets WHERE user_id = $1`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count budgets: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		budgetSelect+` ORDER BY b.created_at DESC, b.id LIMIT $2 OFFSET $3`,
		append(args, p.Limit, p.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	out := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *budgetsRepo) Get(ctx context.Context, s repo.Scope, id string) (models.Budget, error) {
	args, err := scoped(s, id)
	if err != nil {
		return models.Budget{}, err
	}
	return scanBudget(r.pool.QueryRow(ctx, budgetSelect+` AND b.id = $2`, args...))
}

func (r *budgetsRepo) ExistsByKey(ctx context.Context, s repo.Scope, name, category, excludeID string) (bool, error) {
	args, err := scoped(s, name, category)
	if err != nil {
		return false, err
	}
	q := `SELECT EXISTS(SELECT 1 FROM budgets WHERE user_id = $1 AND name = $2 AND category = $3`
	if excludeID != "" {
		q += ` AND id <> $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("budget key lookup: %w", err)
	}
	return exists, nil
}

func (r *budgetsRepo) Create(ctx context.Context, s repo.Scope, b models.Budget) (models.Budget, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	args, err := scoped(s, b.ID, b.Name, b.Category, b.TotalAmount)
	if err != nil {
		return models.Budget{}, err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO budgets(user_id, id, name, category, total_amount) VALUES($1,$2,$3,$4,$5)`,
		args...,
	)
	if err != nil {
		return models.Budget{}, fmt.Errorf("insert budget: %w", translate(err))
	}
	return r.Get(ctx, s, b.ID)
}

func (r *budgetsRepo) Update(ctx context.Context, s repo.Scope, b models.Budget) (models.Budget, error) {
	args, err := scoped(s, b.ID, b.Name, b.Category, b.TotalAmount)
	if err != nil {
		return models.Budget{}, err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE budgets
		    SET name = $3, category = $4, total_amount = $5, updated_at = now()
		  WHERE user_id = $1 AND id = $2`,
		args...,
	)
	if err != nil {
		return models.Budget{}, fmt.Errorf("update budget: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return models.Budget{}, repo.ErrNotFound
	}
	return r.Get(ctx, s, b.ID)
}

// Delete relies on ON DELETE CASCADE to remove the budget's expenses.
func (r *budgetsRepo) Delete(ctx context.Context, s repo.Scope, id string) error {
	args, err := scoped(s, id)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND id = $2`, args...)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

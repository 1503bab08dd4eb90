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

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, email, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, translate(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, email, password_hash, role) VALUES($1,$2,$3,$4,$5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (r *usersRepo) List(ctx context.Context, p repo.Page) ([]models.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

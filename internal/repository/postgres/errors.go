package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return repo.ErrDuplicate
		case codeForeignKeyViolation:
			return repo.ErrNotFound
		}
	}
	return err
}

// scoped validates s and returns it as the first positional argument, so
// every owned query can use "user_id = $1".
func scoped(s repo.Scope, args ...any) ([]any, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	return append([]any{s.UserID}, args...), nil
}

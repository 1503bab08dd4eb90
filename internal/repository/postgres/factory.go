package postgres

import (
	repo "github.com/baharkarakas/budget-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:     &usersRepo{pool},
		Budgets:   &budgetsRepo{pool},
		Expenses:  &expensesRepo{pool},
		Reports:   &reportsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}

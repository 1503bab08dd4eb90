package postgres

import (
	"context"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs(id, user_id, entity_type, entity_id, action, details) VALUES($1,$2,$3,$4,$5,$6)`,
		l.ID, l.UserID, l.EntityType, l.EntityID, l.Action, l.Details,
	)
	return err
}

package services

import (
	"context"
	"log/slog"

	"github.com/baharkarakas/budget-backend/internal/metrics"
	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

// auditor records successful mutations. A failed audit write is logged and
// never fails the caller's request.
type auditor struct {
	logs repo.AuditLogs
	log  *slog.Logger
}

func newAuditor(logs repo.AuditLogs, log *slog.Logger) auditor {
	if log == nil {
		log = slog.Default()
	}
	return auditor{logs: logs, log: log}
}

func (a auditor) record(ctx context.Context, s repo.Scope, entity, id, action string, details map[string]any) {
	metrics.RecordsWritten.WithLabelValues(entity, action).Inc()
	if a.logs == nil {
		return
	}
	err := a.logs.Create(ctx, models.AuditLog{
		UserID:     s.UserID,
		EntityType: entity,
		EntityID:   id,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		a.log.Warn("audit write failed", "entity", entity, "id", id, "action", action, "err", err)
	}
}

func (a auditor) failed(entity string) {
	metrics.RecordsFailed.WithLabelValues(entity).Inc()
}

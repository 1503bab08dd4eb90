package memory

import (
	"context"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"
)

type auditLogsRepo struct{ s *Store }

func (r auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = r.s.now()
	r.s.audit = append(r.s.audit, l)
	return nil
}

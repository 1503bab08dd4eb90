package models

import "time"

const (
	EntityBudget  = "budget"
	EntityExpense = "expense"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type AuditLog struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

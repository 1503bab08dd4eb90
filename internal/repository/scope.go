package repository

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrNoScope   = errors.New("missing owner scope")
)

// Scope restricts every budget, expense and report query to one owner. Stores
// must derive their owner predicate from it and nothing else.
type Scope struct {
	UserID string
}

func ForUser(userID string) Scope { return Scope{UserID: userID} }

// Check reports ErrNoScope for an empty or malformed owner id.
func (s Scope) Check() error {
	if s.UserID == "" {
		return ErrNoScope
	}
	if _, err := uuid.Parse(s.UserID); err != nil {
		return ErrNoScope
	}
	return nil
}

// ValidID reports whether id can name a stored record. Malformed ids are
// treated as missing records by callers.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/baharkarakas/budget-backend/internal/api/validate"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

const (
	maxNameLen        = 100
	maxCategoryLen    = 100
	maxDescriptionLen = 200
	dateLayout        = "2006-01-02"
)

// Clock yields "now" in the configured time zone. Calendar rules (future
// dates, current month/week) are evaluated against it.
type Clock struct {
	Now func() time.Time
	Loc *time.Location
}

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Loc: loc}
}

func (c Clock) Today() civil.Date {
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(c.Now().In(loc))
}

// lookupID treats malformed ids like missing rows so callers never learn
// more than "not found".
func lookupID(id string) error {
	if !repo.ValidID(id) {
		return repo.ErrNotFound
	}
	return nil
}

func parseDate(field, s string) (civil.Date, *validate.ErrField) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, &validate.ErrField{Field: field, Msg: "date has wrong format, use YYYY-MM-DD"}
	}
	return d, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validate.Errs
	if errors.As(err, &verrs) || errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// NonField is the field name for errors that concern the record as a whole.
const NonField = "non_field_errors"

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Append collects the non-nil results of the helpers below.
func (e Errs) Append(fs ...*ErrField) Errs {
	for _, f := range fs {
		if f != nil {
			e = append(e, *f)
		}
	}
	return e
}

// Err returns nil when nothing was collected.
func (e Errs) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func Field(field, msg string) Errs { return Errs{{Field: field, Msg: msg}} }

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinLen(field, value string, n int) *ErrField {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(n) + " characters"}
	}
	return nil
}

func MaxLen(field, value string, n int) *ErrField {
	if utf8.RuneCountInString(value) > n {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(n) + " characters"}
	}
	return nil
}

// MaxBytes limits the encoded length, for values hashed with bcrypt.
func MaxBytes(field, value string, n int) *ErrField {
	if len(value) > n {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(n) + " bytes"}
	}
	return nil
}

// Money checks a positive amount that fits NUMERIC(10,2).
func Money(field string, v decimal.Decimal, max decimal.Decimal) *ErrField {
	switch {
	case v.Sign() <= 0:
		return &ErrField{Field: field, Msg: "must be greater than zero"}
	case !v.Equal(v.Round(2)):
		return &ErrField{Field: field, Msg: "must have at most 2 decimal places"}
	case v.GreaterThan(max):
		return &ErrField{Field: field, Msg: "must be at most " + max.StringFixed(2)}
	}
	return nil
}

func NotAfter(field string, d, limit civil.Date) *ErrField {
	if d.After(limit) {
		return &ErrField{Field: field, Msg: "cannot be in the future"}
	}
	return nil
}

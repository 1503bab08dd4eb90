package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID             string
	BudgetID       string
	BudgetName     string
	BudgetCategory string
	UserID         string
	Username       string
	Description    string
	Amount         decimal.Decimal
	Date           civil.Date
	Category       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

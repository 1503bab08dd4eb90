package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID          string
	UserID      string
	Username    string
	Name        string
	Category    string
	TotalAmount decimal.Decimal
	// Spent is the sum of all expense amounts linked to the budget. It is
	// computed by the store on read and never persisted.
	Spent     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Budget) RemainingAmount() decimal.Decimal { return b.TotalAmount.Sub(b.Spent) }

func (b Budget) SpentPercentage() float64 { return SpentPercentage(b.Spent, b.TotalAmount) }

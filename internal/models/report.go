package models

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Interval is a closed range of calendar dates.
type Interval struct {
	Start civil.Date
	End   civil.Date
}

func (i Interval) String() string { return fmt.Sprintf("%s to %s", i.Start, i.End) }

func (i Interval) Contains(d civil.Date) bool { return !d.Before(i.Start) && !d.After(i.End) }

// Store-side aggregates.

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type DailyTotal struct {
	Date  civil.Date
	Total decimal.Decimal
}

type BudgetActual struct {
	BudgetID string
	Name     string
	Category string
	Budgeted decimal.Decimal
	Actual   decimal.Decimal
}

// Report payloads. Amounts are floats on the wire.

type ReportSummary struct {
	TotalBudget     float64 `json:"total_budget"`
	TotalExpenses   float64 `json:"total_expenses"`
	RemainingBudget float64 `json:"remaining_budget"`
	SpentPercentage float64 `json:"spent_percentage"`
}

func NewReportSummary(totalBudget, totalExpenses decimal.Decimal) ReportSummary {
	return ReportSummary{
		TotalBudget:     totalBudget.InexactFloat64(),
		TotalExpenses:   totalExpenses.InexactFloat64(),
		RemainingBudget: totalBudget.Sub(totalExpenses).InexactFloat64(),
		SpentPercentage: SpentPercentage(totalExpenses, totalBudget),
	}
}

type CategoryEntry struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type DailyEntry struct {
	Date  civil.Date `json:"date"`
	Total float64    `json:"total"`
}

type BudgetVsActual struct {
	BudgetID        string  `json:"budget_id"`
	BudgetName      string  `json:"budget_name"`
	Category        string  `json:"category"`
	BudgetedAmount  float64 `json:"budgeted_amount"`
	ActualAmount    float64 `json:"actual_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	SpentPercentage float64 `json:"spent_percentage"`
}

func NewBudgetVsActual(a BudgetActual) BudgetVsActual {
	return BudgetVsActual{
		BudgetID:        a.BudgetID,
		BudgetName:      a.Name,
		Category:        a.Category,
		BudgetedAmount:  a.Budgeted.InexactFloat64(),
		ActualAmount:    a.Actual.InexactFloat64(),
		RemainingAmount: a.Budgeted.Sub(a.Actual).InexactFloat64(),
		SpentPercentage: SpentPercentage(a.Actual, a.Budgeted),
	}
}

type MonthlyReport struct {
	Month              int              `json:"month"`
	Year               int              `json:"year"`
	Period             string           `json:"period"`
	Summary            ReportSummary    `json:"summary"`
	ExpensesByCategory []CategoryEntry  `json:"expenses_by_category"`
	BudgetVsActual     []BudgetVsActual `json:"budget_vs_actual"`
}

type WeeklyReport struct {
	WeekStart          civil.Date      `json:"week_start"`
	WeekEnd            civil.Date      `json:"week_end"`
	Period             string          `json:"period"`
	Summary            ReportSummary   `json:"summary"`
	DailyExpenses      []DailyEntry    `json:"daily_expenses"`
	ExpensesByCategory []CategoryEntry `json:"expenses_by_category"`
}

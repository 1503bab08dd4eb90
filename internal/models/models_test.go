package models

import (
	"encoding/json"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBudgetDerivedAmounts(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		spent     string
		remaining string
		percent   float64
	}{
		{"no expenses", "1000.00", "0", "1000.00", 0},
		{"quarter spent", "1000.00", "250.00", "750.00", 25},
		{"overspent", "100.00", "150.00", "-50.00", 150},
		{"zero budget", "0", "40.00", "-40.00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{TotalAmount: dec(tt.total), Spent: dec(tt.spent)}
			if got := FormatMoney(b.RemainingAmount()); got != tt.remaining {
				t.Errorf("remaining = %s, want %s", got, tt.remaining)
			}
			if got := b.SpentPercentage(); got != tt.percent {
				t.Errorf("spent percentage = %v, want %v", got, tt.percent)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(dec("500")); got != "500.00" {
		t.Fatalf("got %s", got)
	}
	if got := FormatMoney(dec("75.5")); got != "75.50" {
		t.Fatalf("got %s", got)
	}
}

func TestIntervalStringAndContains(t *testing.T) {
	iv := Interval{Start: civil.Date{Year: 2025, Month: 1, Day: 1}, End: civil.Date{Year: 2025, Month: 1, Day: 31}}
	if iv.String() != "2025-01-01 to 2025-01-31" {
		t.Fatalf("period = %q", iv.String())
	}
	for _, d := range []civil.Date{iv.Start, iv.End, {Year: 2025, Month: 1, Day: 15}} {
		if !iv.Contains(d) {
			t.Errorf("%s should be inside", d)
		}
	}
	for _, d := range []civil.Date{{Year: 2024, Month: 12, Day: 31}, {Year: 2025, Month: 2, Day: 1}} {
		if iv.Contains(d) {
			t.Errorf("%s should be outside", d)
		}
	}
}

func TestReportSummary(t *testing.T) {
	s := NewReportSummary(dec("500.00"), dec("225.00"))
	want := ReportSummary{TotalBudget: 500, TotalExpenses: 225, RemainingBudget: 275, SpentPercentage: 45}
	if s != want {
		t.Fatalf("summary = %+v, want %+v", s, want)
	}
	if z := NewReportSummary(decimal.Zero, dec("10")); z.SpentPercentage != 0 || z.RemainingBudget != -10 {
		t.Fatalf("zero budget summary = %+v", z)
	}
}

func TestDailyEntryDateJSON(t *testing.T) {
	b, err := json.Marshal(DailyEntry{Date: civil.Date{Year: 2025, Month: 3, Day: 7}, Total: 12.5})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"date":"2025-03-07"`) {
		t.Fatalf("json = %s", b)
	}
}

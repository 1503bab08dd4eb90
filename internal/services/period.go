package services

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/baharkarakas/budget-backend/internal/models"
)

// MonthInterval is the first to the last calendar day of the month.
func MonthInterval(year int, month time.Month) models.Interval {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return models.Interval{Start: civil.DateOf(first), End: civil.DateOf(last)}
}

// WeekInterval is the Monday to Sunday week that lies weeksAgo weeks before
// the week containing today.
func WeekInterval(today civil.Date, weeksAgo int) models.Interval {
	sinceMonday := (int(today.In(time.UTC).Weekday()) + 6) % 7
	start := today.AddDays(-(sinceMonday + 7*weeksAgo))
	return models.Interval{Start: start, End: start.AddDays(6)}
}

// monthYear reads the month and year parameters. If either is missing,
// malformed or out of range, both fall back to today's.
func monthYear(monthRaw, yearRaw string, today civil.Date) (time.Month, int) {
	month, year := int(today.Month), today.Year
	if m, ok := atoi(monthRaw); ok {
		month = m
	}
	if y, ok := atoi(yearRaw); ok {
		year = y
	}
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return today.Month, today.Year
	}
	return time.Month(month), year
}

// maxWeeksAgo keeps week intervals within about a century of today.
const maxWeeksAgo = 5200

func weeksAgo(raw string) int {
	n, ok := atoi(raw)
	if !ok || n < 0 || n > maxWeeksAgo {
		return 0
	}
	return n
}

func atoi(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

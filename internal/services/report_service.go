package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/budget-backend/internal/metrics"
	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type ReportService struct {
	r     repo.Reports
	clock Clock
}

func NewReportService(r repo.Reports, clock Clock) *ReportService {
	return &ReportService{r: r, clock: clock}
}

// Monthly aggregates the caller's expenses for one calendar month against all
// of their budgets.
func (s *ReportService) Monthly(ctx context.Context, sc repo.Scope, monthRaw, yearRaw string) (models.MonthlyReport, error) {
	if err := sc.Check(); err != nil {
		return models.MonthlyReport{}, err
	}
	month, year := monthYear(monthRaw, yearRaw, s.clock.Today())
	iv := MonthInterval(year, month)

	var (
		spent, budgeted decimal.Decimal
		byCategory      []models.CategoryTotal
		actuals         []models.BudgetActual
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { spent, err = s.r.SumExpenses(gctx, sc, iv); return })
	g.Go(func() (err error) { budgeted, err = s.r.SumBudgets(gctx, sc); return })
	g.Go(func() (err error) { byCategory, err = s.r.ExpensesByCategory(gctx, sc, iv); return })
	g.Go(func() (err error) { actuals, err = s.r.BudgetActuals(gctx, sc, iv); return })
	if err := g.Wait(); err != nil {
		return models.MonthlyReport{}, wrap("monthly report", err)
	}

	rep := models.MonthlyReport{
		Month:              int(month),
		Year:               year,
		Period:             iv.String(),
		Summary:            models.NewReportSummary(budgeted, spent),
		ExpensesByCategory: categoryEntries(byCategory),
		BudgetVsActual:     make([]models.BudgetVsActual, 0, len(actuals)),
	}
	for _, a := range actuals {
		rep.BudgetVsActual = append(rep.BudgetVsActual, models.NewBudgetVsActual(a))
	}
	metrics.ReportsGenerated.WithLabelValues("monthly").Inc()
	return rep, nil
}

// Weekly aggregates one Monday to Sunday week. weeks_ago=0 is the current week.
func (s *ReportService) Weekly(ctx context.Context, sc repo.Scope, weeksAgoRaw string) (models.WeeklyReport, error) {
	if err := sc.Check(); err != nil {
		return models.WeeklyReport{}, err
	}
	iv := WeekInterval(s.clock.Today(), weeksAgo(weeksAgoRaw))

	var (
		spent, budgeted decimal.Decimal
		byCategory      []models.CategoryTotal
		byDay           []models.DailyTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { spent, err = s.r.SumExpenses(gctx, sc, iv); return })
	g.Go(func() (err error) { budgeted, err = s.r.SumBudgets(gctx, sc); return })
	g.Go(func() (err error) { byCategory, err = s.r.ExpensesByCategory(gctx, sc, iv); return })
	g.Go(func() (err error) { byDay, err = s.r.ExpensesByDay(gctx, sc, iv); return })
	if err := g.Wait(); err != nil {
		return models.WeeklyReport{}, wrap("weekly report", err)
	}

	rep := models.WeeklyReport{
		WeekStart:          iv.Start,
		WeekEnd:            iv.End,
		Period:             iv.String(),
		Summary:            models.NewReportSummary(budgeted, spent),
		DailyExpenses:      make([]models.DailyEntry, 0, len(byDay)),
		ExpensesByCategory: categoryEntries(byCategory),
	}
	for _, d := range byDay {
		rep.DailyExpenses = append(rep.DailyExpenses, models.DailyEntry{Date: d.Date, Total: d.Total.InexactFloat64()})
	}
	metrics.ReportsGenerated.WithLabelValues("weekly").Inc()
	return rep, nil
}

func categoryEntries(in []models.CategoryTotal) []models.CategoryEntry {
	out := make([]models.CategoryEntry, 0, len(in))
	for _, c := range in {
		out = append(out, models.CategoryEntry{Category: c.Category, Total: c.Total.InexactFloat64()})
	}
	return out
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/shopspring/decimal"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

// tickingClock returns strictly increasing timestamps.
func tickingClock() func() time.Time {
	t := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) civil.Date { return civil.Date{Year: y, Month: m, Day: d} }

func setup(t *testing.T) (repo.Repositories, repo.Scope, repo.Scope) {
	t.Helper()
	repos := New(WithClock(tickingClock())).Repositories()
	ctx := context.Background()
	alice, err := repos.Users.Create(ctx, models.User{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	bob, err := repos.Users.Create(ctx, models.User{Username: "bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	return repos, repo.ForUser(alice.ID), repo.ForUser(bob.ID)
}

func TestUsersUniqueness(t *testing.T) {
	repos, _, _ := setup(t)
	_, err := repos.Users.Create(context.Background(), models.User{Username: "carol", Email: "ALICE@example.com"})
	if !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("err = %v, want duplicate", err)
	}
	u, err := repos.Users.GetByEmail(context.Background(), "Alice@Example.com")
	if err != nil || u.Username != "alice" {
		t.Fatalf("lookup by email: %+v %v", u, err)
	}
}

func TestBudgetsScopedAndDerived(t *testing.T) {
	repos, alice, bob := setup(t)
	ctx := context.Background()

	groceries, err := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Groceries", Category: "Food", TotalAmount: dec("1000.00")})
	if err != nil {
		t.Fatal(err)
	}
	if groceries.Username != "alice" || groceries.UserID != alice.UserID {
		t.Fatalf("owner not set: %+v", groceries)
	}
	if _, err := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Groceries", Category: "Food", TotalAmount: dec("1")}); !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("duplicate key err = %v", err)
	}
	// The same key is free for another owner.
	if _, err := repos.Budgets.Create(ctx, bob, models.Budget{Name: "Groceries", Category: "Food", TotalAmount: dec("1")}); err != nil {
		t.Fatalf("other owner: %v", err)
	}

	if _, err := repos.Expenses.Create(ctx, alice, models.Expense{BudgetID: groceries.ID, Description: "shop", Amount: dec("250.00"), Date: day(2025, 6, 1), Category: "Food"}); err != nil {
		t.Fatal(err)
	}
	got, err := repos.Budgets.Get(ctx, alice, groceries.ID)
	if err != nil {
		t.Fatal(err)
	}
	if models.FormatMoney(got.RemainingAmount()) != "750.00" || got.SpentPercentage() != 25 {
		t.Fatalf("derived = %s / %v", got.RemainingAmount(), got.SpentPercentage())
	}

	if _, err := repos.Budgets.Get(ctx, bob, groceries.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("cross-owner get err = %v", err)
	}
	if err := repos.Budgets.Delete(ctx, bob, groceries.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("cross-owner delete err = %v", err)
	}
	list, total, err := repos.Budgets.List(ctx, bob, repo.Page{Limit: 10})
	if err != nil || total != 1 || len(list) != 1 || list[0].Spent.Sign() != 0 {
		t.Fatalf("bob list = %+v total=%d err=%v", list, total, err)
	}
}

func TestBudgetListNewestFirst(t *testing.T) {
	repos, alice, _ := setup(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := repos.Budgets.Create(ctx, alice, models.Budget{Name: name, Category: "x", TotalAmount: dec("1")}); err != nil {
			t.Fatal(err)
		}
	}
	list, total, err := repos.Budgets.List(ctx, alice, repo.Page{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(list) != 2 || list[0].Name != "c" || list[1].Name != "b" {
		t.Fatalf("list = %+v total=%d", list, total)
	}
	rest, _, _ := repos.Budgets.List(ctx, alice, repo.Page{Limit: 2, Offset: 2})
	if len(rest) != 1 || rest[0].Name != "a" {
		t.Fatalf("second page = %+v", rest)
	}
}

func TestDeleteBudgetCascades(t *testing.T) {
	repos, alice, _ := setup(t)
	ctx := context.Background()
	b, _ := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Trip", Category: "Travel", TotalAmount: dec("300")})
	e, err := repos.Expenses.Create(ctx, alice, models.Expense{BudgetID: b.ID, Description: "train", Amount: dec("40"), Date: day(2025, 5, 2), Category: "Travel"})
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.Budgets.Delete(ctx, alice, b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Expenses.Get(ctx, alice, e.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expense survived cascade: %v", err)
	}
}

func TestExpenseOwnerComesFromBudget(t *testing.T) {
	repos, alice, bob := setup(t)
	ctx := context.Background()
	b, _ := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Home", Category: "House", TotalAmount: dec("100")})

	e, err := repos.Expenses.Create(ctx, alice, models.Expense{BudgetID: b.ID, UserID: bob.UserID, Description: "lamp", Amount: dec("10"), Date: day(2025, 5, 1), Category: "House"})
	if err != nil {
		t.Fatal(err)
	}
	if e.UserID != alice.UserID || e.BudgetName != "Home" || e.Username != "alice" {
		t.Fatalf("expense = %+v", e)
	}
	if _, err := repos.Expenses.Create(ctx, bob, models.Expense{BudgetID: b.ID, Description: "x", Amount: dec("1"), Date: day(2025, 5, 1), Category: "x"}); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign budget err = %v", err)
	}
}

func TestExpenseFiltersAndOrdering(t *testing.T) {
	repos, alice, _ := setup(t)
	ctx := context.Background()
	b, _ := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Life", Category: "Misc", TotalAmount: dec("1000")})
	add := func(desc, cat, amount string, d civil.Date) {
		t.Helper()
		if _, err := repos.Expenses.Create(ctx, alice, models.Expense{BudgetID: b.ID, Description: desc, Amount: dec(amount), Date: d, Category: cat}); err != nil {
			t.Fatal(err)
		}
	}
	add("Grocery shopping", "Food", "50", day(2025, 5, 3))
	add("Bus ticket", "Transport", "3", day(2025, 5, 5))
	add("Dinner", "Food", "80", day(2025, 5, 1))

	tests := []struct {
		name  string
		f     repo.ExpenseFilter
		order []string
	}{
		{"default newest date first", repo.ExpenseFilter{}, []string{"Bus ticket", "Grocery shopping", "Dinner"}},
		{"category", repo.ExpenseFilter{Category: "Food"}, []string{"Grocery shopping", "Dinner"}},
		{"search description", repo.ExpenseFilter{Search: "GROCERY"}, []string{"Grocery shopping"}},
		{"search category", repo.ExpenseFilter{Search: "trans"}, []string{"Bus ticket"}},
		{"amount desc", repo.ExpenseFilter{Ordering: []repo.OrderField{{Field: "amount", Desc: true}}}, []string{"Dinner", "Grocery shopping", "Bus ticket"}},
		{"date exact", repo.ExpenseFilter{Date: ptr(day(2025, 5, 1))}, []string{"Dinner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repos.Expenses.List(ctx, alice, tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if total != len(tt.order) {
				t.Fatalf("total = %d, want %d", total, len(tt.order))
			}
			for i, want := range tt.order {
				if list[i].Description != want {
					t.Fatalf("position %d = %q, want %q", i, list[i].Description, want)
				}
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestReportAggregates(t *testing.T) {
	repos, alice, bob := setup(t)
	ctx := context.Background()
	food, _ := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Food", Category: "Food", TotalAmount: dec("500")})
	travel, _ := repos.Budgets.Create(ctx, alice, models.Budget{Name: "Travel", Category: "Travel", TotalAmount: dec("200")})
	bobs, _ := repos.Budgets.Create(ctx, bob, models.Budget{Name: "Food", Category: "Food", TotalAmount: dec("999")})

	add := func(sc repo.Scope, budget string, cat, amount string, d civil.Date) {
		t.Helper()
		if _, err := repos.Expenses.Create(ctx, sc, models.Expense{BudgetID: budget, Description: "x", Amount: dec(amount), Date: d, Category: cat}); err != nil {
			t.Fatal(err)
		}
	}
	add(alice, food.ID, "Food", "100", day(2025, 5, 10))
	add(alice, food.ID, "Food", "50", day(2025, 5, 10))
	add(alice, travel.ID, "Travel", "20", day(2025, 5, 12))
	add(alice, food.ID, "Food", "70", day(2025, 4, 30))
	add(bob, bobs.ID, "Food", "1", day(2025, 5, 10))

	may := models.Interval{Start: day(2025, 5, 1), End: day(2025, 5, 31)}
	sum, _ := repos.Reports.SumExpenses(ctx, alice, may)
	if !sum.Equal(dec("170")) {
		t.Fatalf("sum = %s", sum)
	}
	budgets, _ := repos.Reports.SumBudgets(ctx, alice)
	if !budgets.Equal(dec("700")) {
		t.Fatalf("budget sum = %s", budgets)
	}
	cats, _ := repos.Reports.ExpensesByCategory(ctx, alice, may)
	if len(cats) != 2 || cats[0].Category != "Food" || !cats[0].Total.Equal(dec("150")) {
		t.Fatalf("categories = %+v", cats)
	}
	days, _ := repos.Reports.ExpensesByDay(ctx, alice, may)
	if len(days) != 2 || days[0].Date != day(2025, 5, 10) || !days[0].Total.Equal(dec("150")) {
		t.Fatalf("days = %+v", days)
	}
	actuals, _ := repos.Reports.BudgetActuals(ctx, alice, may)
	if len(actuals) != 2 || actuals[0].Name != "Travel" || !actuals[1].Actual.Equal(dec("150")) {
		t.Fatalf("actuals = %+v", actuals)
	}
}

func TestEmptyScopeRejected(t *testing.T) {
	repos := New().Repositories()
	if _, _, err := repos.Budgets.List(context.Background(), repo.Scope{}, repo.Page{}); !errors.Is(err, repo.ErrNoScope) {
		t.Fatalf("err = %v", err)
	}
}

func TestPaginateBounds(t *testing.T) {
	items := []int{1, 2, 3}
	tests := []struct {
		name string
		page repo.Page
		want int
	}{
		{"first", repo.Page{Limit: 2}, 2},
		{"tail", repo.Page{Limit: 2, Offset: 2}, 1},
		{"past end", repo.Page{Limit: 2, Offset: 9}, 0},
		{"negative offset", repo.Page{Limit: 2, Offset: -4}, 2},
		{"no limit", repo.Page{}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := paginate(items, tc.page); len(got) != tc.want {
				t.Fatalf("len = %d, want %d", len(got), tc.want)
			}
		})
	}
}

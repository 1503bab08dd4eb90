package postgres

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

func TestBuildExpenseWhere(t *testing.T) {
	d := civil.Date{Year: 2025, Month: 5, Day: 4}
	f := repo.ExpenseFilter{Category: "Food", Date: &d, BudgetID: "b-1", Search: "50%_off"}

	where, args := buildExpenseWhere(f, []any{"owner"})

	want := " WHERE e.user_id = $1 AND e.category = $2 AND e.date = $3 AND e.budget_id = $4" +
		" AND (e.description ILIKE $5 OR e.category ILIKE $5)"
	if where != want {
		t.Fatalf("where =\n%s\nwant\n%s", where, want)
	}
	if len(args) != 5 {
		t.Fatalf("args = %v", args)
	}
	if args[4] != `%50\%\_off%` {
		t.Fatalf("search pattern = %v", args[4])
	}
}

func TestBuildExpenseWhereOwnerOnly(t *testing.T) {
	where, args := buildExpenseWhere(repo.ExpenseFilter{}, []any{"owner"})
	if where != " WHERE e.user_id = $1" || len(args) != 1 {
		t.Fatalf("where=%q args=%v", where, args)
	}
}

func TestBuildExpenseOrder(t *testing.T) {
	tests := []struct {
		name   string
		fields []repo.OrderField
		want   string
	}{
		{"default", nil, " ORDER BY e.date DESC, e.created_at DESC, e.id"},
		{"amount asc", []repo.OrderField{{Field: "amount"}}, " ORDER BY e.amount, e.id"},
		{"unknown skipped", []repo.OrderField{{Field: "password"}, {Field: "created_at", Desc: true}}, " ORDER BY e.created_at DESC, e.id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildExpenseOrder(tt.fields); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{pgx.ErrNoRows, repo.ErrNotFound},
		{fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: codeUniqueViolation}), repo.ErrDuplicate},
		{&pgconn.PgError{Code: codeForeignKeyViolation}, repo.ErrNotFound},
	}
	for _, tt := range tests {
		if got := translate(tt.in); !errors.Is(got, tt.want) {
			t.Errorf("translate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	other := errors.New("boom")
	if translate(other) != other {
		t.Error("unknown errors must pass through")
	}
	if translate(nil) != nil {
		t.Error("nil must stay nil")
	}
}

func TestScopedRejectsMissingOwner(t *testing.T) {
	if _, err := scoped(repo.Scope{}, 1); !errors.Is(err, repo.ErrNoScope) {
		t.Fatalf("err = %v", err)
	}
	args, err := scoped(repo.ForUser("7c9e6679-7425-40de-944b-e07fc1f90ae7"), "x")
	if err != nil || len(args) != 2 || args[1] != "x" {
		t.Fatalf("args=%v err=%v", args, err)
	}
}

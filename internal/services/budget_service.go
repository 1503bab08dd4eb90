package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/budget-backend/internal/api/validate"
	"github.com/baharkarakas/budget-backend/internal/models"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

const duplicateBudgetMsg = "A budget with this name and category already exists for this user."

// BudgetFields carries client input. A nil field was not sent.
type BudgetFields struct {
	Name        *string
	Category    *string
	TotalAmount *decimal.Decimal
}

type BudgetService struct {
	r     repo.Budgets
	audit auditor
}

func NewBudgetService(r repo.Budgets, logs repo.AuditLogs, log *slog.Logger) *BudgetService {
	return &BudgetService{r: r, audit: newAuditor(logs, log)}
}

func (s *BudgetService) List(ctx context.Context, sc repo.Scope, p repo.Page) ([]models.Budget, int, error) {
	out, n, err := s.r.List(ctx, sc, p)
	return out, n, wrap("list budgets", err)
}

func (s *BudgetService) Get(ctx context.Context, sc repo.Scope, id string) (models.Budget, error) {
	if err := lookupID(id); err != nil {
		return models.Budget{}, err
	}
	b, err := s.r.Get(ctx, sc, id)
	return b, wrap("get budget", err)
}

func (s *BudgetService) Create(ctx context.Context, sc repo.Scope, in BudgetFields) (models.Budget, error) {
	b, err := s.build(models.Budget{}, in, true)
	if err == nil {
		err = s.checkUnique(ctx, sc, b)
	}
	if err == nil {
		b, err = s.r.Create(ctx, sc, b)
	}
	if err != nil {
		s.audit.failed(models.EntityBudget)
		return models.Budget{}, s.mapErr("create budget", err)
	}
	s.audit.record(ctx, sc, models.EntityBudget, b.ID, models.ActionCreated, budgetDetails(b))
	return b, nil
}

// Replace is a full update: every field must be present.
func (s *BudgetService) Replace(ctx context.Context, sc repo.Scope, id string, in BudgetFields) (models.Budget, error) {
	return s.update(ctx, sc, id, in, true)
}

// Patch merges the provided fields onto the stored budget.
func (s *BudgetService) Patch(ctx context.Context, sc repo.Scope, id string, in BudgetFields) (models.Budget, error) {
	return s.update(ctx, sc, id, in, false)
}

func (s *BudgetService) update(ctx context.Context, sc repo.Scope, id string, in BudgetFields, full bool) (models.Budget, error) {
	current, err := s.Get(ctx, sc, id)
	if err != nil {
		return models.Budget{}, err
	}
	b, err := s.build(current, in, full)
	if err == nil {
		err = s.checkUnique(ctx, sc, b)
	}
	if err == nil {
		b, err = s.r.Update(ctx, sc, b)
	}
	if err != nil {
		s.audit.failed(models.EntityBudget)
		return models.Budget{}, s.mapErr("update budget", err)
	}
	s.audit.record(ctx, sc, models.EntityBudget, b.ID, models.ActionUpdated, budgetDetails(b))
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, sc repo.Scope, id string) error {
	if err := lookupID(id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, sc, id); err != nil {
		s.audit.failed(models.EntityBudget)
		return wrap("delete budget", err)
	}
	s.audit.record(ctx, sc, models.EntityBudget, id, models.ActionDeleted, nil)
	return nil
}

// build applies in onto base. With full set, absent fields are errors.
func (s *BudgetService) build(base models.Budget, in BudgetFields, full bool) (models.Budget, error) {
	var errs validate.Errs
	b := base
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
		errs = errs.Append(validate.Required("name", b.Name), validate.MaxLen("name", b.Name, maxNameLen))
	} else if full {
		errs = errs.Append(validate.Required("name", ""))
	}
	if in.Category != nil {
		b.Category = strings.TrimSpace(*in.Category)
		errs = errs.Append(validate.Required("category", b.Category), validate.MaxLen("category", b.Category, maxCategoryLen))
	} else if full {
		errs = errs.Append(validate.Required("category", ""))
	}
	if in.TotalAmount != nil {
		b.TotalAmount = *in.TotalAmount
		errs = errs.Append(validate.Money("total_amount", b.TotalAmount, models.MaxMoney))
	} else if full {
		errs = errs.Append(validate.Required("total_amount", ""))
	}
	return b, errs.Err()
}

func (s *BudgetService) checkUnique(ctx context.Context, sc repo.Scope, b models.Budget) error {
	taken, err := s.r.ExistsByKey(ctx, sc, b.Name, b.Category, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return repo.ErrDuplicate
	}
	return nil
}

// mapErr turns a lost uniqueness race into the same error the pre-check gives.
func (s *BudgetService) mapErr(op string, err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return validate.Field(validate.NonField, duplicateBudgetMsg)
	}
	return wrap(op, err)
}

func budgetDetails(b models.Budget) map[string]any {
	return map[string]any{
		"name":         b.Name,
		"category":     b.Category,
		"total_amount": models.FormatMoney(b.TotalAmount),
	}
}

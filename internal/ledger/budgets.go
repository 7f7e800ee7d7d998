package ledger

import (
	"context"
	"fmt"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
)

func validateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return appErrors.Invalid("Alert threshold must be between 0 and 100, got %d.", threshold)
	}
	return nil
}

func (t *Tracker) ListBudgets(ctx context.Context, ownerID int64, month string) ([]Budget, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "list budgets", []Budget{}, func(st Storage) ([]Budget, error) {
		return st.ListBudgets(ctx, ownerID, month)
	})
}

func (t *Tracker) CreateBudget(ctx context.Context, ownerID int64, req NewBudget) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return 0, err
	}
	if err := ValidateMonth(req.Month); err != nil {
		return 0, err
	}
	threshold := DEFAULT_ALERT_THRESHOLD
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}
	if err := validateThreshold(threshold); err != nil {
		return 0, err
	}
	if req.CategoryID != nil {
		if err := validateID(*req.CategoryID, "category"); err != nil {
			return 0, err
		}
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	if req.CategoryID != nil {
		if err := categoryOfKind(ctx, st, *req.CategoryID, KindExpense); err != nil {
			return 0, err
		}
	}

	now := t.now().In(t.loc)
	budget := Budget{
		OwnerID:        ownerID,
		CategoryID:     req.CategoryID,
		Amount:         amount,
		Month:          req.Month,
		AlertThreshold: threshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := st.SaveBudget(ctx, budget)
	if err != nil {
		return 0, fmt.Errorf("failed to save budget: %w", err)
	}
	t.publish(ctx, Change{Entity: "budget", Action: "create", OwnerID: ownerID, ID: id, Month: req.Month})
	return id, nil
}

func (t *Tracker) UpdateBudget(ctx context.Context, ownerID int64, id int64, changes BudgetChanges) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "budget"); err != nil {
		return 0, err
	}

	patch := BudgetPatch{AlertThreshold: changes.AlertThreshold}
	if changes.Amount != nil {
		amount, err := ToMinorUnits(*changes.Amount)
		if err != nil {
			return 0, err
		}
		patch.Amount = &amount
	}
	if patch.AlertThreshold != nil {
		if err := validateThreshold(*patch.AlertThreshold); err != nil {
			return 0, err
		}
	}
	if patch.IsEmpty() {
		return 0, appErrors.Invalid("Nothing to update.")
	}
	patch.UpdatedAt = t.now().In(t.loc)

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	affected, err := st.UpdateBudget(ctx, ownerID, id, patch)
	if err != nil {
		return 0, fmt.Errorf("failed to update budget: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "budget", Action: "update", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

func (t *Tracker) DeleteBudget(ctx context.Context, ownerID int64, id int64) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "budget"); err != nil {
		return 0, err
	}
	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	affected, err := st.DeleteBudget(ctx, ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete budget: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "budget", Action: "delete", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

// GetBudgetStatus evaluates every budget of month against that month's
// expense spending.
func (t *Tracker) GetBudgetStatus(ctx context.Context, ownerID int64, month string) ([]BudgetStatus, error) {
	budgets, err := t.ListBudgets(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []BudgetStatus{}, nil
	}
	r, err := MonthRange(month, t.loc)
	if err != nil {
		return nil, err
	}
	spending, err := t.GetSpendingByCategory(ctx, ownerID, r)
	if err != nil {
		return nil, err
	}
	return EvaluateBudgets(budgets, spending), nil
}

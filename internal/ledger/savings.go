package ledger

import (
	"context"
	"fmt"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
)

func (t *Tracker) ListSavings(ctx context.Context, ownerID int64) ([]Saving, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "list savings", []Saving{}, func(st Storage) ([]Saving, error) {
		return st.ListSavings(ctx, ownerID)
	})
}

// GetSavingByMonth returns nil when nothing was saved that month.
func (t *Tracker) GetSavingByMonth(ctx context.Context, ownerID int64, month string) (*Saving, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "get saving by month", (*Saving)(nil), func(st Storage) (*Saving, error) {
		saving, err := st.GetSavingByMonth(ctx, ownerID, month)
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &saving, nil
	})
}

func (t *Tracker) CreateSaving(ctx context.Context, ownerID int64, req NewSaving) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return 0, err
	}
	if !req.AccountType.Valid() {
		return 0, appErrors.Invalid("Invalid account type '%s', expected cash or bank.", req.AccountType)
	}
	if err := ValidateMonth(req.Month); err != nil {
		return 0, err
	}
	if err := checkLength(req.Note, MAX_NOTE_LENGTH, "Note"); err != nil {
		return 0, err
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	now := t.now().In(t.loc)
	id, err := st.SaveSaving(ctx, Saving{
		OwnerID:     ownerID,
		Amount:      amount,
		AccountType: req.AccountType,
		Month:       req.Month,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save saving: %w", err)
	}
	t.publish(ctx, Change{Entity: "saving", Action: "create", OwnerID: ownerID, ID: id, Month: req.Month})
	return id, nil
}

func (t *Tracker) UpdateSaving(ctx context.Context, ownerID int64, id int64, changes SavingChanges) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "saving"); err != nil {
		return 0, err
	}

	patch := SavingPatch{AccountType: changes.AccountType, Note: changes.Note}
	if changes.Amount != nil {
		amount, err := ToMinorUnits(*changes.Amount)
		if err != nil {
			return 0, err
		}
		patch.Amount = &amount
	}
	if patch.AccountType != nil && !patch.AccountType.Valid() {
		return 0, appErrors.Invalid("Invalid account type '%s', expected cash or bank.", *patch.AccountType)
	}
	if patch.Note != nil {
		if err := checkLength(*patch.Note, MAX_NOTE_LENGTH, "Note"); err != nil {
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
	affected, err := st.UpdateSaving(ctx, ownerID, id, patch)
	if err != nil {
		return 0, fmt.Errorf("failed to update saving: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "saving", Action: "update", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

func (t *Tracker) DeleteSaving(ctx context.Context, ownerID int64, id int64) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "saving"); err != nil {
		return 0, err
	}
	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	affected, err := st.DeleteSaving(ctx, ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete saving: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "saving", Action: "delete", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

func (t *Tracker) ListWithdrawals(ctx context.Context, ownerID int64) ([]Withdrawal, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "list withdrawals", []Withdrawal{}, func(st Storage) ([]Withdrawal, error) {
		return st.ListWithdrawals(ctx, ownerID)
	})
}

func (t *Tracker) CreateWithdrawal(ctx context.Context, ownerID int64, req NewWithdrawal) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return 0, err
	}
	if !req.AccountType.Valid() {
		return 0, appErrors.Invalid("Invalid account type '%s', expected cash or bank.", req.AccountType)
	}
	date, err := ParseEconomicDate(req.WithdrawalDate, t.loc)
	if err != nil {
		return 0, err
	}
	if err := checkLength(req.Reason, MAX_NOTE_LENGTH, "Reason"); err != nil {
		return 0, err
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	id, err := st.SaveWithdrawal(ctx, Withdrawal{
		OwnerID:        ownerID,
		Amount:         amount,
		AccountType:    req.AccountType,
		WithdrawalDate: date,
		Reason:         req.Reason,
		CreatedAt:      t.now().In(t.loc),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save withdrawal: %w", err)
	}
	t.publish(ctx, Change{Entity: "withdrawal", Action: "create", OwnerID: ownerID, ID: id, Month: MonthKeyOf(date, t.loc)})
	return id, nil
}

func (t *Tracker) DeleteWithdrawal(ctx context.Context, ownerID int64, id int64) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "withdrawal"); err != nil {
		return 0, err
	}
	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	affected, err := st.DeleteWithdrawal(ctx, ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete withdrawal: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "withdrawal", Action: "delete", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

func (t *Tracker) GetSavingsTotals(ctx context.Context, ownerID int64) (SavingsTotals, error) {
	if err := validateOwner(ownerID); err != nil {
		return SavingsTotals{}, err
	}
	return readOrDefault(ctx, t, "get savings totals", SavingsTotals{}, func(st Storage) (SavingsTotals, error) {
		totals, err := st.SavingsTotals(ctx, ownerID)
		if err != nil {
			return SavingsTotals{}, err
		}
		totals.Balance = totals.TotalSavings - totals.TotalWithdrawals
		return totals, nil
	})
}

// Export collects all records of the owner.
func (t *Tracker) Export(ctx context.Context, ownerID int64) (Export, error) {
	if err := validateOwner(ownerID); err != nil {
		return Export{}, err
	}
	st, err := t.requireStore()
	if err != nil {
		return Export{}, err
	}

	export := Export{ExportedAt: t.now().In(t.loc)}
	if export.Transactions, err = st.ListTransactions(ctx, ownerID, DateRange{}); err != nil {
		return Export{}, fmt.Errorf("failed to export transactions: %w", err)
	}
	if export.Budgets, err = st.ListBudgets(ctx, ownerID, ""); err != nil {
		return Export{}, fmt.Errorf("failed to export budgets: %w", err)
	}
	if export.Savings, err = st.ListSavings(ctx, ownerID); err != nil {
		return Export{}, fmt.Errorf("failed to export savings: %w", err)
	}
	if export.Withdrawals, err = st.ListWithdrawals(ctx, ownerID); err != nil {
		return Export{}, fmt.Errorf("failed to export withdrawals: %w", err)
	}
	return export, nil
}

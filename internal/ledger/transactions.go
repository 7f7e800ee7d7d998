package ledger

import (
	"context"
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
)

func (t *Tracker) ListTransactions(ctx context.Context, ownerID int64, r DateRange) ([]Transaction, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "list transactions", []Transaction{}, func(st Storage) ([]Transaction, error) {
		return st.ListTransactions(ctx, ownerID, r)
	})
}

// GetTransaction answers NOT FOUND alike for missing rows and rows of
// another owner.
func (t *Tracker) GetTransaction(ctx context.Context, ownerID int64, id int64) (Transaction, error) {
	if err := validateOwner(ownerID); err != nil {
		return Transaction{}, err
	}
	if err := validateID(id, "transaction"); err != nil {
		return Transaction{}, err
	}
	st, err := t.requireStore()
	if err != nil {
		return Transaction{}, err
	}
	txn, err := st.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// categoryOfKind loads the category and requires it to be of kind.
func categoryOfKind(ctx context.Context, st Storage, categoryID int64, kind Kind) error {
	category, err := st.GetCategory(ctx, categoryID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound) {
			return appErrors.Invalid("Category %d does not exist.", categoryID)
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category.Kind != kind {
		return appErrors.Invalid("Category '%s' is %s, transaction is %s.", category.Name, category.Kind, kind)
	}
	return nil
}

func (t *Tracker) CreateTransaction(ctx context.Context, ownerID int64, req NewTransaction) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if !req.Kind.Valid() {
		return 0, appErrors.Invalid("Invalid transaction type '%s', expected income or expense.", req.Kind)
	}
	if err := validateID(req.CategoryID, "category"); err != nil {
		return 0, err
	}
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return 0, err
	}
	date, err := ParseEconomicDate(req.TransactionDate, t.loc)
	if err != nil {
		return 0, err
	}
	req.Person = strings.TrimSpace(req.Person)
	if err := checkLength(req.Person, MAX_PERSON_LENGTH, "Person"); err != nil {
		return 0, err
	}
	if err := checkLength(req.Description, MAX_DESCRIPTION_LENGTH, "Description"); err != nil {
		return 0, err
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	if err := categoryOfKind(ctx, st, req.CategoryID, req.Kind); err != nil {
		return 0, err
	}

	now := t.now().In(t.loc)
	txn := Transaction{
		OwnerID:         ownerID,
		CategoryID:      req.CategoryID,
		Amount:          amount,
		Kind:            req.Kind,
		Person:          req.Person,
		Description:     req.Description,
		TransactionDate: date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := st.SaveTransaction(ctx, txn)
	if err != nil {
		return 0, fmt.Errorf("failed to save transaction: %w", err)
	}
	t.publish(ctx, Change{Entity: "transaction", Action: "create", OwnerID: ownerID, ID: id, Month: MonthKeyOf(date, t.loc)})
	return id, nil
}

func (t *Tracker) transactionPatch(changes TransactionChanges) (TransactionPatch, error) {
	patch := TransactionPatch{
		CategoryID:  changes.CategoryID,
		Person:      changes.Person,
		Description: changes.Description,
	}
	if changes.CategoryID != nil {
		if err := validateID(*changes.CategoryID, "category"); err != nil {
			return TransactionPatch{}, err
		}
	}
	if changes.Amount != nil {
		amount, err := ToMinorUnits(*changes.Amount)
		if err != nil {
			return TransactionPatch{}, err
		}
		patch.Amount = &amount
	}
	if changes.TransactionDate != nil {
		date, err := ParseEconomicDate(*changes.TransactionDate, t.loc)
		if err != nil {
			return TransactionPatch{}, err
		}
		patch.TransactionDate = &date
	}
	if patch.Person != nil {
		person := strings.TrimSpace(*patch.Person)
		if err := checkLength(person, MAX_PERSON_LENGTH, "Person"); err != nil {
			return TransactionPatch{}, err
		}
		patch.Person = &person
	}
	if patch.Description != nil {
		if err := checkLength(*patch.Description, MAX_DESCRIPTION_LENGTH, "Description"); err != nil {
			return TransactionPatch{}, err
		}
	}
	if patch.IsEmpty() {
		return TransactionPatch{}, appErrors.Invalid("Nothing to update.")
	}
	patch.UpdatedAt = t.now().In(t.loc)
	return patch, nil
}

// UpdateTransaction changes only the fields present in changes and returns
// the number of affected rows. A row owned by someone else is left alone and
// reported as 0.
func (t *Tracker) UpdateTransaction(ctx context.Context, ownerID int64, id int64, changes TransactionChanges) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "transaction"); err != nil {
		return 0, err
	}
	patch, err := t.transactionPatch(changes)
	if err != nil {
		return 0, err
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}

	var month string
	if patch.CategoryID != nil {
		current, err := st.GetTransaction(ctx, ownerID, id)
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrNotFound) {
				return 0, nil
			}
			return 0, fmt.Errorf("failed to get transaction: %w", err)
		}
		if err := categoryOfKind(ctx, st, *patch.CategoryID, current.Kind); err != nil {
			return 0, err
		}
		month = MonthKeyOf(current.TransactionDate, t.loc)
	}

	affected, err := st.UpdateTransaction(ctx, ownerID, id, patch)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected > 0 {
		if patch.TransactionDate != nil {
			month = MonthKeyOf(*patch.TransactionDate, t.loc)
		}
		t.publish(ctx, Change{Entity: "transaction", Action: "update", OwnerID: ownerID, ID: id, Month: month})
	}
	return affected, nil
}

func (t *Tracker) DeleteTransaction(ctx context.Context, ownerID int64, id int64) (int64, error) {
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}
	if err := validateID(id, "transaction"); err != nil {
		return 0, err
	}
	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	affected, err := st.DeleteTransaction(ctx, ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "transaction", Action: "delete", OwnerID: ownerID, ID: id})
	}
	return affected, nil
}

// STATS

func (t *Tracker) GetBalance(ctx context.Context, ownerID int64, r DateRange) (Balance, error) {
	if err := validateOwner(ownerID); err != nil {
		return Balance{}, err
	}
	return readOrDefault(ctx, t, "get balance", Balance{}, func(st Storage) (Balance, error) {
		b, err := st.SumByKind(ctx, ownerID, r)
		if err != nil {
			return Balance{}, err
		}
		b.Balance = b.Income - b.Expense
		return b, nil
	})
}

func (t *Tracker) GetSpendingByCategory(ctx context.Context, ownerID int64, r DateRange) ([]CategoryTotal, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "get spending by category", []CategoryTotal{}, func(st Storage) ([]CategoryTotal, error) {
		return st.SumExpensesByCategory(ctx, ownerID, r)
	})
}

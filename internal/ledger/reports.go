package ledger

import (
	"context"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"golang.org/x/sync/errgroup"
)

const comparisonWorkers = 4

func (t *Tracker) GetMonthlySummary(ctx context.Context, ownerID int64, month string) (MonthlySummary, error) {
	if err := validateOwner(ownerID); err != nil {
		return MonthlySummary{}, err
	}
	r, err := MonthRange(month, t.loc)
	if err != nil {
		return MonthlySummary{}, err
	}

	balance, err := t.GetBalance(ctx, ownerID, r)
	if err != nil {
		return MonthlySummary{}, err
	}
	byCategory, err := t.GetSpendingByCategory(ctx, ownerID, r)
	if err != nil {
		return MonthlySummary{}, err
	}

	return MonthlySummary{
		Month:      month,
		Income:     balance.Income,
		Expense:    balance.Expense,
		Balance:    balance.Balance,
		ByCategory: byCategory,
	}, nil
}

// GetMonthsArchive lists the months holding at least one transaction,
// newest first.
func (t *Tracker) GetMonthsArchive(ctx context.Context, ownerID int64) ([]string, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	return readOrDefault(ctx, t, "list months", []string{}, func(st Storage) ([]string, error) {
		return st.ListMonthKeys(ctx, ownerID)
	})
}

// GetMonthsComparison summarizes each month concurrently; the result keeps
// the order of months.
func (t *Tracker) GetMonthsComparison(ctx context.Context, ownerID int64, months []string) ([]MonthlySummary, error) {
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if len(months) < MIN_COMPARED_MONTHS || len(months) > MAX_COMPARED_MONTHS {
		return nil, appErrors.Invalid("Between %d and %d months can be compared, got %d.", MIN_COMPARED_MONTHS, MAX_COMPARED_MONTHS, len(months))
	}
	for _, month := range months {
		if err := ValidateMonth(month); err != nil {
			return nil, err
		}
	}

	summaries := make([]MonthlySummary, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(comparisonWorkers)
	for i, month := range months {
		g.Go(func() error {
			summary, err := t.GetMonthlySummary(gctx, ownerID, month)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

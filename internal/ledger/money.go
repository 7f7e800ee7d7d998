package ledger

import (
	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/shopspring/decimal"
)

const MAX_AMOUNT_MINOR_UNITS = 99_999_999_999

var maxAmount = decimal.NewFromInt(MAX_AMOUNT_MINOR_UNITS)

// ToMinorUnits converts a user facing amount to cents, rounding half away
// from zero.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, appErrors.Invalid("Amount must be greater than 0.")
	}

	cents := amount.Shift(2).Round(0)
	if !cents.IsPositive() {
		return 0, appErrors.Invalid("Amount is too small, minimum is 0.01.")
	}
	if cents.GreaterThan(maxAmount) {
		return 0, appErrors.Invalid("Amount is too big, maximum is %s.", FromMinorUnits(MAX_AMOUNT_MINOR_UNITS).StringFixed(2))
	}
	return cents.IntPart(), nil
}

func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

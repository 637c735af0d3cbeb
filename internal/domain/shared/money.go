package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for monetary columns (numeric(14,2)).
const MoneyScale = 2

// maxMoney is the first value numeric(14,2) cannot hold.
var maxMoney = decimal.New(1, 14-MoneyScale)

// CheckMoney fails with a validation error when amount carries more than two
// decimal places or does not fit the storage column.
func CheckMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return NewValidationError(field + " must have at most 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxMoney) {
		return NewValidationError(field + " is out of range")
	}
	return nil
}

package money

import "github.com/shopspring/decimal"

// RatePlaces is the precision rates are quoted at.
const RatePlaces = 3

// RoundCurrency rounds to whole currency units, half away from zero.
// Every monetary rounding point in the pricing pipeline goes through here.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FloorCurrency truncates toward negative infinity to whole currency units.
func FloorCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Floor()
}

// FloorRate truncates a rate toward zero to RatePlaces decimals.
func FloorRate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(RatePlaces)
}

package model

import "github.com/shopspring/decimal"

// FeeAdjustment is the outcome of checking one tenor against the maximum
// fee rule. Rates are fractions of principal.
type FeeAdjustment struct {
	EffectiveProvisionRate       decimal.Decimal
	EffectiveMonthlyInterestRate decimal.Decimal
	// EffectiveTotalInterestRate is the interest over the whole duration.
	EffectiveTotalInterestRate decimal.Decimal
	MaxFeeAllowed              decimal.Decimal
	// ComputedTotalFee is the nominal provision plus nominal total interest.
	ComputedTotalFee decimal.Decimal
	DurationDays     int
	IsCapped         bool
}

// ProvisionChanged reports whether the cap lowered the provision rate.
func (f FeeAdjustment) ProvisionChanged(nominal decimal.Decimal) bool {
	return !f.EffectiveProvisionRate.Equal(nominal)
}

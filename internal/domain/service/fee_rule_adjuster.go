package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/model"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// DaysPerMonth is the month length used to express tenors in days.
const DaysPerMonth = 30

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// ---------------------------------------------------------------------------
// FeeRuleAdjuster – OJK maximum fee compliance
// ---------------------------------------------------------------------------

// FeeRuleAdjuster lowers provision and interest rates so the combined fee
// stays within the regulatory daily maximum. It holds no state.
type FeeRuleAdjuster struct{}

// NewFeeRuleAdjuster returns a new adjuster.
func NewFeeRuleAdjuster() *FeeRuleAdjuster {
	return &FeeRuleAdjuster{}
}

// Adjust evaluates one tenor.
//
// The loan duration is the stub length in calendar days for one-month
// loans and tenor*30 days otherwise. The monthly interest rate is scaled to
// that duration before being added to the provision rate:
//
//	maxFee        = dailyMaxFeeRate * days
//	totalInterest = monthlyRate * days / 30
//	simpleFee     = provisionRate + totalInterest
//
// When simpleFee exceeds maxFee the provision is kept up to maxFee and the
// interest takes whatever remains, never below zero. Capped rates are
// truncated to three decimals.
func (a *FeeRuleAdjuster) Adjust(
	principal decimal.Decimal,
	tenorMonths int,
	monthlyInterestRate, provisionRate decimal.Decimal,
	firstDueDate, requestDate time.Time,
	rule valueobject.FeeRule,
) (model.FeeAdjustment, error) {
	if tenorMonths <= 0 || tenorMonths > valueobject.MaxTenorMonths {
		return model.FeeAdjustment{}, fmt.Errorf("%w: got %d, max %d", valueobject.ErrInvalidTenor, tenorMonths, valueobject.MaxTenorMonths)
	}
	if !principal.IsPositive() {
		return model.FeeAdjustment{}, valueobject.ErrInvalidPrincipal
	}
	if rule.IsZero() {
		return model.FeeAdjustment{}, fmt.Errorf("%w: fee rule is not set", valueobject.ErrInvalidConfig)
	}

	days := tenorMonths * DaysPerMonth
	if tenorMonths == 1 {
		days = model.DaysBetween(requestDate, firstDueDate)
	}
	if days <= 0 {
		return model.FeeAdjustment{}, fmt.Errorf("%w: got %d days", valueobject.ErrInvalidDuration, days)
	}

	daysDec := decimal.NewFromInt(int64(days))
	maxFee := rule.MaxFeeFor(days)
	totalInterest := monthlyInterestRate.Mul(daysDec).Div(daysPerMonth)
	simpleFee := provisionRate.Add(totalInterest)

	result := model.FeeAdjustment{
		EffectiveProvisionRate:       provisionRate,
		EffectiveMonthlyInterestRate: monthlyInterestRate,
		EffectiveTotalInterestRate:   totalInterest,
		MaxFeeAllowed:                maxFee,
		ComputedTotalFee:             simpleFee,
		DurationDays:                 days,
	}
	if simpleFee.LessThanOrEqual(maxFee) {
		return result, nil
	}

	// Rates round down so the quoted rates never add up to more than maxFee.
	effProvision := money.FloorRate(decimal.Min(provisionRate, maxFee))
	effTotalInterest := money.FloorRate(decimal.Max(maxFee.Sub(effProvision), decimal.Zero))

	result.IsCapped = true
	result.EffectiveProvisionRate = effProvision
	result.EffectiveTotalInterestRate = effTotalInterest
	result.EffectiveMonthlyInterestRate = money.FloorRate(effTotalInterest.Mul(daysPerMonth).Div(daysDec))
	return result, nil
}

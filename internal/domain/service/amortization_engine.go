package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/model"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// ---------------------------------------------------------------------------
// AmortizationEngine – flat-rate installment schedule
// ---------------------------------------------------------------------------

// AmortizationEngine builds payment schedules. Interest is flat: it is
// charged on the original principal every period, never on the declining
// balance.
type AmortizationEngine struct{}

// NewAmortizationEngine returns a new engine.
func NewAmortizationEngine() *AmortizationEngine {
	return &AmortizationEngine{}
}

// GenerateSchedule computes the schedule for principal over tenorMonths.
//
//	periodPrincipal = floor(P / n)
//	periodInterest  = P * r
//	stubInterest    = floor(deltaDays / 30 * P * r)
//
// The first period runs from requestDate to firstDueDate and carries the
// stub interest. Every later period k is due firstDueDate + (k-1) months.
// The last period absorbs the flooring remainder of the principal, taken
// out of its interest so the installment total stays the same.
func (e *AmortizationEngine) GenerateSchedule(
	principal decimal.Decimal,
	tenorMonths int,
	monthlyInterestRate decimal.Decimal,
	requestDate, firstDueDate time.Time,
) (model.PaymentSchedule, error) {
	if tenorMonths <= 0 || tenorMonths > valueobject.MaxTenorMonths {
		return nil, fmt.Errorf("%w: got %d, max %d", valueobject.ErrInvalidTenor, tenorMonths, valueobject.MaxTenorMonths)
	}
	if !principal.IsPositive() {
		return nil, valueobject.ErrInvalidPrincipal
	}
	if monthlyInterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: monthly interest rate %s", valueobject.ErrInvalidRate, monthlyInterestRate)
	}
	deltaDays := model.DaysBetween(requestDate, firstDueDate)
	if deltaDays <= 0 {
		return nil, fmt.Errorf("%w: first period spans %d days", valueobject.ErrInvalidDuration, deltaDays)
	}

	firstDue := model.CalendarDay(firstDueDate)
	basicInterest := principal.Mul(monthlyInterestRate)
	stubInterest := money.FloorCurrency(basicInterest.Mul(decimal.NewFromInt(int64(deltaDays))).Div(daysPerMonth))

	if tenorMonths == 1 {
		return model.PaymentSchedule{{
			Period:      1,
			DueDate:     firstDue,
			Principal:   principal,
			Interest:    stubInterest,
			Installment: principal.Add(stubInterest),
		}}, nil
	}

	periodPrincipal := money.FloorCurrency(principal.Div(decimal.NewFromInt(int64(tenorMonths))))
	regularInstallment := money.RoundCurrency(periodPrincipal.Add(basicInterest))
	firstInstallment := money.RoundCurrency(periodPrincipal.Add(stubInterest))

	schedule := make(model.PaymentSchedule, 0, tenorMonths)
	schedule = append(schedule, newLine(1, firstDue, periodPrincipal, firstInstallment))
	for period := 2; period <= tenorMonths; period++ {
		dueDate := model.AddMonths(firstDue, period-1)
		schedule = append(schedule, newLine(period, dueDate, periodPrincipal, regularInstallment))
	}

	deviation := principal.Sub(periodPrincipal.Mul(decimal.NewFromInt(int64(tenorMonths))))
	last := &schedule[len(schedule)-1]
	last.Principal = last.Principal.Add(deviation)
	last.Interest = last.Interest.Sub(deviation)
	if last.Interest.IsNegative() {
		// Principal-only settlement: the remainder is collected on top.
		last.Interest = decimal.Zero
		last.Installment = last.Principal
	}

	return schedule, nil
}

// newLine derives the interest component from the rounded installment so
// principal + interest always equals the installment.
func newLine(period int, dueDate time.Time, principal, installment decimal.Decimal) model.InstallmentLine {
	interest := decimal.Max(installment.Sub(principal), decimal.Zero)
	return model.InstallmentLine{
		Period:      period,
		DueDate:     dueDate,
		Principal:   principal,
		Interest:    interest,
		Installment: principal.Add(interest),
	}
}

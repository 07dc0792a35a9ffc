package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanRequest – immutable pricing input
// ---------------------------------------------------------------------------

// LoanRequest is what a borrower asks for before any tenor is chosen.
type LoanRequest struct {
	requestedPrincipal  decimal.Decimal
	monthlyInterestRate decimal.Decimal
	provisionRate       decimal.Decimal
	requestDate         time.Time
	firstDueDate        time.Time
	selfFunded          bool
}

// NewLoanRequest validates and builds a LoanRequest. Dates are truncated to
// calendar days in UTC. selfFunded marks a withdrawal to the borrower's own
// account, where the provision fee is deducted from the disbursed amount
// instead of being added on top of the principal.
func NewLoanRequest(
	requestedPrincipal decimal.Decimal,
	monthlyInterestRate, provisionRate decimal.Decimal,
	requestDate, firstDueDate time.Time,
	selfFunded bool,
) (LoanRequest, error) {
	if !requestedPrincipal.IsPositive() {
		return LoanRequest{}, valueobject.ErrInvalidPrincipal
	}
	if monthlyInterestRate.IsNegative() {
		return LoanRequest{}, fmt.Errorf("%w: monthly interest rate %s", valueobject.ErrInvalidRate, monthlyInterestRate)
	}
	if provisionRate.IsNegative() || provisionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return LoanRequest{}, fmt.Errorf("%w: provision rate %s", valueobject.ErrInvalidRate, provisionRate)
	}
	req, due := CalendarDay(requestDate), CalendarDay(firstDueDate)
	if !due.After(req) {
		return LoanRequest{}, fmt.Errorf("%w: first due date %s is not after request date %s",
			valueobject.ErrInvalidDuration, due.Format(time.DateOnly), req.Format(time.DateOnly))
	}
	return LoanRequest{
		requestedPrincipal:  requestedPrincipal,
		monthlyInterestRate: monthlyInterestRate,
		provisionRate:       provisionRate,
		requestDate:         req,
		firstDueDate:        due,
		selfFunded:          selfFunded,
	}, nil
}

func (r LoanRequest) RequestedPrincipal() decimal.Decimal  { return r.requestedPrincipal }
func (r LoanRequest) MonthlyInterestRate() decimal.Decimal { return r.monthlyInterestRate }
func (r LoanRequest) ProvisionRate() decimal.Decimal       { return r.provisionRate }
func (r LoanRequest) RequestDate() time.Time               { return r.requestDate }
func (r LoanRequest) FirstDueDate() time.Time              { return r.firstDueDate }
func (r LoanRequest) SelfFunded() bool                     { return r.selfFunded }

// CalendarDay strips the clock from t and pins it to UTC midnight of the
// same calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(CalendarDay(end).Sub(CalendarDay(start)).Hours() / 24)
}

// AddMonths moves t forward by n months, clamping to the last day of the
// target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

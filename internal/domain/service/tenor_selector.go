package service

import (
	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// TenorFilter decides whether a tenor may be offered for an amount under a
// product's terms. Implementations must be safe for concurrent use.
type TenorFilter interface {
	Allows(terms valueobject.ProductTerms, tenorMonths int, amount decimal.Decimal) bool
}

// TenorQuery carries the borrower-specific inputs of tenor selection.
type TenorQuery struct {
	AvailableLimit decimal.Decimal
	// RequestedAmount may be zero, in which case the product's probe amount
	// is used.
	RequestedAmount decimal.Decimal
}

// ProbeAmount is the amount eligibility is judged on and choices are priced
// at: the requested amount, else the product's probe amount, never more than
// the available limit.
func (q TenorQuery) ProbeAmount(terms valueobject.ProductTerms) decimal.Decimal {
	amount := q.RequestedAmount
	if !amount.IsPositive() {
		amount = terms.ProbeAmount
	}
	probe := decimal.Min(amount, q.AvailableLimit)
	if !probe.IsPositive() {
		return q.AvailableLimit
	}
	return probe
}

// ---------------------------------------------------------------------------
// TenorSelector
// ---------------------------------------------------------------------------

// TenorSelector produces the tenors a borrower may choose from.
type TenorSelector struct {
	filters []TenorFilter
}

// NewTenorSelector returns a selector applying every filter to each tenor.
func NewTenorSelector(filters ...TenorFilter) *TenorSelector {
	return &TenorSelector{filters: filters}
}

// Select returns the strictly increasing list of eligible tenors in
// [terms.MinTenor, terms.MaxTenor]. Amounts below the product's small amount
// threshold only get a one-month tenor. An empty result means nothing is
// eligible and is not an error.
func (s *TenorSelector) Select(q TenorQuery, terms valueobject.ProductTerms) []int {
	if !q.AvailableLimit.IsPositive() || terms.MaxTenor < terms.MinTenor {
		return []int{}
	}

	amount := q.RequestedAmount
	if !amount.IsPositive() {
		amount = terms.ProbeAmount
	}
	if amount.IsPositive() && amount.LessThan(terms.SmallAmountThreshold()) {
		return []int{1}
	}

	lo, hi := max(terms.MinTenor, 1), min(terms.MaxTenor, valueobject.MaxTenorMonths)
	if hi < lo {
		return []int{}
	}

	probe := q.ProbeAmount(terms)
	tenors := make([]int, 0, hi-lo+1)
	for tenor := lo; tenor <= hi; tenor++ {
		if s.allows(terms, tenor, probe) {
			tenors = append(tenors, tenor)
		}
	}
	return tenors
}

func (s *TenorSelector) allows(terms valueobject.ProductTerms, tenor int, amount decimal.Decimal) bool {
	for _, f := range s.filters {
		if !f.Allows(terms, tenor, amount) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// AffordabilityFilter – debt burden ratio check
// ---------------------------------------------------------------------------

// AffordabilityFilter rejects tenors whose flat monthly installment for the
// probe amount exceeds the product's MaxMonthlyInstallment.
type AffordabilityFilter struct{}

// NewAffordabilityFilter returns the DBR filter.
func NewAffordabilityFilter() AffordabilityFilter {
	return AffordabilityFilter{}
}

// Allows implements TenorFilter.
func (AffordabilityFilter) Allows(terms valueobject.ProductTerms, tenorMonths int, amount decimal.Decimal) bool {
	if terms.MaxMonthlyInstallment.IsZero() {
		return true
	}
	return EstimateInstallment(amount, tenorMonths, terms.MonthlyInterestRate).
		LessThanOrEqual(terms.MaxMonthlyInstallment)
}

// EstimateInstallment is the regular flat-rate installment for amount over
// tenorMonths, as the amortization engine would produce it.
func EstimateInstallment(amount decimal.Decimal, tenorMonths int, monthlyInterestRate decimal.Decimal) decimal.Decimal {
	principal := money.FloorCurrency(amount.Div(decimal.NewFromInt(int64(tenorMonths))))
	return money.RoundCurrency(principal.Add(amount.Mul(monthlyInterestRate)))
}

package valueobject

import (
	"github.com/lendcore/loan-pricing/pkg/money"
)

// CreditLimit is a snapshot of a customer's remaining credit line.
type CreditLimit struct {
	CustomerID string
	Available  money.Money
}

// HasHeadroom reports whether any limit remains.
func (c CreditLimit) HasHeadroom() bool {
	return c.Available.IsPositive()
}

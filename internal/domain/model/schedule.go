package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentLine is one period of a payment schedule.
type InstallmentLine struct {
	DueDate     time.Time
	Principal   decimal.Decimal
	Interest    decimal.Decimal
	Installment decimal.Decimal
	Period      int
}

// PaymentSchedule is an ordered, 1-based list of installment lines.
type PaymentSchedule []InstallmentLine

// TotalPrincipal sums the principal components.
func (s PaymentSchedule) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s {
		total = total.Add(l.Principal)
	}
	return total
}

// TotalInterest sums the interest components.
func (s PaymentSchedule) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s {
		total = total.Add(l.Interest)
	}
	return total
}

// TotalInstallment sums the installment totals.
func (s PaymentSchedule) TotalInstallment() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s {
		total = total.Add(l.Installment)
	}
	return total
}

// RegularInstallment is the amount a borrower sees as "monthly
// installment": the second period for multi-period loans, else the first.
func (s PaymentSchedule) RegularInstallment() decimal.Decimal {
	switch len(s) {
	case 0:
		return decimal.Zero
	case 1:
		return s[0].Installment
	default:
		return s[1].Installment
	}
}

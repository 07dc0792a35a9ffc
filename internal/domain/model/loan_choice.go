package model

import (
	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/pkg/money"
)

// LoanChoice is one priced tenor offered to the borrower.
type LoanChoice struct {
	AdjustedPrincipal      decimal.Decimal
	InstallmentAmount      decimal.Decimal
	FirstInstallmentAmount decimal.Decimal
	ProvisionAmount        decimal.Decimal
	DisbursementAmount     decimal.Decimal
	CashbackAmount         decimal.Decimal
	AvailableLimitAfter    money.Money
	Fee                    FeeAdjustment
	Schedule               PaymentSchedule
	TenorMonths            int
}

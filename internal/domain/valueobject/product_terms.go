package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultSmallAmountThreshold is the requested amount below which only a
// one-month tenor is offered.
var DefaultSmallAmountThreshold = decimal.NewFromInt(100_000)

// MaxTenorMonths is the longest tenor any product may offer.
const MaxTenorMonths = 60

// ProductTerms is the typed credit-matrix entry for a product: pricing
// rates, tenor bounds and tenor eligibility parameters.
type ProductTerms struct {
	Code                string
	MonthlyInterestRate decimal.Decimal
	ProvisionRate       decimal.Decimal
	CashbackRate        decimal.Decimal

	MinTenor int
	MaxTenor int

	// MinAmountThreshold short-circuits tenor selection to a single month
	// for amounts strictly below it.
	MinAmountThreshold decimal.Decimal
	// ProbeAmount is used for affordability checks when the borrower has
	// not requested an amount yet.
	ProbeAmount decimal.Decimal
	// MaxMonthlyInstallment is the DBR ceiling on the installment of the
	// probe amount. Zero disables the check.
	MaxMonthlyInstallment decimal.Decimal

	// EligibilityRules are CEL expressions over `tenor` and `amount`; a
	// tenor is offered only when every rule evaluates to true.
	EligibilityRules []string
}

// Validate checks the invariants the pricing services rely on.
func (p ProductTerms) Validate() error {
	one := decimal.NewFromInt(1)
	switch {
	case p.Code == "":
		return fmt.Errorf("%w: product code is required", ErrInvalidConfig)
	case p.MinTenor <= 0:
		return fmt.Errorf("%w: product %s min tenor %d must be positive", ErrInvalidConfig, p.Code, p.MinTenor)
	case p.MaxTenor < p.MinTenor:
		return fmt.Errorf("%w: product %s max tenor %d below min tenor %d", ErrInvalidConfig, p.Code, p.MaxTenor, p.MinTenor)
	case p.MaxTenor > MaxTenorMonths:
		return fmt.Errorf("%w: product %s max tenor %d above %d", ErrInvalidConfig, p.Code, p.MaxTenor, MaxTenorMonths)
	case p.MonthlyInterestRate.IsNegative():
		return fmt.Errorf("%w: product %s monthly interest rate is negative", ErrInvalidConfig, p.Code)
	case p.ProvisionRate.IsNegative() || p.ProvisionRate.GreaterThanOrEqual(one):
		return fmt.Errorf("%w: product %s provision rate must be in [0, 1)", ErrInvalidConfig, p.Code)
	case p.CashbackRate.IsNegative() || p.CashbackRate.GreaterThanOrEqual(one):
		return fmt.Errorf("%w: product %s cashback rate must be in [0, 1)", ErrInvalidConfig, p.Code)
	case p.MinAmountThreshold.IsNegative() || p.ProbeAmount.IsNegative() || p.MaxMonthlyInstallment.IsNegative():
		return fmt.Errorf("%w: product %s amounts must not be negative", ErrInvalidConfig, p.Code)
	}
	return nil
}

// SmallAmountThreshold returns the configured threshold, falling back to
// DefaultSmallAmountThreshold when unset.
func (p ProductTerms) SmallAmountThreshold() decimal.Decimal {
	if p.MinAmountThreshold.IsZero() {
		return DefaultSmallAmountThreshold
	}
	return p.MinAmountThreshold
}

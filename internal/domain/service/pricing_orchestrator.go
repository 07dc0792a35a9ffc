package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/model"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// PricingLimits are the per-borrower, per-product amounts a quote is
// priced against.
type PricingLimits struct {
	AvailableLimit money.Money
	CashbackRate   decimal.Decimal
}

// ---------------------------------------------------------------------------
// PricingOrchestrator
// ---------------------------------------------------------------------------

// PricingOrchestrator turns a loan request and a list of tenors into loan
// choices by running the fee rule and the amortization engine per tenor.
type PricingOrchestrator struct {
	adjuster *FeeRuleAdjuster
	engine   *AmortizationEngine
}

// NewPricingOrchestrator wires the adjuster and engine.
func NewPricingOrchestrator(adjuster *FeeRuleAdjuster, engine *AmortizationEngine) *PricingOrchestrator {
	return &PricingOrchestrator{adjuster: adjuster, engine: engine}
}

// Price returns one LoanChoice per tenor, in the order given. An empty
// tenor list yields an empty result.
func (o *PricingOrchestrator) Price(
	req model.LoanRequest,
	tenors []int,
	rule valueobject.FeeRule,
	limits PricingLimits,
) ([]model.LoanChoice, error) {
	choices := make([]model.LoanChoice, 0, len(tenors))
	for _, tenor := range tenors {
		choice, err := o.priceTenor(req, tenor, rule, limits)
		if err != nil {
			return nil, fmt.Errorf("price tenor %d: %w", tenor, err)
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

func (o *PricingOrchestrator) priceTenor(
	req model.LoanRequest,
	tenor int,
	rule valueobject.FeeRule,
	limits PricingLimits,
) (model.LoanChoice, error) {
	provisionRate := req.ProvisionRate()
	principal := PrincipalFor(req.RequestedPrincipal(), provisionRate, req.SelfFunded())

	fee, err := o.adjuster.Adjust(
		principal, tenor,
		req.MonthlyInterestRate(), provisionRate,
		req.FirstDueDate(), req.RequestDate(),
		rule,
	)
	if err != nil {
		return model.LoanChoice{}, err
	}

	// A lower provision shrinks the gross-up for fee-on-top loans.
	if fee.IsCapped && fee.ProvisionChanged(provisionRate) && !req.SelfFunded() {
		provisionRate = fee.EffectiveProvisionRate
		principal = PrincipalFor(req.RequestedPrincipal(), provisionRate, false)
	}

	// The grossed-up principal must still fit the available limit.
	if !limits.AvailableLimit.Covers(principal) {
		maxRequest := MaxRequestFor(limits.AvailableLimit.Amount(), provisionRate, req.SelfFunded())
		principal = PrincipalFor(maxRequest, provisionRate, req.SelfFunded())
	}

	schedule, err := o.engine.GenerateSchedule(
		principal, tenor, fee.EffectiveMonthlyInterestRate,
		req.RequestDate(), req.FirstDueDate(),
	)
	if err != nil {
		return model.LoanChoice{}, err
	}

	provision := money.RoundCurrency(principal.Mul(fee.EffectiveProvisionRate))
	disbursement := money.RoundCurrency(principal.Sub(provision))
	cashback := money.RoundCurrency(principal.Mul(limits.CashbackRate))

	after, err := limits.AvailableLimit.Draw(principal)
	if err != nil {
		return model.LoanChoice{}, err
	}

	return model.LoanChoice{
		TenorMonths:            tenor,
		AdjustedPrincipal:      principal,
		InstallmentAmount:      schedule.RegularInstallment(),
		FirstInstallmentAmount: schedule[0].Installment,
		ProvisionAmount:        provision,
		DisbursementAmount:     disbursement,
		CashbackAmount:         cashback,
		AvailableLimitAfter:    after,
		Fee:                    fee,
		Schedule:               schedule,
	}, nil
}

// PrincipalFor returns the loan principal for a requested amount. When the
// borrower withdraws to their own account (selfFunded) the provision fee is
// deducted from the disbursement and the principal is the requested amount;
// otherwise the fee is added on top so the requested amount is disbursed in
// full.
func PrincipalFor(requested, provisionRate decimal.Decimal, selfFunded bool) decimal.Decimal {
	if selfFunded || provisionRate.IsZero() {
		return requested
	}
	return money.RoundCurrency(requested.Div(decimal.NewFromInt(1).Sub(provisionRate)))
}

// MaxRequestFor returns the largest requested amount whose principal, after
// any fee-on-top gross-up, does not exceed limit.
func MaxRequestFor(limit, provisionRate decimal.Decimal, selfFunded bool) decimal.Decimal {
	whole := money.FloorCurrency(limit)
	if selfFunded || provisionRate.IsZero() {
		return whole
	}
	return money.FloorCurrency(whole.Mul(decimal.NewFromInt(1).Sub(provisionRate)))
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// QuoteLoanChoicesRequest asks for every tenor the customer may take, priced.
// A zero RequestedAmount lets the product's probe amount drive tenor selection
// and pricing.
type QuoteLoanChoicesRequest struct {
	CustomerID      string          `json:"customer_id"`
	ProductCode     string          `json:"product_code"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	RequestDate     time.Time       `json:"request_date"`
	FirstDueDate    time.Time       `json:"first_due_date"`
	SelfFunded      bool            `json:"self_funded"`
}

// GenerateScheduleRequest carries the terms of an accepted loan.
type GenerateScheduleRequest struct {
	LoanID              string          `json:"loan_id"`
	Principal           decimal.Decimal `json:"principal"`
	TenorMonths         int             `json:"tenor_months"`
	MonthlyInterestRate decimal.Decimal `json:"monthly_interest_rate"`
	RequestDate         time.Time       `json:"request_date"`
	FirstDueDate        time.Time       `json:"first_due_date"`
}

// SelectTenorsRequest asks which tenors are eligible without pricing them.
type SelectTenorsRequest struct {
	CustomerID      string          `json:"customer_id"`
	ProductCode     string          `json:"product_code"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse is one row of a payment schedule.
type InstallmentResponse struct {
	Period      int             `json:"period"`
	DueDate     time.Time       `json:"due_date"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Installment decimal.Decimal `json:"installment"`
}

// FeeAdjustmentResponse exposes how the fee cap affected a choice.
type FeeAdjustmentResponse struct {
	IsCapped                     bool            `json:"is_capped"`
	DurationDays                 int             `json:"duration_days"`
	MaxFeeAllowed                decimal.Decimal `json:"max_fee_allowed"`
	ComputedTotalFee             decimal.Decimal `json:"computed_total_fee"`
	EffectiveProvisionRate       decimal.Decimal `json:"effective_provision_rate"`
	EffectiveMonthlyInterestRate decimal.Decimal `json:"effective_monthly_interest_rate"`
	EffectiveTotalInterestRate   decimal.Decimal `json:"effective_total_interest_rate"`
}

// LoanChoiceResponse is one priced tenor.
type LoanChoiceResponse struct {
	TenorMonths            int                   `json:"tenor_months"`
	AdjustedPrincipal      decimal.Decimal       `json:"adjusted_principal"`
	InstallmentAmount      decimal.Decimal       `json:"installment_amount"`
	FirstInstallmentAmount decimal.Decimal       `json:"first_installment_amount"`
	ProvisionAmount        decimal.Decimal       `json:"provision_amount"`
	DisbursementAmount     decimal.Decimal       `json:"disbursement_amount"`
	CashbackAmount         decimal.Decimal       `json:"cashback_amount"`
	AvailableLimitAfter    decimal.Decimal       `json:"available_limit_after"`
	Fee                    FeeAdjustmentResponse `json:"fee"`
	Schedule               []InstallmentResponse `json:"schedule"`
}

// QuoteLoanChoicesResponse lists the priced choices in ascending tenor order.
// Choices is empty, never nil, when nothing is eligible.
type QuoteLoanChoicesResponse struct {
	QuoteID         string               `json:"quote_id"`
	CustomerID      string               `json:"customer_id"`
	ProductCode     string               `json:"product_code"`
	Currency        string               `json:"currency"`
	RequestedAmount decimal.Decimal      `json:"requested_amount"`
	AvailableLimit  decimal.Decimal      `json:"available_limit"`
	Choices         []LoanChoiceResponse `json:"choices"`
}

// ScheduleResponse is a full payment schedule with totals.
type ScheduleResponse struct {
	ScheduleID       string                `json:"schedule_id"`
	Principal        decimal.Decimal       `json:"principal"`
	TenorMonths      int                   `json:"tenor_months"`
	TotalInterest    decimal.Decimal       `json:"total_interest"`
	TotalInstallment decimal.Decimal       `json:"total_installment"`
	Lines            []InstallmentResponse `json:"lines"`
}

// SelectTenorsResponse lists eligible tenors in ascending order.
type SelectTenorsResponse struct {
	CustomerID  string `json:"customer_id"`
	ProductCode string `json:"product_code"`
	Tenors      []int  `json:"tenors"`
}

package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeLoanChoicesQuoted        = "pricing.loan_choices.quoted"
	TypePaymentScheduleGenerated = "pricing.payment_schedule.generated"
)

// QuotedChoice summarises one priced tenor inside a quote event.
type QuotedChoice struct {
	TenorMonths        int             `json:"tenor_months"`
	Principal          decimal.Decimal `json:"principal"`
	InstallmentAmount  decimal.Decimal `json:"installment_amount"`
	ProvisionAmount    decimal.Decimal `json:"provision_amount"`
	DisbursementAmount decimal.Decimal `json:"disbursement_amount"`
	FeeCapped          bool            `json:"fee_capped"`
}

// LoanChoicesQuoted is raised each time a customer is shown a set of priced
// tenors, including the empty set.
type LoanChoicesQuoted struct {
	events.BaseEvent
	CustomerID      string          `json:"customer_id"`
	ProductCode     string          `json:"product_code"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	DailyMaxFeeRate decimal.Decimal `json:"daily_max_fee_rate"`
	Choices         []QuotedChoice  `json:"choices"`
}

func NewLoanChoicesQuoted(
	quoteID, customerID, productCode string,
	requested decimal.Decimal, currency string,
	dailyMaxFeeRate decimal.Decimal, choices []QuotedChoice, now time.Time,
) LoanChoicesQuoted {
	return LoanChoicesQuoted{
		BaseEvent:       events.NewBaseEvent(TypeLoanChoicesQuoted, quoteID, "Quote", now),
		CustomerID:      customerID,
		ProductCode:     productCode,
		RequestedAmount: requested,
		Currency:        currency,
		DailyMaxFeeRate: dailyMaxFeeRate,
		Choices:         choices,
	}
}

// PaymentScheduleGenerated is raised when an accepted loan gets its schedule.
type PaymentScheduleGenerated struct {
	events.BaseEvent
	Principal        decimal.Decimal `json:"principal"`
	TenorMonths      int             `json:"tenor_months"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalInstallment decimal.Decimal `json:"total_installment"`
	FirstDueDate     time.Time       `json:"first_due_date"`
	LastDueDate      time.Time       `json:"last_due_date"`
}

func NewPaymentScheduleGenerated(
	scheduleID string, principal decimal.Decimal, tenorMonths int,
	totalInterest, totalInstallment decimal.Decimal,
	firstDue, lastDue, now time.Time,
) PaymentScheduleGenerated {
	return PaymentScheduleGenerated{
		BaseEvent:        events.NewBaseEvent(TypePaymentScheduleGenerated, scheduleID, "PaymentSchedule", now),
		Principal:        principal,
		TenorMonths:      tenorMonths,
		TotalInterest:    totalInterest,
		TotalInstallment: totalInstallment,
		FirstDueDate:     firstDue,
		LastDueDate:      lastDue,
	}
}

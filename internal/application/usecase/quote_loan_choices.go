package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lendcore/loan-pricing/internal/application/dto"
	"github.com/lendcore/loan-pricing/internal/domain/event"
	"github.com/lendcore/loan-pricing/internal/domain/model"
	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/observability"
)

// QuoteLoanChoicesUseCase selects the tenors a customer may take and prices
// each of them against the current fee cap.
type QuoteLoanChoicesUseCase struct {
	limits       port.CreditLimitProvider
	catalog      port.ProductCatalog
	feeRules     port.FeeRuleProvider
	publisher    port.EventPublisher
	selector     *service.TenorSelector
	orchestrator *service.PricingOrchestrator
	metrics      *observability.PricingMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// NewQuoteLoanChoicesUseCase wires dependencies. metrics may be nil.
func NewQuoteLoanChoicesUseCase(
	limits port.CreditLimitProvider,
	catalog port.ProductCatalog,
	feeRules port.FeeRuleProvider,
	publisher port.EventPublisher,
	selector *service.TenorSelector,
	orchestrator *service.PricingOrchestrator,
	metrics *observability.PricingMetrics,
	logger *slog.Logger,
) *QuoteLoanChoicesUseCase {
	return &QuoteLoanChoicesUseCase{
		limits:       limits,
		catalog:      catalog,
		feeRules:     feeRules,
		publisher:    publisher,
		selector:     selector,
		orchestrator: orchestrator,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Execute quotes every eligible tenor. A customer with nothing eligible gets
// an empty list of choices, not an error.
func (uc *QuoteLoanChoicesUseCase) Execute(
	ctx context.Context,
	req dto.QuoteLoanChoicesRequest,
) (resp dto.QuoteLoanChoicesResponse, err error) {
	ctx, span := tracer.Start(ctx, "QuoteLoanChoices")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(
		attribute.String("customer_id", req.CustomerID),
		attribute.String("product_code", req.ProductCode),
	)

	if err := validateCustomerProduct(req.CustomerID, req.ProductCode); err != nil {
		return dto.QuoteLoanChoicesResponse{}, err
	}
	if req.RequestedAmount.IsNegative() {
		return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("%w: requested amount %s", valueobject.ErrInvalidPrincipal, req.RequestedAmount)
	}

	// 1. Gather collaborator inputs.
	limit, err := uc.limits.AvailableLimit(ctx, req.CustomerID)
	if err != nil {
		return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("fetch credit limit: %w", err)
	}
	terms, err := uc.catalog.ProductTerms(ctx, req.ProductCode)
	if err != nil {
		return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("fetch product terms: %w", err)
	}
	rule, err := uc.feeRules.CurrentFeeRule(ctx)
	if err != nil {
		return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("fetch fee rule: %w", err)
	}

	// 2. Select tenors.
	query := service.TenorQuery{
		AvailableLimit:  limit.Available.Amount(),
		RequestedAmount: req.RequestedAmount,
	}
	tenors := uc.selector.Select(query, terms)

	// 3. Price them.
	choices := []model.LoanChoice{}
	if len(tenors) > 0 {
		requestDate, firstDue := uc.quoteDates(req)
		loanReq, err := model.NewLoanRequest(
			query.ProbeAmount(terms),
			terms.MonthlyInterestRate, terms.ProvisionRate,
			requestDate, firstDue, req.SelfFunded,
		)
		if err != nil {
			return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("build loan request: %w", err)
		}
		choices, err = uc.orchestrator.Price(loanReq, tenors, rule, service.PricingLimits{
			AvailableLimit: limit.Available,
			CashbackRate:   terms.CashbackRate,
		})
		if err != nil {
			return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("price choices: %w", err)
		}
	}

	// 4. Publish the quote.
	quoteID := uuid.NewString()
	currency := limit.Available.Currency().String()
	evt := event.NewLoanChoicesQuoted(quoteID, req.CustomerID, req.ProductCode,
		req.RequestedAmount, currency, rule.DailyMaxFeeRate(), toQuotedChoices(choices), uc.now())
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.QuoteLoanChoicesResponse{}, fmt.Errorf("publish events: %w", err)
	}

	capped := countCapped(choices)
	uc.metrics.RecordQuote(ctx, req.ProductCode, len(choices), capped)
	span.SetAttributes(attribute.Int("choices", len(choices)), attribute.Int("capped", capped))
	uc.logger.InfoContext(ctx, "loan choices quoted",
		"quote_id", quoteID,
		"customer_id", req.CustomerID,
		"product_code", req.ProductCode,
		"tenors", tenors,
		"capped", capped,
	)

	return dto.QuoteLoanChoicesResponse{
		QuoteID:         quoteID,
		CustomerID:      req.CustomerID,
		ProductCode:     req.ProductCode,
		Currency:        currency,
		RequestedAmount: req.RequestedAmount,
		AvailableLimit:  limit.Available.Amount(),
		Choices:         toChoiceResponses(choices),
	}, nil
}

// quoteDates defaults the request date to today and the first due date to
// one month after it.
func (uc *QuoteLoanChoicesUseCase) quoteDates(req dto.QuoteLoanChoicesRequest) (time.Time, time.Time) {
	requestDate := req.RequestDate
	if requestDate.IsZero() {
		requestDate = uc.now()
	}
	firstDue := req.FirstDueDate
	if firstDue.IsZero() {
		firstDue = model.AddMonths(model.CalendarDay(requestDate), 1)
	}
	return requestDate, firstDue
}

func validateCustomerProduct(customerID, productCode string) error {
	if customerID == "" {
		return fmt.Errorf("%w: customer id is required", valueobject.ErrInvalidRequest)
	}
	if productCode == "" {
		return fmt.Errorf("%w: product code is required", valueobject.ErrInvalidRequest)
	}
	return nil
}

func countCapped(choices []model.LoanChoice) int {
	n := 0
	for _, c := range choices {
		if c.Fee.IsCapped {
			n++
		}
	}
	return n
}

func toQuotedChoices(choices []model.LoanChoice) []event.QuotedChoice {
	out := make([]event.QuotedChoice, 0, len(choices))
	for _, c := range choices {
		out = append(out, event.QuotedChoice{
			TenorMonths:        c.TenorMonths,
			Principal:          c.AdjustedPrincipal,
			InstallmentAmount:  c.InstallmentAmount,
			ProvisionAmount:    c.ProvisionAmount,
			DisbursementAmount: c.DisbursementAmount,
			FeeCapped:          c.Fee.IsCapped,
		})
	}
	return out
}

func toChoiceResponses(choices []model.LoanChoice) []dto.LoanChoiceResponse {
	out := make([]dto.LoanChoiceResponse, 0, len(choices))
	for _, c := range choices {
		out = append(out, dto.LoanChoiceResponse{
			TenorMonths:            c.TenorMonths,
			AdjustedPrincipal:      c.AdjustedPrincipal,
			InstallmentAmount:      c.InstallmentAmount,
			FirstInstallmentAmount: c.FirstInstallmentAmount,
			ProvisionAmount:        c.ProvisionAmount,
			DisbursementAmount:     c.DisbursementAmount,
			CashbackAmount:         c.CashbackAmount,
			AvailableLimitAfter:    c.AvailableLimitAfter.Amount(),
			Fee: dto.FeeAdjustmentResponse{
				IsCapped:                     c.Fee.IsCapped,
				DurationDays:                 c.Fee.DurationDays,
				MaxFeeAllowed:                c.Fee.MaxFeeAllowed,
				ComputedTotalFee:             c.Fee.ComputedTotalFee,
				EffectiveProvisionRate:       c.Fee.EffectiveProvisionRate,
				EffectiveMonthlyInterestRate: c.Fee.EffectiveMonthlyInterestRate,
				EffectiveTotalInterestRate:   c.Fee.EffectiveTotalInterestRate,
			},
			Schedule: toInstallmentResponses(c.Schedule),
		})
	}
	return out
}

func toInstallmentResponses(schedule model.PaymentSchedule) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(schedule))
	for _, line := range schedule {
		out = append(out, dto.InstallmentResponse{
			Period:      line.Period,
			DueDate:     line.DueDate,
			Principal:   line.Principal,
			Interest:    line.Interest,
			Installment: line.Installment,
		})
	}
	return out
}

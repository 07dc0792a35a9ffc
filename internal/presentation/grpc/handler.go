package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lendcore/loan-pricing/internal/application/dto"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

type quoter interface {
	Execute(ctx context.Context, req dto.QuoteLoanChoicesRequest) (dto.QuoteLoanChoicesResponse, error)
}

type scheduler interface {
	Execute(ctx context.Context, req dto.GenerateScheduleRequest) (dto.ScheduleResponse, error)
}

type tenorLister interface {
	Execute(ctx context.Context, req dto.SelectTenorsRequest) (dto.SelectTenorsResponse, error)
}

// PricingHandler adapts the pricing use cases to PricingServiceServer.
type PricingHandler struct {
	UnimplementedPricingServiceServer

	quote    quoter
	schedule scheduler
	tenors   tenorLister
	logger   *slog.Logger
}

// NewPricingHandler creates a handler over the three pricing use cases.
func NewPricingHandler(quote quoter, schedule scheduler, tenors tenorLister, logger *slog.Logger) *PricingHandler {
	return &PricingHandler{quote: quote, schedule: schedule, tenors: tenors, logger: logger}
}

func (h *PricingHandler) QuoteLoanChoices(ctx context.Context, req *QuoteLoanChoicesRequest) (*QuoteLoanChoicesResponse, error) {
	amount, err := parseAmount("requested_amount", req.RequestedAmount)
	if err != nil {
		return nil, err
	}
	requestDate, err := parseDate("request_date", req.RequestDate)
	if err != nil {
		return nil, err
	}
	firstDue, err := parseDate("first_due_date", req.FirstDueDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.quote.Execute(ctx, dto.QuoteLoanChoicesRequest{
		CustomerID:      req.CustomerID,
		ProductCode:     req.ProductCode,
		RequestedAmount: amount,
		RequestDate:     requestDate,
		FirstDueDate:    firstDue,
		SelfFunded:      req.SelfFunded,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "QuoteLoanChoices", err)
	}

	out := &QuoteLoanChoicesResponse{
		QuoteID:         resp.QuoteID,
		CustomerID:      resp.CustomerID,
		ProductCode:     resp.ProductCode,
		Currency:        resp.Currency,
		RequestedAmount: resp.RequestedAmount.String(),
		AvailableLimit:  resp.AvailableLimit.String(),
		Choices:         make([]*LoanChoice, 0, len(resp.Choices)),
	}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, toWireChoice(c))
	}
	return out, nil
}

func (h *PricingHandler) GenerateSchedule(ctx context.Context, req *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	principal, err := parseAmount("principal", req.Principal)
	if err != nil {
		return nil, err
	}
	rate, err := parseAmount("monthly_interest_rate", req.MonthlyInterestRate)
	if err != nil {
		return nil, err
	}
	requestDate, err := parseDate("request_date", req.RequestDate)
	if err != nil {
		return nil, err
	}
	firstDue, err := parseDate("first_due_date", req.FirstDueDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.schedule.Execute(ctx, dto.GenerateScheduleRequest{
		LoanID:              req.LoanID,
		Principal:           principal,
		TenorMonths:         int(req.TenorMonths),
		MonthlyInterestRate: rate,
		RequestDate:         requestDate,
		FirstDueDate:        firstDue,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "GenerateSchedule", err)
	}

	return &GenerateScheduleResponse{
		ScheduleID:       resp.ScheduleID,
		Principal:        resp.Principal.String(),
		TenorMonths:      int32(resp.TenorMonths),
		TotalInterest:    resp.TotalInterest.String(),
		TotalInstallment: resp.TotalInstallment.String(),
		Lines:            toWireLines(resp.Lines),
	}, nil
}

func (h *PricingHandler) SelectTenors(ctx context.Context, req *SelectTenorsRequest) (*SelectTenorsResponse, error) {
	amount, err := parseAmount("requested_amount", req.RequestedAmount)
	if err != nil {
		return nil, err
	}

	resp, err := h.tenors.Execute(ctx, dto.SelectTenorsRequest{
		CustomerID:      req.CustomerID,
		ProductCode:     req.ProductCode,
		RequestedAmount: amount,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "SelectTenors", err)
	}

	tenors := make([]int32, 0, len(resp.Tenors))
	for _, t := range resp.Tenors {
		tenors = append(tenors, int32(t))
	}
	return &SelectTenorsResponse{
		CustomerID:  resp.CustomerID,
		ProductCode: resp.ProductCode,
		Tenors:      tenors,
	}, nil
}

// toStatus maps domain errors onto gRPC codes. Internal errors are logged
// and their detail withheld from the caller.
func (h *PricingHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, valueobject.ErrInvalidRequest),
		errors.Is(err, valueobject.ErrInvalidPrincipal),
		errors.Is(err, valueobject.ErrInvalidTenor),
		errors.Is(err, valueobject.ErrInvalidRate),
		errors.Is(err, valueobject.ErrInvalidDuration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		h.logger.ErrorContext(ctx, "pricing request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %q", field, s)
	}
	return d, nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s: %q", field, s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func toWireChoice(c dto.LoanChoiceResponse) *LoanChoice {
	return &LoanChoice{
		TenorMonths:            int32(c.TenorMonths),
		AdjustedPrincipal:      c.AdjustedPrincipal.String(),
		InstallmentAmount:      c.InstallmentAmount.String(),
		FirstInstallmentAmount: c.FirstInstallmentAmount.String(),
		ProvisionAmount:        c.ProvisionAmount.String(),
		DisbursementAmount:     c.DisbursementAmount.String(),
		CashbackAmount:         c.CashbackAmount.String(),
		AvailableLimitAfter:    c.AvailableLimitAfter.String(),
		Fee: &FeeAdjustment{
			IsCapped:                     c.Fee.IsCapped,
			DurationDays:                 int32(c.Fee.DurationDays),
			MaxFeeAllowed:                c.Fee.MaxFeeAllowed.String(),
			ComputedTotalFee:             c.Fee.ComputedTotalFee.String(),
			EffectiveProvisionRate:       c.Fee.EffectiveProvisionRate.String(),
			EffectiveMonthlyInterestRate: c.Fee.EffectiveMonthlyInterestRate.String(),
			EffectiveTotalInterestRate:   c.Fee.EffectiveTotalInterestRate.String(),
		},
		Schedule: toWireLines(c.Schedule),
	}
}

func toWireLines(lines []dto.InstallmentResponse) []*Installment {
	out := make([]*Installment, 0, len(lines))
	for _, l := range lines {
		out = append(out, &Installment{
			Period:      int32(l.Period),
			DueDate:     formatDate(l.DueDate),
			Principal:   l.Principal.String(),
			Interest:    l.Interest.String(),
			Installment: l.Installment.String(),
		})
	}
	return out
}

var _ PricingServiceServer = (*PricingHandler)(nil)

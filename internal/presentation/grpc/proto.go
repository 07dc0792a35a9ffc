package grpc

// Wire types and service descriptor for lendcore.pricing.v1.PricingService.
// Amounts and rates travel as decimal strings, dates as "2006-01-02".

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "lendcore.pricing.v1.PricingService"

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

type QuoteLoanChoicesRequest struct {
	CustomerID      string `json:"customer_id"`
	ProductCode     string `json:"product_code"`
	RequestedAmount string `json:"requested_amount,omitempty"`
	RequestDate     string `json:"request_date,omitempty"`
	FirstDueDate    string `json:"first_due_date,omitempty"`
	SelfFunded      bool   `json:"self_funded,omitempty"`
}

type Installment struct {
	Period      int32  `json:"period"`
	DueDate     string `json:"due_date"`
	Principal   string `json:"principal"`
	Interest    string `json:"interest"`
	Installment string `json:"installment"`
}

type FeeAdjustment struct {
	IsCapped                     bool   `json:"is_capped"`
	DurationDays                 int32  `json:"duration_days"`
	MaxFeeAllowed                string `json:"max_fee_allowed"`
	ComputedTotalFee             string `json:"computed_total_fee"`
	EffectiveProvisionRate       string `json:"effective_provision_rate"`
	EffectiveMonthlyInterestRate string `json:"effective_monthly_interest_rate"`
	EffectiveTotalInterestRate   string `json:"effective_total_interest_rate"`
}

type LoanChoice struct {
	TenorMonths            int32          `json:"tenor_months"`
	AdjustedPrincipal      string         `json:"adjusted_principal"`
	InstallmentAmount      string         `json:"installment_amount"`
	FirstInstallmentAmount string         `json:"first_installment_amount"`
	ProvisionAmount        string         `json:"provision_amount"`
	DisbursementAmount     string         `json:"disbursement_amount"`
	CashbackAmount         string         `json:"cashback_amount"`
	AvailableLimitAfter    string         `json:"available_limit_after"`
	Fee                    *FeeAdjustment `json:"fee"`
	Schedule               []*Installment `json:"schedule"`
}

type QuoteLoanChoicesResponse struct {
	QuoteID         string        `json:"quote_id"`
	CustomerID      string        `json:"customer_id"`
	ProductCode     string        `json:"product_code"`
	Currency        string        `json:"currency"`
	RequestedAmount string        `json:"requested_amount"`
	AvailableLimit  string        `json:"available_limit"`
	Choices         []*LoanChoice `json:"choices"`
}

type GenerateScheduleRequest struct {
	LoanID              string `json:"loan_id,omitempty"`
	Principal           string `json:"principal"`
	TenorMonths         int32  `json:"tenor_months"`
	MonthlyInterestRate string `json:"monthly_interest_rate"`
	RequestDate         string `json:"request_date"`
	FirstDueDate        string `json:"first_due_date"`
}

type GenerateScheduleResponse struct {
	ScheduleID       string         `json:"schedule_id"`
	Principal        string         `json:"principal"`
	TenorMonths      int32          `json:"tenor_months"`
	TotalInterest    string         `json:"total_interest"`
	TotalInstallment string         `json:"total_installment"`
	Lines            []*Installment `json:"lines"`
}

type SelectTenorsRequest struct {
	CustomerID      string `json:"customer_id"`
	ProductCode     string `json:"product_code"`
	RequestedAmount string `json:"requested_amount,omitempty"`
}

type SelectTenorsResponse struct {
	CustomerID  string  `json:"customer_id"`
	ProductCode string  `json:"product_code"`
	Tenors      []int32 `json:"tenors"`
}

// PricingServiceServer is the server API for PricingService.
type PricingServiceServer interface {
	QuoteLoanChoices(context.Context, *QuoteLoanChoicesRequest) (*QuoteLoanChoicesResponse, error)
	GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error)
	SelectTenors(context.Context, *SelectTenorsRequest) (*SelectTenorsResponse, error)
	mustEmbedUnimplementedPricingServiceServer()
}

// UnimplementedPricingServiceServer provides forward-compatible default implementations.
type UnimplementedPricingServiceServer struct{}

func (UnimplementedPricingServiceServer) QuoteLoanChoices(context.Context, *QuoteLoanChoicesRequest) (*QuoteLoanChoicesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteLoanChoices not implemented")
}
func (UnimplementedPricingServiceServer) GenerateSchedule(context.Context, *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedPricingServiceServer) SelectTenors(context.Context, *SelectTenorsRequest) (*SelectTenorsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SelectTenors not implemented")
}
func (UnimplementedPricingServiceServer) mustEmbedUnimplementedPricingServiceServer() {}

// RegisterPricingServiceServer registers srv with s.
func RegisterPricingServiceServer(s grpclib.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&pricingServiceDesc, srv)
}

var pricingServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "QuoteLoanChoices", Handler: unaryHandler("QuoteLoanChoices", PricingServiceServer.QuoteLoanChoices)},
		{MethodName: "GenerateSchedule", Handler: unaryHandler("GenerateSchedule", PricingServiceServer.GenerateSchedule)},
		{MethodName: "SelectTenors", Handler: unaryHandler("SelectTenors", PricingServiceServer.SelectTenors)},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler builds the decode/intercept/dispatch glue for one method.
func unaryHandler[Req, Resp any](
	method string,
	call func(PricingServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PricingServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PricingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

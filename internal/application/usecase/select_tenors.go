package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/lendcore/loan-pricing/internal/application/dto"
	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// SelectTenorsUseCase lists eligible tenors without pricing them.
type SelectTenorsUseCase struct {
	limits   port.CreditLimitProvider
	catalog  port.ProductCatalog
	selector *service.TenorSelector
	logger   *slog.Logger
}

// NewSelectTenorsUseCase wires dependencies.
func NewSelectTenorsUseCase(
	limits port.CreditLimitProvider,
	catalog port.ProductCatalog,
	selector *service.TenorSelector,
	logger *slog.Logger,
) *SelectTenorsUseCase {
	return &SelectTenorsUseCase{
		limits:   limits,
		catalog:  catalog,
		selector: selector,
		logger:   logger,
	}
}

// Execute returns the eligible tenors in ascending order.
func (uc *SelectTenorsUseCase) Execute(
	ctx context.Context,
	req dto.SelectTenorsRequest,
) (resp dto.SelectTenorsResponse, err error) {
	ctx, span := tracer.Start(ctx, "SelectTenors")
	defer func() { finishSpan(span, err) }()

	if err := validateCustomerProduct(req.CustomerID, req.ProductCode); err != nil {
		return dto.SelectTenorsResponse{}, err
	}
	if req.RequestedAmount.IsNegative() {
		return dto.SelectTenorsResponse{}, fmt.Errorf("%w: requested amount %s", valueobject.ErrInvalidPrincipal, req.RequestedAmount)
	}

	limit, err := uc.limits.AvailableLimit(ctx, req.CustomerID)
	if err != nil {
		return dto.SelectTenorsResponse{}, fmt.Errorf("fetch credit limit: %w", err)
	}
	terms, err := uc.catalog.ProductTerms(ctx, req.ProductCode)
	if err != nil {
		return dto.SelectTenorsResponse{}, fmt.Errorf("fetch product terms: %w", err)
	}

	tenors := uc.selector.Select(service.TenorQuery{
		AvailableLimit:  limit.Available.Amount(),
		RequestedAmount: req.RequestedAmount,
	}, terms)

	span.SetAttributes(attribute.Int("tenors", len(tenors)))
	uc.logger.DebugContext(ctx, "tenors selected",
		"customer_id", req.CustomerID,
		"product_code", req.ProductCode,
		"tenors", tenors,
	)

	return dto.SelectTenorsResponse{
		CustomerID:  req.CustomerID,
		ProductCode: req.ProductCode,
		Tenors:      tenors,
	}, nil
}

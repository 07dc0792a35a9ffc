package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/event"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

// --- Mock implementations ---

type mockCreditLimitProvider struct {
	availableLimitFunc func(ctx context.Context, customerID string) (valueobject.CreditLimit, error)
}

func (m *mockCreditLimitProvider) AvailableLimit(ctx context.Context, customerID string) (valueobject.CreditLimit, error) {
	if m.availableLimitFunc != nil {
		return m.availableLimitFunc(ctx, customerID)
	}
	return valueobject.CreditLimit{
		CustomerID: customerID,
		Available:  money.New(decimal.NewFromInt(10_000_000), money.IDR),
	}, nil
}

type mockProductCatalog struct {
	productTermsFunc func(ctx context.Context, productCode string) (valueobject.ProductTerms, error)
}

func (m *mockProductCatalog) ProductTerms(ctx context.Context, productCode string) (valueobject.ProductTerms, error) {
	if m.productTermsFunc != nil {
		return m.productTermsFunc(ctx, productCode)
	}
	return testTerms(), nil
}

type mockFeeRuleProvider struct {
	currentFeeRuleFunc func(ctx context.Context) (valueobject.FeeRule, error)
}

func (m *mockFeeRuleProvider) CurrentFeeRule(ctx context.Context) (valueobject.FeeRule, error) {
	if m.currentFeeRuleFunc != nil {
		return m.currentFeeRuleFunc(ctx)
	}
	return valueobject.MustFeeRule(decimal.RequireFromString("0.004")), nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Fixtures ---

func testTerms() valueobject.ProductTerms {
	return valueobject.ProductTerms{
		Code:                "J1",
		MonthlyInterestRate: decimal.RequireFromString("0.04"),
		ProvisionRate:       decimal.RequireFromString("0.05"),
		CashbackRate:        decimal.RequireFromString("0.01"),
		MinTenor:            1,
		MaxTenor:            6,
		ProbeAmount:         decimal.NewFromInt(2_000_000),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decimalEqual(want string, got decimal.Decimal) bool {
	return got.Equal(decimal.RequireFromString(want))
}

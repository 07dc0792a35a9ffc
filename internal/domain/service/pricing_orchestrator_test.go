package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/domain/model"
	"github.com/lendcore/loan-pricing/internal/domain/service"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
	"github.com/lendcore/loan-pricing/pkg/money"
)

func newOrchestrator() *service.PricingOrchestrator {
	return service.NewPricingOrchestrator(service.NewFeeRuleAdjuster(), service.NewAmortizationEngine())
}

func mustRequest(t *testing.T, amount int64, monthly, provision string, due time.Time, selfFunded bool) model.LoanRequest {
	t.Helper()
	req, err := model.NewLoanRequest(decimal.NewFromInt(amount), d(monthly), d(provision),
		date(2024, 1, 1), due, selfFunded)
	require.NoError(t, err)
	return req
}

func limits(available int64, cashback string) service.PricingLimits {
	return service.PricingLimits{
		AvailableLimit: money.New(decimal.NewFromInt(available), money.IDR),
		CashbackRate:   d(cashback),
	}
}

func TestPrice_SelfFundedUncapped(t *testing.T) {
	req := mustRequest(t, 8_000_000, "0.04", "0.05", date(2024, 1, 31), true)

	choices, err := newOrchestrator().Price(req, []int{6}, valueobject.MustFeeRule(d("0.004")), limits(10_000_000, "0.01"))
	require.NoError(t, err)
	require.Len(t, choices, 1)

	c := choices[0]
	assert.Equal(t, 6, c.TenorMonths)
	assert.False(t, c.Fee.IsCapped)
	assertDecimal(t, "8000000", c.AdjustedPrincipal)
	assertDecimal(t, "1653333", c.InstallmentAmount)
	assertDecimal(t, "1653333", c.FirstInstallmentAmount)
	assertDecimal(t, "400000", c.ProvisionAmount)
	assertDecimal(t, "7600000", c.DisbursementAmount)
	assertDecimal(t, "80000", c.CashbackAmount)
	assertDecimal(t, "2000000", c.AvailableLimitAfter.Amount())
	assert.Len(t, c.Schedule, 6)
	assertDecimal(t, "8000000", c.Schedule.TotalPrincipal())
}

func TestPrice_FeeOnTopGrossesUpPrincipal(t *testing.T) {
	req := mustRequest(t, 1_900_000, "0.04", "0.05", date(2024, 1, 31), false)

	choices, err := newOrchestrator().Price(req, []int{2}, valueobject.MustFeeRule(d("0.004")), limits(5_000_000, "0"))
	require.NoError(t, err)
	require.Len(t, choices, 1)

	c := choices[0]
	assertDecimal(t, "2000000", c.AdjustedPrincipal)
	assertDecimal(t, "100000", c.ProvisionAmount)
	assertDecimal(t, "1900000", c.DisbursementAmount)
	assertDecimal(t, "1080000", c.InstallmentAmount)
	assertDecimal(t, "0", c.CashbackAmount)
	assertDecimal(t, "3000000", c.AvailableLimitAfter.Amount())
}

func TestPrice_CappedProvisionRecomputesPrincipal(t *testing.T) {
	rule := valueobject.MustFeeRule(d("0.001"))

	t.Run("fee on top", func(t *testing.T) {
		req := mustRequest(t, 970_000, "0.04", "0.05", date(2024, 1, 31), false)

		choices, err := newOrchestrator().Price(req, []int{1}, rule, limits(5_000_000, "0"))
		require.NoError(t, err)
		require.Len(t, choices, 1)

		c := choices[0]
		assert.True(t, c.Fee.IsCapped)
		assertDecimal(t, "0.03", c.Fee.EffectiveProvisionRate)
		assertDecimal(t, "1000000", c.AdjustedPrincipal)
		assertDecimal(t, "30000", c.ProvisionAmount)
		assertDecimal(t, "970000", c.DisbursementAmount)
		require.Len(t, c.Schedule, 1)
		assertDecimal(t, "0", c.Schedule[0].Interest)
		assertDecimal(t, "1000000", c.InstallmentAmount)
	})

	t.Run("self funded keeps principal", func(t *testing.T) {
		req := mustRequest(t, 970_000, "0.04", "0.05", date(2024, 1, 31), true)

		choices, err := newOrchestrator().Price(req, []int{1}, rule, limits(5_000_000, "0"))
		require.NoError(t, err)
		require.Len(t, choices, 1)

		c := choices[0]
		assertDecimal(t, "970000", c.AdjustedPrincipal)
		assertDecimal(t, "29100", c.ProvisionAmount)
		assertDecimal(t, "940900", c.DisbursementAmount)
	})
}

func TestPrice_KeepsTenorOrder(t *testing.T) {
	req := mustRequest(t, 3_000_000, "0.03", "0.05", date(2024, 1, 31), true)

	choices, err := newOrchestrator().Price(req, []int{3, 1, 2}, valueobject.MustFeeRule(d("0.004")), limits(5_000_000, "0"))
	require.NoError(t, err)
	require.Len(t, choices, 3)

	assert.Equal(t, 3, choices[0].TenorMonths)
	assert.Equal(t, 1, choices[1].TenorMonths)
	assert.Equal(t, 2, choices[2].TenorMonths)
}

func TestPrice_EmptyTenors(t *testing.T) {
	req := mustRequest(t, 3_000_000, "0.03", "0.05", date(2024, 1, 31), true)

	choices, err := newOrchestrator().Price(req, nil, valueobject.MustFeeRule(d("0.004")), limits(5_000_000, "0"))
	require.NoError(t, err)
	assert.NotNil(t, choices)
	assert.Empty(t, choices)
}

func TestPrice_InvalidTenor(t *testing.T) {
	req := mustRequest(t, 3_000_000, "0.03", "0.05", date(2024, 1, 31), true)

	_, err := newOrchestrator().Price(req, []int{1, 0}, valueobject.MustFeeRule(d("0.004")), limits(5_000_000, "0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, valueobject.ErrInvalidTenor)
	assert.Contains(t, err.Error(), "price tenor 0")
}

func TestPrincipalFor(t *testing.T) {
	assertDecimal(t, "1000000", service.PrincipalFor(decimal.NewFromInt(1_000_000), d("0.05"), true))
	assertDecimal(t, "1000000", service.PrincipalFor(decimal.NewFromInt(1_000_000), decimal.Zero, false))
	assertDecimal(t, "1021053", service.PrincipalFor(decimal.NewFromInt(970_000), d("0.05"), false))
}

func TestNewLoanRequest_Validation(t *testing.T) {
	start, due := date(2024, 1, 1), date(2024, 1, 31)

	_, err := model.NewLoanRequest(decimal.Zero, d("0.04"), d("0.05"), start, due, false)
	assert.ErrorIs(t, err, valueobject.ErrInvalidPrincipal)

	_, err = model.NewLoanRequest(million, d("-0.04"), d("0.05"), start, due, false)
	assert.ErrorIs(t, err, valueobject.ErrInvalidRate)

	_, err = model.NewLoanRequest(million, d("0.04"), d("1"), start, due, false)
	assert.ErrorIs(t, err, valueobject.ErrInvalidRate)

	_, err = model.NewLoanRequest(million, d("0.04"), d("0.05"), due, start, false)
	assert.ErrorIs(t, err, valueobject.ErrInvalidDuration)
}

func TestPrice_FeeOnTopStaysWithinLimit(t *testing.T) {
	req := mustRequest(t, 5_000_000, "0.04", "0.05", date(2024, 1, 31), false)

	choices, err := newOrchestrator().Price(req, []int{3}, valueobject.MustFeeRule(d("0.004")), limits(5_000_000, "0"))
	require.NoError(t, err)
	require.Len(t, choices, 1)

	c := choices[0]
	assertDecimal(t, "5000000", c.AdjustedPrincipal)
	assertDecimal(t, "250000", c.ProvisionAmount)
	assertDecimal(t, "4750000", c.DisbursementAmount)
	assertDecimal(t, "1866666", c.InstallmentAmount)
	assertDecimal(t, "0", c.AvailableLimitAfter.Amount())
	assertDecimal(t, "5000000", c.Schedule.TotalPrincipal())
}

func TestPrice_NeverExceedsLimit(t *testing.T) {
	tests := []struct {
		name       string
		requested  int64
		limit      int64
		provision  string
		selfFunded bool
	}{
		{name: "fee on top at the limit", requested: 3_000_000, limit: 3_000_000, provision: "0.05"},
		{name: "fee on top just under the limit", requested: 2_990_000, limit: 3_000_000, provision: "0.07"},
		{name: "fee on top odd limit", requested: 1_234_567, limit: 1_234_567, provision: "0.033"},
		{name: "self funded above the limit", requested: 4_000_000, limit: 3_000_000, provision: "0.05", selfFunded: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mustRequest(t, tt.requested, "0.03", tt.provision, date(2024, 1, 31), tt.selfFunded)

			choices, err := newOrchestrator().Price(req, []int{1, 3, 6}, valueobject.MustFeeRule(d("0.004")), limits(tt.limit, "0"))
			require.NoError(t, err)

			for _, c := range choices {
				assert.True(t, c.AdjustedPrincipal.LessThanOrEqual(decimal.NewFromInt(tt.limit)),
					"tenor %d principal %s", c.TenorMonths, c.AdjustedPrincipal)
				assert.False(t, c.AvailableLimitAfter.Amount().IsNegative(), "tenor %d", c.TenorMonths)
			}
		})
	}
}

func TestPrice_CappedFeeWithinMaxFee(t *testing.T) {
	req := mustRequest(t, 1_000_000, "0.06", "0.05", date(2024, 1, 31), true)

	choices, err := newOrchestrator().Price(req, []int{6}, valueobject.MustFeeRule(d("0.002")), limits(5_000_000, "0"))
	require.NoError(t, err)
	require.Len(t, choices, 1)

	c := choices[0]
	require.True(t, c.Fee.IsCapped)
	charged := c.ProvisionAmount.Add(c.Schedule.TotalInterest())
	allowed := c.Fee.MaxFeeAllowed.Mul(c.AdjustedPrincipal)
	assertDecimal(t, "355996", charged)
	assert.True(t, charged.LessThanOrEqual(allowed), "charged %s, allowed %s", charged, allowed)
}

func TestMaxRequestFor(t *testing.T) {
	assertDecimal(t, "4750000", service.MaxRequestFor(decimal.NewFromInt(5_000_000), d("0.05"), false))
	assertDecimal(t, "5000000", service.MaxRequestFor(decimal.NewFromInt(5_000_000), d("0.05"), true))
	assertDecimal(t, "5000000", service.MaxRequestFor(decimal.NewFromInt(5_000_000), decimal.Zero, false))
	assertDecimal(t, "1193826", service.MaxRequestFor(decimal.NewFromInt(1_234_567), d("0.033"), false))

	// Fractional limits are floored before the gross-up is undone.
	maxRequest := service.MaxRequestFor(d("1000.6"), d("0.05"), false)
	assertDecimal(t, "950", maxRequest)
	assertDecimal(t, "1000", service.PrincipalFor(maxRequest, d("0.05"), false))
}

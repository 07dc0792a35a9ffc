package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

func TestNewFeeRule(t *testing.T) {
	r, err := valueobject.NewFeeRule(decimal.RequireFromString("0.002"))
	require.NoError(t, err)
	assert.True(t, r.MaxFeeFor(180).Equal(decimal.RequireFromString("0.36")))

	for _, bad := range []string{"0", "-0.001", "1", "1.5"} {
		_, err := valueobject.NewFeeRule(decimal.RequireFromString(bad))
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig, "rate %s", bad)
	}
}

func TestParseFeeRuleParameters(t *testing.T) {
	t.Run("percent per day", func(t *testing.T) {
		r, err := valueobject.ParseFeeRuleParameters([]byte(`{"daily_max_fee": 0.2}`))
		require.NoError(t, err)
		assert.True(t, r.DailyMaxFeeRate().Equal(decimal.RequireFromString("0.002")))
	})

	t.Run("quoted number", func(t *testing.T) {
		r, err := valueobject.ParseFeeRuleParameters([]byte(`{"daily_max_fee": "0.4"}`))
		require.NoError(t, err)
		assert.True(t, r.DailyMaxFeeRate().Equal(decimal.RequireFromString("0.004")))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := valueobject.ParseFeeRuleParameters([]byte(`{"other": 1}`))
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := valueobject.ParseFeeRuleParameters([]byte(`{`))
		assert.ErrorIs(t, err, valueobject.ErrInvalidConfig)
	})
}

func validTerms() valueobject.ProductTerms {
	return valueobject.ProductTerms{
		Code:                "J1",
		MonthlyInterestRate: decimal.RequireFromString("0.04"),
		ProvisionRate:       decimal.RequireFromString("0.05"),
		CashbackRate:        decimal.RequireFromString("0.01"),
		MinTenor:            1,
		MaxTenor:            6,
	}
}

func TestProductTerms_Validate(t *testing.T) {
	require.NoError(t, validTerms().Validate())

	tests := []struct {
		name   string
		mutate func(p *valueobject.ProductTerms)
	}{
		{"missing code", func(p *valueobject.ProductTerms) { p.Code = "" }},
		{"zero min tenor", func(p *valueobject.ProductTerms) { p.MinTenor = 0 }},
		{"max below min", func(p *valueobject.ProductTerms) { p.MinTenor, p.MaxTenor = 4, 3 }},
		{"max above tenor ceiling", func(p *valueobject.ProductTerms) { p.MaxTenor = valueobject.MaxTenorMonths + 1 }},
		{"negative interest", func(p *valueobject.ProductTerms) { p.MonthlyInterestRate = decimal.RequireFromString("-0.01") }},
		{"provision of one", func(p *valueobject.ProductTerms) { p.ProvisionRate = decimal.NewFromInt(1) }},
		{"negative cashback", func(p *valueobject.ProductTerms) { p.CashbackRate = decimal.RequireFromString("-0.1") }},
		{"negative probe", func(p *valueobject.ProductTerms) { p.ProbeAmount = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validTerms()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), valueobject.ErrInvalidConfig)
		})
	}
}

func TestProductTerms_SmallAmountThreshold(t *testing.T) {
	p := validTerms()
	assert.True(t, p.SmallAmountThreshold().Equal(decimal.NewFromInt(100_000)))

	p.MinAmountThreshold = decimal.NewFromInt(250_000)
	assert.True(t, p.SmallAmountThreshold().Equal(decimal.NewFromInt(250_000)))
}

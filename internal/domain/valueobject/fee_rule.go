package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// FeeRule – regulatory (OJK) maximum fee configuration
// ---------------------------------------------------------------------------

// FeeRule caps combined provision and interest fees at a daily rate times
// the loan duration in days. It is an immutable snapshot handed to the
// Fee-Rule Adjuster on every call.
type FeeRule struct {
	dailyMaxFeeRate decimal.Decimal
}

// NewFeeRule validates a daily max fee rate expressed as a fraction
// (0.002 = 0.2% per day).
func NewFeeRule(dailyMaxFeeRate decimal.Decimal) (FeeRule, error) {
	if !dailyMaxFeeRate.IsPositive() || dailyMaxFeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return FeeRule{}, fmt.Errorf("%w: daily max fee rate %s must be in (0, 1)", ErrInvalidConfig, dailyMaxFeeRate)
	}
	return FeeRule{dailyMaxFeeRate: dailyMaxFeeRate}, nil
}

// MustFeeRule is NewFeeRule for constants and tests.
func MustFeeRule(dailyMaxFeeRate decimal.Decimal) FeeRule {
	r, err := NewFeeRule(dailyMaxFeeRate)
	if err != nil {
		panic(err)
	}
	return r
}

// DailyMaxFeeRate returns the per-day cap as a fraction.
func (r FeeRule) DailyMaxFeeRate() decimal.Decimal { return r.dailyMaxFeeRate }

// IsZero reports whether the rule was never initialised.
func (r FeeRule) IsZero() bool { return r.dailyMaxFeeRate.IsZero() }

// MaxFeeFor returns the maximum total fee rate allowed for a loan lasting days.
func (r FeeRule) MaxFeeFor(days int) decimal.Decimal {
	return r.dailyMaxFeeRate.Mul(decimal.NewFromInt(int64(days)))
}

// feeRuleParameters mirrors the feature-setting parameters blob, where the
// daily max fee is stored in percent.
type feeRuleParameters struct {
	DailyMaxFee *decimal.Decimal `json:"daily_max_fee"`
}

// ParseFeeRuleParameters decodes a feature-setting parameters document such
// as {"daily_max_fee": 0.2} (percent per day) into a FeeRule.
func ParseFeeRuleParameters(raw []byte) (FeeRule, error) {
	var p feeRuleParameters
	if err := json.Unmarshal(raw, &p); err != nil {
		return FeeRule{}, fmt.Errorf("%w: decode fee rule parameters: %v", ErrInvalidConfig, err)
	}
	if p.DailyMaxFee == nil {
		return FeeRule{}, fmt.Errorf("%w: daily_max_fee is missing", ErrInvalidConfig)
	}
	return NewFeeRule(p.DailyMaxFee.Div(hundred))
}

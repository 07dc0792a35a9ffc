package adapter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// StaticFeeRuleProvider always returns the same rule. It implements
// port.FeeRuleProvider for environments without a feature-settings table.
type StaticFeeRuleProvider struct {
	rule valueobject.FeeRule
}

// NewStaticFeeRuleProvider returns rule on every call.
func NewStaticFeeRuleProvider(rule valueobject.FeeRule) *StaticFeeRuleProvider {
	return &StaticFeeRuleProvider{rule: rule}
}

// CurrentFeeRule implements port.FeeRuleProvider.
func (p *StaticFeeRuleProvider) CurrentFeeRule(context.Context) (valueobject.FeeRule, error) {
	return p.rule, nil
}

// FallbackFeeRuleProvider serves the configured default when the primary
// provider has no rule. Lookup failures other than not-found are returned,
// so an outage never silently loosens the cap.
type FallbackFeeRuleProvider struct {
	primary  port.FeeRuleProvider
	fallback valueobject.FeeRule
	logger   *slog.Logger
}

// NewFallbackFeeRuleProvider wraps primary with a default rule.
func NewFallbackFeeRuleProvider(primary port.FeeRuleProvider, fallback valueobject.FeeRule, logger *slog.Logger) *FallbackFeeRuleProvider {
	return &FallbackFeeRuleProvider{primary: primary, fallback: fallback, logger: logger}
}

// CurrentFeeRule implements port.FeeRuleProvider.
func (p *FallbackFeeRuleProvider) CurrentFeeRule(ctx context.Context) (valueobject.FeeRule, error) {
	rule, err := p.primary.CurrentFeeRule(ctx)
	if errors.Is(err, valueobject.ErrNotFound) {
		p.logger.WarnContext(ctx, "no fee rule configured, using default",
			"daily_max_fee_rate", p.fallback.DailyMaxFeeRate().String())
		return p.fallback, nil
	}
	return rule, err
}

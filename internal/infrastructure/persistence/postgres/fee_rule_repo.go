package postgres

import (
	"context"
	"fmt"

	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// DefaultFeeRuleFeature is the feature_settings row holding the OJK fee cap.
const DefaultFeeRuleFeature = "ojk_max_fee"

// FeeRuleRepo implements port.FeeRuleProvider from the feature_settings table.
type FeeRuleRepo struct {
	db      querier
	feature string
}

// NewFeeRuleRepo reads the active parameters of feature.
func NewFeeRuleRepo(db querier, feature string) *FeeRuleRepo {
	if feature == "" {
		feature = DefaultFeeRuleFeature
	}
	return &FeeRuleRepo{db: db, feature: feature}
}

// CurrentFeeRule returns the active fee cap. An inactive or missing setting
// yields valueobject.ErrNotFound.
func (r *FeeRuleRepo) CurrentFeeRule(ctx context.Context) (valueobject.FeeRule, error) {
	const query = `
		SELECT parameters
		FROM feature_settings
		WHERE feature_name = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var raw []byte
	if err := r.db.QueryRow(ctx, query, r.feature).Scan(&raw); err != nil {
		return valueobject.FeeRule{}, notFound(err, "feature setting", r.feature)
	}

	rule, err := valueobject.ParseFeeRuleParameters(raw)
	if err != nil {
		return valueobject.FeeRule{}, fmt.Errorf("feature setting %q: %w", r.feature, err)
	}
	return rule, nil
}

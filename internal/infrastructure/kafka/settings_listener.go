package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	pkgkafka "github.com/lendcore/loan-pricing/pkg/kafka"
)

// Invalidator drops a cached value.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// settingChanged is the change notification emitted by the feature-settings
// admin when a setting is edited.
type settingChanged struct {
	FeatureName string `json:"feature_name"`
}

// SettingsListener invalidates the fee rule cache when the fee-rule feature
// setting changes.
type SettingsListener struct {
	feature string
	cache   Invalidator
	logger  *slog.Logger
}

// NewSettingsListener watches for changes to feature.
func NewSettingsListener(feature string, cache Invalidator, logger *slog.Logger) *SettingsListener {
	return &SettingsListener{feature: feature, cache: cache, logger: logger}
}

// Handle is a pkgkafka.Handler. Undecodable messages are logged and
// skipped so a poison message cannot stall the partition.
func (l *SettingsListener) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var change settingChanged
	if err := json.Unmarshal(msg.Value, &change); err != nil {
		l.logger.WarnContext(ctx, "skipping undecodable settings message", "error", err)
		return nil
	}
	if change.FeatureName != l.feature {
		return nil
	}
	return l.cache.Invalidate(ctx)
}

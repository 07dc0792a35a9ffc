package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/lendcore/loan-pricing/internal/domain/port"
	"github.com/lendcore/loan-pricing/internal/domain/valueobject"
)

// FeeRuleKey is the redis key holding the cached daily max fee rate.
const FeeRuleKey = "loan-pricing:fee-rule:daily-max-fee-rate"

// FeeRuleCache is a read-through redis cache in front of a FeeRuleProvider.
// Redis failures degrade to reading the source directly.
type FeeRuleCache struct {
	source port.FeeRuleProvider
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewFeeRuleCache caches source's rule for ttl.
func NewFeeRuleCache(source port.FeeRuleProvider, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *FeeRuleCache {
	return &FeeRuleCache{source: source, client: client, ttl: ttl, logger: logger}
}

// CurrentFeeRule implements port.FeeRuleProvider.
func (c *FeeRuleCache) CurrentFeeRule(ctx context.Context) (valueobject.FeeRule, error) {
	if rule, ok := c.cached(ctx); ok {
		return rule, nil
	}

	rule, err := c.source.CurrentFeeRule(ctx)
	if err != nil {
		return valueobject.FeeRule{}, err
	}

	if err := c.client.Set(ctx, FeeRuleKey, rule.DailyMaxFeeRate().String(), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "fee rule cache write failed", "error", err)
	}
	return rule, nil
}

// Invalidate drops the cached rule so the next read goes to the source.
func (c *FeeRuleCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, FeeRuleKey).Err(); err != nil {
		return fmt.Errorf("invalidate fee rule cache: %w", err)
	}
	c.logger.InfoContext(ctx, "fee rule cache invalidated")
	return nil
}

func (c *FeeRuleCache) cached(ctx context.Context) (valueobject.FeeRule, bool) {
	raw, err := c.client.Get(ctx, FeeRuleKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "fee rule cache read failed", "error", err)
		}
		return valueobject.FeeRule{}, false
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding malformed cached fee rule", "value", raw)
		return valueobject.FeeRule{}, false
	}
	rule, err := valueobject.NewFeeRule(rate)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding invalid cached fee rule", "error", err)
		return valueobject.FeeRule{}, false
	}
	return rule, true
}

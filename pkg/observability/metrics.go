package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes an OpenTelemetry MeterProvider backed by a private
// Prometheus registry. Returns the provider and an HTTP handler for /metrics.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
		promexporter.WithNamespace(prometheusNamespace(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	return provider, handler, nil
}

func prometheusNamespace(service string) string {
	out := make([]rune, 0, len(service))
	for _, r := range service {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// PricingMetrics holds the counters recorded by the pricing use cases.
type PricingMetrics struct {
	quotes       metric.Int64Counter
	choices      metric.Int64Counter
	emptyQuotes  metric.Int64Counter
	cappedTenors metric.Int64Counter
	schedules    metric.Int64Counter
}

// NewPricingMetrics registers the pricing instruments on meter.
func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	var (
		m   PricingMetrics
		err error
	)
	if m.quotes, err = meter.Int64Counter("pricing.quotes",
		metric.WithDescription("Loan choice quotes produced")); err != nil {
		return nil, err
	}
	if m.choices, err = meter.Int64Counter("pricing.choices",
		metric.WithDescription("Priced tenors returned across all quotes")); err != nil {
		return nil, err
	}
	if m.emptyQuotes, err = meter.Int64Counter("pricing.quotes.empty",
		metric.WithDescription("Quotes with no eligible tenor")); err != nil {
		return nil, err
	}
	if m.cappedTenors, err = meter.Int64Counter("pricing.tenors.capped",
		metric.WithDescription("Priced tenors whose fees were reduced by the daily fee cap")); err != nil {
		return nil, err
	}
	if m.schedules, err = meter.Int64Counter("pricing.schedules",
		metric.WithDescription("Payment schedules generated")); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordQuote counts one quote of choices priced tenors, capped of which hit the fee cap.
func (m *PricingMetrics) RecordQuote(ctx context.Context, productCode string, choices, capped int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("product", productCode))
	m.quotes.Add(ctx, 1, attrs)
	m.choices.Add(ctx, int64(choices), attrs)
	m.cappedTenors.Add(ctx, int64(capped), attrs)
	if choices == 0 {
		m.emptyQuotes.Add(ctx, 1, attrs)
	}
}

// RecordSchedule counts one generated schedule.
func (m *PricingMetrics) RecordSchedule(ctx context.Context, tenorMonths int) {
	if m == nil {
		return
	}
	m.schedules.Add(ctx, 1, metric.WithAttributes(attribute.Int("tenor_months", tenorMonths)))
}

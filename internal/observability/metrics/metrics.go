package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments for the calculation engine.
type Metrics struct {
	feeCalculations   metric.Int64Counter
	cacheHits         metric.Int64Counter
	cacheMisses       metric.Int64Counter
	debounceCoalesced metric.Int64Counter
	obligationChecks  metric.Int64Counter
	rateFallbacks     metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "packlane"
	}
	meter := provider.Meter(name)

	feeCalculations, err := meter.Int64Counter("packlane_fee_calculations_total")
	if err != nil {
		return nil, err
	}
	cacheHits, err := meter.Int64Counter("packlane_realtime_cache_hits_total")
	if err != nil {
		return nil, err
	}
	cacheMisses, err := meter.Int64Counter("packlane_realtime_cache_misses_total")
	if err != nil {
		return nil, err
	}
	debounceCoalesced, err := meter.Int64Counter("packlane_realtime_debounce_coalesced_total")
	if err != nil {
		return nil, err
	}
	obligationChecks, err := meter.Int64Counter("packlane_obligation_evaluations_total")
	if err != nil {
		return nil, err
	}
	rateFallbacks, err := meter.Int64Counter("packlane_rate_fallbacks_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		feeCalculations:   feeCalculations,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		debounceCoalesced: debounceCoalesced,
		obligationChecks:  obligationChecks,
		rateFallbacks:     rateFallbacks,
	}, nil
}

// RecordFeeCalculation increments fee calculation counts per region.
func (m *Metrics) RecordFeeCalculation(ctx context.Context, region string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("region", strings.TrimSpace(region)))
	m.feeCalculations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheHit increments realtime cache hit counts.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.cacheHits.Add(ctx, 1)
}

// RecordCacheMiss increments realtime cache miss counts.
func (m *Metrics) RecordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.cacheMisses.Add(ctx, 1)
}

// RecordDebounceCoalesced counts superseded debounce requests.
func (m *Metrics) RecordDebounceCoalesced(ctx context.Context) {
	if m == nil {
		return
	}
	m.debounceCoalesced.Add(ctx, 1)
}

// RecordObligationEvaluation increments obligation evaluation counts.
func (m *Metrics) RecordObligationEvaluation(ctx context.Context, jurisdiction string, obligated bool) {
	if m == nil {
		return
	}
	result := "not_obligated"
	if obligated {
		result = "obligated"
	}
	attrs := FilterAttributes(
		attribute.String("jurisdiction", strings.TrimSpace(jurisdiction)),
		attribute.String("result", result),
	)
	m.obligationChecks.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateFallback counts rate lookups that fell back to a default.
func (m *Metrics) RecordRateFallback(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(kind)))
	m.rateFallbacks.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"region":       {},
	"jurisdiction": {},
	"endpoint":     {},
	"status_code":  {},
	"result":       {},
	"reason":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

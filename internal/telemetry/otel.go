// Package telemetry exports agent counters over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"snmpagent/internal/passpersist"
)

const (
	meterName        = "snmpagent"
	defaultInterval  = 30 * time.Second
	shutdownTimeout  = 5 * time.Second
	serviceAttribute = "snmpagent.service"
)

// Config describes where and how often counters are pushed
type Config struct {
	Endpoint    string
	Insecure    bool
	Interval    time.Duration
	ServiceKey  string
	ServiceName string
	Version     string
}

// StatsSource is read on every collection
type StatsSource interface {
	Snapshot() passpersist.Stats
}

// Exporter owns the meter provider for one agent process
type Exporter struct {
	provider *sdkmetric.MeterProvider
	once     sync.Once
}

// =============================================================================
// Setup
// =============================================================================

// Start creates an OTLP/HTTP exporter that periodically pushes stats.
// Endpoint may be "host:port" or a full URL.
func Start(ctx context.Context, cfg Config, stats StatsSource) (*Exporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTLP endpoint is required")
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithTimeout(10 * time.Second)}
	if strings.Contains(cfg.Endpoint, "://") {
		opts = append(opts, otlpmetrichttp.WithEndpointURL(cfg.Endpoint))
	} else {
		opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))
	return newExporter(reader, newResource(cfg), stats)
}

func newResource(cfg Config) *resource.Resource {
	hostname, _ := os.Hostname()
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	// semconv schema only; resource.Default() carries a newer schema URL
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(meterName),
		semconv.ServiceVersion(version),
		semconv.ServiceInstanceID(uuid.NewString()),
		semconv.HostName(hostname),
		attribute.String(serviceAttribute, cfg.ServiceKey),
		attribute.String("snmpagent.service.name", cfg.ServiceName),
	)
}

func newExporter(reader sdkmetric.Reader, res *resource.Resource, stats StatsSource) (*Exporter, error) {
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	if err := register(provider.Meter(meterName), stats); err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &Exporter{provider: provider}, nil
}

// =============================================================================
// Instruments
// =============================================================================

func register(meter metric.Meter, stats StatsSource) error {
	_, err := meter.Int64ObservableCounter(
		"snmpagent.requests",
		metric.WithDescription("GET and SET requests served"),
		metric.WithUnit("{request}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(stats.Snapshot().Requests)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	_, err = meter.Int64ObservableCounter(
		"snmpagent.errors",
		metric.WithDescription("Requests that failed with a runtime fault"),
		metric.WithUnit("{error}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(stats.Snapshot().Errors)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	_, err = meter.Int64ObservableGauge(
		"snmpagent.log_level",
		metric.WithDescription("Current log level, reported as 1 on the active level"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(1, metric.WithAttributes(attribute.String("level", string(stats.Snapshot().LogLevel))))
			return nil
		}),
	)
	return err
}

// ForceFlush exports pending data immediately
func (e *Exporter) ForceFlush(ctx context.Context) error {
	return e.provider.ForceFlush(ctx)
}

// Shutdown flushes and stops the exporter. Calling it more than once is a no-op.
func (e *Exporter) Shutdown(ctx context.Context) error {
	var err error
	e.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		err = e.provider.Shutdown(ctx)
	})
	return err
}

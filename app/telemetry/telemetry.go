// Package telemetry configures OpenTelemetry tracing and metrics for stscalingd and
// provides span helpers for contract entry points.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "stscalingd"
	serviceVersion = "1.0.0"
)

// Config holds the configuration for telemetry
type Config struct {
	// Tracing configuration
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
	Environment  string
	ChainID      string

	// Metrics configuration
	PrometheusEnabled bool
}

// DefaultConfig returns telemetry disabled, with a local collector endpoint
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
		SampleRate:   1.0,
		Environment:  "local",
	}
}

// Validate validates the telemetry configuration
func (cfg Config) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required")
	}
	if _, err := url.Parse(cfg.OTLPEndpoint); err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}
	return nil
}

// Provider manages OpenTelemetry tracing and metrics
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
	config         Config
}

// NewProvider initializes a telemetry provider. A disabled config returns a provider
// whose spans go to the global no-op tracer.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{config: cfg}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", cfg.Environment),
			attribute.String("chain.id", cfg.ChainID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{config: cfg}
	if err := p.initTracing(res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if cfg.PrometheusEnabled {
		if err := p.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return p, nil
}

func (p *Provider) initTracing(res *resource.Resource) error {
	endpoint := strings.TrimPrefix(p.config.OTLPEndpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithURLPath("/v1/traces"),
	)
	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter, tracesdk.WithBatchTimeout(5*time.Second)),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(p.config.SampleRate))),
	)
	otel.SetTracerProvider(tp)
	p.tracerProvider = tp

	return nil
}

// initMetrics exports OpenTelemetry instruments through the default Prometheus registry
func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)
	p.meterProvider = mp

	return nil
}

// Shutdown flushes and stops the tracer and meter providers
func (p *Provider) Shutdown(ctx context.Context) error {
	var err error

	if p.tracerProvider != nil {
		if shutdownErr := p.tracerProvider.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown tracer provider: %w", shutdownErr)
		}
	}

	if p.meterProvider != nil {
		if shutdownErr := p.meterProvider.Shutdown(ctx); shutdownErr != nil {
			if err != nil {
				err = fmt.Errorf("%w; failed to shutdown meter provider: %w", err, shutdownErr)
			} else {
				err = fmt.Errorf("failed to shutdown meter provider: %w", shutdownErr)
			}
		}
	}

	return err
}

// Instruments are the OpenTelemetry instruments recorded around contract entry points
type Instruments struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewInstruments creates the entry point instruments on the global meter
func NewInstruments() (*Instruments, error) {
	meter := otel.Meter(serviceName)

	calls, err := meter.Int64Counter(
		"stscaling.contract.calls",
		metric.WithDescription("Contract entry point invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"stscaling.contract.duration",
		metric.WithDescription("Contract entry point processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{calls: calls, duration: duration}, nil
}

// Record records one entry point invocation
func (i *Instruments) Record(ctx context.Context, entryPoint, action string, elapsed time.Duration, err error) {
	if i == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("entry_point", entryPoint),
		attribute.String("action", action),
		attribute.String("status", status),
	)
	i.calls.Add(ctx, 1, attrs)
	i.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// StartContractSpan starts a span for a contract entry point (instantiate, execute, query)
func StartContractSpan(ctx context.Context, entryPoint, action string, height int64) (context.Context, trace.Span) {
	return otel.Tracer(serviceName).Start(ctx, fmt.Sprintf("stscaling.%s", entryPoint),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("contract.action", action),
			attribute.Int64("block.height", height),
		),
	)
}

// EndSpan records err on span, if any, and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

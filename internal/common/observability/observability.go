package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"portfolio-admin/internal/common/config"
	"portfolio-admin/internal/common/logger"
)

// TracerName is the instrumentation scope used for API request spans.
const TracerName = "portfolio-admin/api"

type Observability struct {
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	commandCounter  otelmetric.Int64Counter
	commandDuration otelmetric.Float64Histogram
}

// New installs the global tracer and meter providers. Failures degrade to
// no-op recording; they are logged, never returned.
func New(cfg config.ObservabilityConfig, registerer promclient.Registerer, log logger.Logger) *Observability {
	o := &Observability{}

	tpOpts := []sdktrace.TracerProviderOption{}
	if cfg.JaegerEndpoint != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			log.Warn("jaeger exporter disabled", map[string]interface{}{"error": err.Error()})
		} else {
			tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
		}
	}
	o.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(o.tracerProvider)

	promOpts := []prometheus.Option{}
	if registerer != nil {
		promOpts = append(promOpts, prometheus.WithRegisterer(registerer))
	}
	exporter, err := prometheus.New(promOpts...)
	if err != nil {
		log.Warn("prometheus meter exporter disabled", map[string]interface{}{"error": err.Error()})
		return o
	}

	o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(o.meterProvider)
	o.meter = o.meterProvider.Meter(cfg.ServiceName)

	o.commandCounter, _ = o.meter.Int64Counter(
		"cli.commands",
		otelmetric.WithDescription("Number of admin commands executed"),
	)
	o.commandDuration, _ = o.meter.Float64Histogram(
		"cli.command.duration",
		otelmetric.WithDescription("Admin command duration"),
		otelmetric.WithUnit("ms"),
	)
	return o
}

// Tracer returns the tracer API requests are recorded with.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan opens a span on the global tracer.
func (o *Observability) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}

func (o *Observability) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	)
	if o.commandCounter != nil {
		o.commandCounter.Add(ctx, 1, attrs)
	}
	if o.commandDuration != nil {
		o.commandDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}

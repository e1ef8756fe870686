package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability records render-level measurements through an OpenTelemetry meter
// exported on the default prometheus registry, and optionally render spans.
type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	renderCounter  otelmetric.Int64Counter
	renderDuration otelmetric.Float64Histogram
	cellsWritten   otelmetric.Int64Counter

	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
}

// New installs a prometheus-backed meter provider. When the exporter cannot be
// created the returned value records nothing.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return NewNoop(), err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	o, err := newWithMeter(provider.Meter(serviceName))
	if err != nil {
		return NewNoop(), err
	}
	o.meterProvider = provider
	return o, nil
}

// NewNoop returns an Observability that discards all measurements.
func NewNoop() *Observability {
	o, _ := newWithMeter(noop.NewMeterProvider().Meter("noop"))
	return o
}

func newWithMeter(meter otelmetric.Meter) (*Observability, error) {
	renderCounter, err := meter.Int64Counter(
		"documents.rendered",
		otelmetric.WithDescription("Number of spreadsheet render attempts"),
	)
	if err != nil {
		return nil, err
	}

	renderDuration, err := meter.Float64Histogram(
		"documents.render.duration",
		otelmetric.WithDescription("Spreadsheet render duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cellsWritten, err := meter.Int64Counter(
		"documents.cells.written",
		otelmetric.WithDescription("Number of non-empty cells written into spreadsheets"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meter:          meter,
		renderCounter:  renderCounter,
		renderDuration: renderDuration,
		cellsWritten:   cellsWritten,
	}, nil
}

// RecordRender counts one render attempt and its duration.
func (o *Observability) RecordRender(ctx context.Context, taskType, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
	o.renderCounter.Add(ctx, 1, attrs)
	o.renderDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordCells counts cells written by a renderer.
func (o *Observability) RecordCells(ctx context.Context, taskType string, cells int) {
	if o == nil || cells <= 0 {
		return
	}
	o.cellsWritten.Add(ctx, int64(cells), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
	))
}

// Shutdown flushes pending measurements and spans.
func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}

package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "sheetsmith/render"

// TracingOptions selects the span exporter. Exporter "jaeger" needs Endpoint,
// e.g. http://localhost:14268/api/traces.
type TracingOptions struct {
	ServiceName string
	Version     string
	Exporter    string
	Endpoint    string
	SampleRatio float64
}

// NewTracerProvider builds a batching tracer provider and installs it globally.
func NewTracerProvider(opts TracingOptions) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter
	switch opts.Exporter {
	case "jaeger":
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("jaeger exporter requires an endpoint")
		}
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(opts.Endpoint)))
		if err != nil {
			return nil, fmt.Errorf("failed to create jaeger exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", opts.Exporter)
	}

	ratio := opts.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", opts.ServiceName),
		attribute.String("service.version", opts.Version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// EnableTracing routes StartRender spans to tp. Shutdown flushes it.
func (o *Observability) EnableTracing(tp *sdktrace.TracerProvider) {
	if o == nil || tp == nil {
		return
	}
	o.tracerProvider = tp
	o.tracer = tp.Tracer(tracerName)
}

// StartRender opens a span around one document render.
func (o *Observability) StartRender(ctx context.Context, taskType string) (context.Context, trace.Span) {
	tracer := noopTracer
	if o != nil && o.tracer != nil {
		tracer = o.tracer
	}
	return tracer.Start(ctx, "render "+taskType,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("task_type", taskType)),
	)
}

// EndRender records err on span, if any, and ends it.
func EndRender(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

var noopTracer = noop.NewTracerProvider().Tracer(tracerName)

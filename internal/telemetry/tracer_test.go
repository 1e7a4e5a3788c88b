package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_Exporters(t *testing.T) {
	tests := []struct {
		exporter string
		wantErr  bool
	}{
		{"", false},
		{ExporterNone, false},
		{ExporterStdout, false},
		{"jaeger", true},
	}
	for _, tt := range tests {
		t.Run(tt.exporter, func(t *testing.T) {
			p, err := Setup(context.Background(), Config{Exporter: tt.exporter}, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Setup(%q) error = %v, wantErr %v", tt.exporter, err, tt.wantErr)
			}
			if err == nil {
				if err := p.Shutdown(context.Background()); err != nil {
					t.Errorf("Shutdown: %v", err)
				}
			}
		})
	}
}

func TestShutdown_NilProvider(t *testing.T) {
	var p *Provider
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("nil Shutdown = %v", err)
	}
}

func TestCalculationSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartCalculationSpan(context.Background(), "ackermann", "iterative", 3, 4)
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID in the span context")
	}
	RecordSuccess(span, AttrSteps.Int64(42))
	span.End()

	_, failed := StartCalculationSpan(context.Background(), "fibonacci", "linear", 0, 10)
	RecordError(failed, errors.New("boom"))
	RecordError(failed, nil)
	failed.End()

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "calculate.ackermann" || spans[0].Status().Code != codes.Ok {
		t.Errorf("unexpected first span %q status %v", spans[0].Name(), spans[0].Status())
	}
	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "boom" {
		t.Errorf("unexpected second span status %v", spans[1].Status())
	}
}

func TestTraceID_NoSpan(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("TraceID = %q, want empty", got)
	}
}

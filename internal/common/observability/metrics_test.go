// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObservability(t *testing.T) (*Observability, *tracetest.SpanRecorder, *promclient.Registry) {
	t.Helper()
	reg := promclient.NewRegistry()
	recorder := tracetest.NewSpanRecorder()

	o, err := New(Options{
		ServiceName:   "credit-evaluator-test",
		SampleRatio:   1,
		Registerer:    reg,
		SpanProcessor: recorder,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Shutdown(context.Background()) })
	return o, recorder, reg
}

func TestStartSpan_Records(t *testing.T) {
	o, recorder, _ := newTestObservability(t)

	ctx, span := o.StartSpan(context.Background(), "evaluate-credit", attribute.String("clientId", "c-1"))
	assert.True(t, span.SpanContext().IsValid())
	_, child := o.StartSpan(ctx, "build-offer")
	child.End()
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "build-offer", ended[0].Name())
	assert.Equal(t, "evaluate-credit", ended[1].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Contains(t, ended[1].Attributes(), attribute.String("clientId", "c-1"))
}

func TestRecord_ExportsToRegistry(t *testing.T) {
	o, _, reg := newTestObservability(t)
	ctx := context.Background()

	o.RecordEvaluation(ctx, "high", 79)
	o.RecordJobProcessed(ctx, "completed")
	o.RecordJobDuration(ctx, 12*time.Millisecond, "completed")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "otel_credit_evaluations_total")
	assert.Contains(t, names, "otel_credit_score")
	// Kept apart from the collectors in internal/common/metrics.
	assert.NotContains(t, names, "credit_evaluations_total")
	assert.NotContains(t, names, "credit_score")
	assert.Contains(t, names, "jobs_processed_total")
}

func TestNilObservability_IsSafe(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	spanCtx, span := o.StartSpan(ctx, "noop")
	assert.Equal(t, ctx, spanCtx)
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	o.RecordEvaluation(ctx, "low", 41.5)
	o.RecordJobProcessed(ctx, "failed")
	o.RecordJobDuration(ctx, time.Second, "failed")
	assert.NoError(t, o.Shutdown(ctx))
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

func TestEmitMatchJob(t *testing.T) {
	sink := statsd.NewRecorder()
	EmitMatchJob(sink, MatchJobMetric{
		Transition: "processing->failed",
		Result:     ResultError,
		Duration:   1500 * time.Millisecond,
		Err:        errors.New("parser down"),
	})

	counts := sink.Counts("match_job.transition")
	require.Len(t, counts, 1)
	assert.Equal(t, "processing->failed", counts[0].Tags["transition"])
	assert.Equal(t, "errors_errorstring", counts[0].Tags["error_class"])

	timings := sink.Timings("match_job.duration")
	require.Len(t, timings, 1)
	assert.Equal(t, 1500*time.Millisecond, timings[0].Duration)
}

func TestEmitMatchJob_NoDurationNoClass(t *testing.T) {
	sink := statsd.NewRecorder()
	EmitMatchJob(sink, MatchJobMetric{Transition: "pending->processing", Result: ResultSuccess})

	counts := sink.Counts("match_job.transition")
	require.Len(t, counts, 1)
	assert.NotContains(t, counts[0].Tags, "error_class")
	assert.Empty(t, sink.Timings("match_job.duration"))
}

func TestEmitHelpers_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitMatchJob(nil, MatchJobMetric{})
		EmitPipelineStage(nil, "filter", 3)
		EmitQueueDepth(nil, 1, 10)
	})
}

func TestEmitPipelineStage(t *testing.T) {
	sink := statsd.NewRecorder()
	EmitPipelineStage(sink, "filter", 12)

	gauges := sink.Gauges("match_pipeline.candidates")
	require.Len(t, gauges, 1)
	assert.InDelta(t, 12.0, gauges[0].Value, 1e-9)
	assert.Equal(t, "filter", gauges[0].Tags["stage"])
}

func TestCloneTags(t *testing.T) {
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
	assert.Nil(t, CloneTags(nil))
}

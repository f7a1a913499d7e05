// Package metrics emits the standard match job and pipeline metrics.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/Sakshamyadav19/HireMe-Backend/internal/observability/errors"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// MatchJobMetric captures one match job lifecycle event.
type MatchJobMetric struct {
	Transition string
	Result     string
	Duration   time.Duration
	Err        error
}

// EmitMatchJob emits match_job.transition and, when a duration is known, match_job.duration.
func EmitMatchJob(sink statsd.Sink, in MatchJobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"transition": in.Transition,
		"result":     in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("match_job.transition", 1, tags)
	if in.Duration > 0 {
		sink.Timing("match_job.duration", in.Duration, CloneTags(tags))
	}
}

// EmitPipelineStage records how many catalog entries survived a pipeline stage.
func EmitPipelineStage(sink statsd.Sink, stage string, count int) {
	if sink == nil {
		return
	}
	sink.Gauge("match_pipeline.candidates", float64(count), map[string]string{"stage": stage})
}

// EmitQueueDepth records the number of tasks waiting in the match queue.
func EmitQueueDepth(sink statsd.Sink, depth, capacity int) {
	if sink == nil {
		return
	}
	sink.Gauge("match_queue.depth", float64(depth), map[string]string{"capacity": strconv.Itoa(capacity)})
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

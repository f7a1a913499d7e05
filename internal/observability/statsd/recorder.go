package statsd

import (
	"sync"
	"time"
)

// Sample is one recorded metric emission.
type Sample struct {
	Name     string
	Count    int64
	Value    float64
	Duration time.Duration
	Tags     map[string]string
}

// Recorder is an in-memory Sink for tests and the admin CLI's dry runs.
type Recorder struct {
	mu      sync.Mutex
	counts  []Sample
	gauges  []Sample
	timings []Sample
}

var _ Sink = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, Sample{Name: name, Count: value, Tags: cloneTags(tags)})
}

func (r *Recorder) Gauge(name string, value float64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges = append(r.gauges, Sample{Name: name, Value: value, Tags: cloneTags(tags)})
}

func (r *Recorder) Timing(name string, value time.Duration, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = append(r.timings, Sample{Name: name, Duration: value, Tags: cloneTags(tags)})
}

// Counts returns counter samples named name.
func (r *Recorder) Counts(name string) []Sample { return r.filter(r.counts, name) }

// Gauges returns gauge samples named name.
func (r *Recorder) Gauges(name string) []Sample { return r.filter(r.gauges, name) }

// Timings returns timing samples named name.
func (r *Recorder) Timings(name string) []Sample { return r.filter(r.timings, name) }

func (r *Recorder) filter(samples []Sample, name string) []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Sample
	for _, s := range samples {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

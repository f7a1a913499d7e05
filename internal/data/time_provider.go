package data

import (
	"sync"
	"time"
)

// TimeProvider supplies the timestamps repositories write. Values are UTC and
// truncated to microseconds, the resolution Postgres stores, so a written time
// compares equal to the one read back.
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// FixedTimeProvider is a manually advanced clock for tests. Safe for concurrent use.
type FixedTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedTimeProvider returns a clock stopped at t.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: t.UTC().Truncate(time.Microsecond)}
}

// Now returns the current fixed time.
func (f *FixedTimeProvider) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AddTime advances the clock by d.
func (f *FixedTimeProvider) AddTime(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func timeProviderOrReal(tp TimeProvider) TimeProvider {
	if tp == nil {
		return systemTime{}
	}
	return tp
}

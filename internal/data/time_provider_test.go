package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeProviderOrReal(t *testing.T) {
	now := timeProviderOrReal(nil).Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))

	fixed := NewFixedTimeProvider(time.Date(2025, 3, 1, 12, 0, 0, 1500, time.FixedZone("X", 3600)))
	assert.Same(t, fixed, timeProviderOrReal(fixed))
}

func TestFixedTimeProvider(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 1500, time.FixedZone("X", 3600))
	clock := NewFixedTimeProvider(start)

	assert.Equal(t, time.Date(2025, 3, 1, 11, 0, 0, 1000, time.UTC), clock.Now())
	clock.AddTime(time.Minute)
	assert.Equal(t, time.Date(2025, 3, 1, 11, 1, 0, 1000, time.UTC), clock.Now())
}

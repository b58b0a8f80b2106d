package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapSeconds(t *testing.T) {
	tests := []struct {
		minutes float64
		want    int
	}{
		{1.1, 60},  // 66s rounds down to 60
		{0.2, 30},  // 12s hits the floor
		{0.0, 30},  // floor
		{0.76, 60}, // 45.6s rounds up
		{1.0, 60},
		{25, 1500},
		{30, 1800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapSeconds(tt.minutes), "minutes=%v", tt.minutes)
	}
}

func TestStartStopReset(t *testing.T) {
	tm := New(1) // 60s

	tm.Start()
	assert.True(t, tm.Running)

	tm.Tick()
	tm.Tick()
	assert.Equal(t, 58, tm.Remaining)

	tm.Stop()
	assert.False(t, tm.Running)
	assert.Equal(t, 58, tm.Remaining, "stop keeps remaining time")

	tm.Reset()
	assert.False(t, tm.Running)
	assert.Equal(t, 60, tm.Remaining)
}

func TestSetMinutesWhileRunningStopsAndResets(t *testing.T) {
	tm := New(1)
	tm.Start()
	tm.Tick()

	tm.SetMinutes(2)
	assert.False(t, tm.Running)
	assert.Equal(t, 120, tm.Total)
	assert.Equal(t, 120, tm.Remaining)
}

func TestTickFinishesExactlyOnce(t *testing.T) {
	tm := New(0.5) // snaps to 30s
	tm.Start()

	finishes := 0
	for i := 0; i < 30; i++ {
		if tm.Tick() {
			finishes++
		}
	}
	assert.Equal(t, 1, finishes)
	assert.False(t, tm.Running)
	assert.Zero(t, tm.Remaining)

	// ticking at zero reports nothing further
	assert.False(t, tm.Tick())
}

func TestStartAtZeroIsNoOp(t *testing.T) {
	tm := New(0.5)
	tm.Start()
	for i := 0; i < 30; i++ {
		tm.Tick()
	}

	tm.Start()
	assert.False(t, tm.Running)
}

func TestTickWhileStoppedDoesNothing(t *testing.T) {
	tm := New(1)

	assert.False(t, tm.Tick())
	assert.Equal(t, 60, tm.Remaining)
}

func TestClock(t *testing.T) {
	tm := New(25)
	assert.Equal(t, "25:00", tm.Clock())

	tm.Start()
	tm.Tick()
	assert.Equal(t, "24:59", tm.Clock())
}

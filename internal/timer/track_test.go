package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackSyncsToTicks(t *testing.T) {
	tm := New(1) // 60s
	tr := NewTrack(tm)
	tm.Start()

	tm.Tick()
	tr.Sync()
	assert.InDelta(t, 1.0, tr.elapsed, 1e-9)

	tm.Tick()
	tr.Sync()
	assert.InDelta(t, 2.0, tr.elapsed, 1e-9)
}

func TestAdvanceNeverOvertakesNextTick(t *testing.T) {
	tm := New(1)
	tr := NewTrack(tm)
	tm.Start()
	tm.Tick() // elapsed = 1
	tr.Sync()

	tr.Advance(0.5)
	assert.InDelta(t, 1.5, tr.elapsed, 1e-9)

	// a huge wall-clock gap still clamps just shy of the next tick
	tr.Advance(10)
	assert.InDelta(t, 1.999, tr.elapsed, 1e-9)

	tm.Tick()
	tr.Sync()
	assert.InDelta(t, 2.0, tr.elapsed, 1e-9)
}

func TestAdvanceIgnoredWhenStopped(t *testing.T) {
	tm := New(1)
	tr := NewTrack(tm)

	tr.Advance(5)
	assert.Zero(t, tr.elapsed)
}

func TestTrackRewindsOnReset(t *testing.T) {
	tm := New(1)
	tr := NewTrack(tm)
	tm.Start()
	tm.Tick()
	tr.Sync()
	tr.Advance(0.5)

	tm.Reset()
	tr.Sync()
	assert.Zero(t, tr.elapsed)
}

func TestTrackSnapsToEndWhenFinished(t *testing.T) {
	tm := New(0.5) // 30s
	tr := NewTrack(tm)
	tm.Start()
	for i := 0; i < 30; i++ {
		tm.Tick()
	}
	tr.Sync()
	assert.InDelta(t, 30.0, tr.elapsed, 1e-9)
	assert.InDelta(t, 1.0, tr.SessionProgress(), 1e-9)
}

func TestLapArithmetic(t *testing.T) {
	tm := New(1) // 60s = 2 laps
	tr := NewTrack(tm)
	tm.Start()

	assert.Equal(t, 2, tr.TotalLaps())
	assert.Equal(t, 1, tr.CurrentLap())
	assert.Zero(t, tr.LapsCompleted())

	for i := 0; i < 45; i++ {
		tm.Tick()
	}
	tr.Sync()

	assert.Equal(t, 1, tr.LapsCompleted())
	assert.Equal(t, 2, tr.CurrentLap())
	assert.InDelta(t, 0.5, tr.LapProgress(), 1e-9)
	assert.InDelta(t, 0.75, tr.SessionProgress(), 1e-9)

	// finish: current lap caps at the total
	for i := 0; i < 15; i++ {
		tm.Tick()
	}
	tr.Sync()
	assert.Equal(t, 2, tr.CurrentLap())
	assert.Equal(t, 2, tr.LapsCompleted())
}

func TestShortSessionIsOneLap(t *testing.T) {
	tm := New(0.2) // floors to 30s
	tr := NewTrack(tm)
	assert.Equal(t, 1, tr.TotalLaps())
}

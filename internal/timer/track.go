package timer

import "math"

// Track derives the smoothed progress shown by the session and lap bars.
// The countdown's integer seconds stay authoritative: the smooth estimate is
// re-snapped on every tick and is never allowed past the elapsed value the
// next tick would imply. Dropping Track entirely would not change what the
// countdown does, only how the bars move.
type Track struct {
	timer         *Timer
	elapsed       float64
	lastRemaining int
}

// NewTrack creates a track over the given timer.
func NewTrack(t *Timer) *Track {
	return &Track{
		timer:         t,
		elapsed:       float64(t.Elapsed()),
		lastRemaining: t.Remaining,
	}
}

// Sync re-aligns the smooth estimate with the authoritative countdown.
// Call it whenever the timer ticks or changes state.
func (tr *Track) Sync() {
	t := tr.timer
	switch {
	case !t.Running && t.Remaining == t.Total:
		// reset (or freshly configured): rewind the animation
		tr.elapsed = 0
	case t.Remaining == 0:
		// finished: snap to the end
		tr.elapsed = float64(t.Total)
	case t.Remaining != tr.lastRemaining:
		tr.elapsed = float64(t.Elapsed())
	}
	tr.lastRemaining = t.Remaining
}

// Advance moves the smooth estimate forward by dt seconds of wall-clock
// time between ticks, clamped so it cannot overtake the next tick.
func (tr *Track) Advance(dt float64) {
	t := tr.timer
	if !t.Running || t.Remaining == 0 {
		return
	}
	maxElapsed := float64(t.Elapsed()) + 0.999
	tr.elapsed = math.Min(tr.elapsed+dt, maxElapsed)
}

// SessionProgress returns overall progress in [0, 1].
func (tr *Track) SessionProgress() float64 {
	total := math.Max(1, float64(tr.timer.Total))
	return clamp01(tr.elapsed / total)
}

// TotalLaps returns the number of 30-second laps in the session, at least 1.
func (tr *Track) TotalLaps() int {
	laps := int(math.Round(float64(tr.timer.Total) / LapSeconds))
	if laps < 1 {
		laps = 1
	}
	return laps
}

// LapsCompleted returns the number of fully elapsed laps.
func (tr *Track) LapsCompleted() int {
	return int(tr.elapsed / LapSeconds)
}

// CurrentLap returns the 1-based lap in progress, capped at TotalLaps.
func (tr *Track) CurrentLap() int {
	lap := tr.LapsCompleted() + 1
	if total := tr.TotalLaps(); lap > total {
		lap = total
	}
	return lap
}

// LapProgress returns progress through the current lap in [0, 1].
func (tr *Track) LapProgress() float64 {
	lapTime := math.Mod(tr.elapsed, LapSeconds)
	return clamp01(lapTime / LapSeconds)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

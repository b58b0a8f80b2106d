// Package timer implements the study countdown. The authoritative state is
// an integer second count ticked once per wall-clock second; the Track type
// layers a smoothed elapsed-time estimate on top for animation only.
package timer

import (
	"fmt"
	"math"
)

const (
	// LapSeconds is the fixed animation subdivision of a session.
	LapSeconds = 30
	// MinSeconds is the floor for a configured session length.
	MinSeconds = 30
)

// Timer is the countdown state machine.
type Timer struct {
	Total     int // configured session length, seconds
	Remaining int // 0..Total
	Running   bool
}

// SnapSeconds converts a session length in minutes to seconds, snapped to
// the nearest 30-second increment with a 30-second floor.
func SnapSeconds(minutes float64) int {
	secs := int(math.Round(minutes*60/LapSeconds)) * LapSeconds
	if secs < MinSeconds {
		secs = MinSeconds
	}
	return secs
}

// New creates a timer configured for the given number of minutes.
func New(minutes float64) *Timer {
	t := &Timer{}
	t.SetMinutes(minutes)
	return t
}

// SetMinutes reconfigures the session length. Changing the length always
// stops the countdown and restores the full remaining time.
func (t *Timer) SetMinutes(minutes float64) {
	t.Total = SnapSeconds(minutes)
	t.Remaining = t.Total
	t.Running = false
}

// Start begins the countdown. Starting with nothing remaining is a no-op.
func (t *Timer) Start() {
	if t.Remaining > 0 {
		t.Running = true
	}
}

// Stop pauses the countdown, keeping the remaining time.
func (t *Timer) Stop() {
	t.Running = false
}

// Reset stops the countdown and restores the full remaining time.
func (t *Timer) Reset() {
	t.Running = false
	t.Remaining = t.Total
}

// Tick advances the countdown by one second. It returns true exactly once,
// on the tick that reaches zero; the timer stops itself at that point, so a
// timer sitting at zero never reports finishing again.
func (t *Timer) Tick() (finished bool) {
	if !t.Running || t.Remaining <= 0 {
		return false
	}
	t.Remaining--
	if t.Remaining == 0 {
		t.Running = false
		return true
	}
	return false
}

// Elapsed returns the seconds counted down so far.
func (t *Timer) Elapsed() int {
	return t.Total - t.Remaining
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Remaining/60, t.Remaining%60)
}

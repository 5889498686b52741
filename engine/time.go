package engine

import "time"

// Time tracks frame timing.
//
// Delta is the wall time between the two most recent updates. It is zero on
// the first update and while the clock is paused.
type Time struct {
	clock func() time.Time

	last    time.Time
	delta   time.Duration
	elapsed time.Duration
	frames  uint64
	paused  bool
}

// NewTime returns a Time reading the given clock. A nil clock uses time.Now.
func NewTime(clock func() time.Time) *Time {
	if clock == nil {
		clock = time.Now
	}
	return &Time{clock: clock}
}

// Update samples the clock and starts a new frame.
func (t *Time) Update() {
	now := t.clock()
	if t.last.IsZero() {
		t.last = now
		t.advance(0)
		return
	}
	d := now.Sub(t.last)
	t.last = now
	if d < 0 {
		d = 0
	}
	t.advance(d)
}

func (t *Time) advance(d time.Duration) {
	t.frames++
	if t.paused {
		t.delta = 0
		return
	}
	t.delta = d
	t.elapsed += d
}

func (t *Time) Delta() time.Duration { return t.delta }

// DeltaSeconds returns Delta in seconds.
func (t *Time) DeltaSeconds() float32 { return float32(t.delta.Seconds()) }

// Elapsed is the unpaused time accumulated since the first update.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

// Frame is the number of updates so far.
func (t *Time) Frame() uint64 { return t.frames }

func (t *Time) Paused() bool { return t.paused }

func (t *Time) SetPaused(p bool) { t.paused = p }

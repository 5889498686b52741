package engine

import "time"

const diagnosticSamples = 20

// Diagnostics keeps smoothed frame timing and the entity count.
type Diagnostics struct {
	frameTimes [diagnosticSamples]time.Duration
	work       [diagnosticSamples]time.Duration
	n, next    int
	entities   int
}

func NewDiagnostics() *Diagnostics { return &Diagnostics{} }

// Record adds one frame: its delta, the time spent in systems and the live entity count.
// Zero deltas (first frame, paused time) do not count toward the frame time average.
func (d *Diagnostics) Record(delta, work time.Duration, entities int) {
	d.entities = entities
	if delta <= 0 {
		return
	}
	d.frameTimes[d.next] = delta
	d.work[d.next] = work
	d.next = (d.next + 1) % diagnosticSamples
	if d.n < diagnosticSamples {
		d.n++
	}
}

// FrameTimeMS is the mean frame time over the recorded samples.
func (d *Diagnostics) FrameTimeMS() float64 {
	return mean(d.frameTimes[:d.n])
}

// WorkMS is the mean time spent running systems.
func (d *Diagnostics) WorkMS() float64 {
	return mean(d.work[:d.n])
}

// FPS derives frames per second from FrameTimeMS. Zero until a frame is recorded.
func (d *Diagnostics) FPS() float64 {
	ms := d.FrameTimeMS()
	if ms == 0 {
		return 0
	}
	return 1000 / ms
}

func (d *Diagnostics) Entities() int { return d.entities }

func mean(ds []time.Duration) float64 {
	if len(ds) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range ds {
		sum += v
	}
	return float64(sum) / float64(len(ds)) / float64(time.Millisecond)
}

package plant

import "math"

// DefaultGrowthRate is the growth progress gained per second.
const DefaultGrowthRate = 0.2

// Growth is the plant's animation progress in [0, 1]. It only moves
// forward until Reset.
type Growth struct {
	progress float64
}

// Advance adds amount to the progress, saturating at exactly 1. Negative
// or NaN amounts are ignored.
func (g *Growth) Advance(amount float64) float64 {
	if amount > 0 {
		g.progress = math.Min(1, g.progress+amount)
	}
	return g.progress
}

// Reset rewinds growth to 0.
func (g *Growth) Reset() { g.progress = 0 }

// Progress returns the current value.
func (g *Growth) Progress() float64 { return g.progress }

// Done reports whether the plant is fully grown.
func (g *Growth) Done() bool { return g.progress >= 1 }

// Clock is the shared animation time. Wind is a pure function of the
// elapsed time it reports.
type Clock struct {
	elapsed float64
	frames  uint64
}

// Tick records a frame. A host elapsed value that runs backwards is held at
// the last seen time and a negative delta is treated as zero.
func (c *Clock) Tick(elapsed, delta float64) (t, d float64) {
	if elapsed > c.elapsed {
		c.elapsed = elapsed
	}
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	c.frames++
	return c.elapsed, delta
}

// Elapsed returns the last recorded time.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Frames returns how many frames have been ticked.
func (c *Clock) Frames() uint64 { return c.frames }

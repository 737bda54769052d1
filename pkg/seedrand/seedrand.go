// Package seedrand provides the deterministic scalar generator used for every
// structural choice in a generated plant, plus an ambient alternative that
// reproduces per-run variation.
package seedrand

import (
	"math"
	"math/rand/v2"
)

// Draw returns the fractional part of sin(seed)*10000, a value in [0, 1).
// It is a pure function of seed.
func Draw(seed float64) float64 {
	x := math.Sin(seed) * 10000
	f := x - math.Floor(x)
	if f >= 1 {
		// Floor rounding on huge magnitudes can land exactly on 1.
		return 0
	}
	return f
}

// Key combines a base seed, a structural index with its stride and a purpose
// salt into a single draw key.
func Key(base int64, index, stride, salt int) float64 {
	return float64(base) + float64(index)*float64(stride) + float64(salt)
}

// Source produces values in [0, 1) for a given key.
type Source interface {
	Float64(key float64) float64
}

// Strict routes every draw through Draw, so equal keys give equal values.
type Strict struct{}

// Float64 implements Source.
func (Strict) Float64(key float64) float64 { return Draw(key) }

// Ambient ignores the key and draws from a shared PCG stream. Results vary
// between runs unless the stream itself is seeded identically.
type Ambient struct {
	r *rand.Rand
}

// NewAmbient creates an ambient source. A nil r seeds a fresh PCG stream
// from the runtime's random state.
func NewAmbient(r *rand.Rand) *Ambient {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Ambient{r: r}
}

// NewAmbientSeeded creates an ambient source with a reproducible stream.
func NewAmbientSeeded(seed int64) *Ambient {
	return &Ambient{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 implements Source.
func (a *Ambient) Float64(float64) float64 { return a.r.Float64() }

// Range maps a unit draw onto the span starting at min(lo, hi) with width
// |hi - lo|. Inverted ranges are swapped rather than rejected.
func Range(lo, hi, u float64) float64 {
	return math.Min(lo, hi) + u*math.Abs(hi-lo)
}

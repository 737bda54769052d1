package plant

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// LeafLayout selects where the three leaves of a branch sit along its curve.
type LeafLayout uint8

const (
	// LayoutThirds places leaves at 0.3 + i/3*0.5.
	LayoutThirds LeafLayout = iota
	// LayoutEven places leaves at 0.3, 0.5 and 0.7.
	LayoutEven
)

// ParseLeafLayout accepts "thirds" or "even".
func ParseLeafLayout(s string) (LeafLayout, error) {
	switch s {
	case "", "thirds":
		return LayoutThirds, nil
	case "even":
		return LayoutEven, nil
	}
	return LayoutThirds, fmt.Errorf("unknown leaf layout %q", s)
}

func (l LeafLayout) String() string {
	if l == LayoutEven {
		return "even"
	}
	return "thirds"
}

// positions returns the curve parameters of the leaves on a branch.
func (l LeafLayout) positions() [LeavesPerBranch]float64 {
	if l == LayoutEven {
		return [LeavesPerBranch]float64{0.3, 0.5, 0.7}
	}
	var ts [LeavesPerBranch]float64
	for i := range ts {
		ts[i] = 0.3 + float64(i)/LeavesPerBranch*0.5
	}
	return ts
}

// Options configure a Plant for its whole lifetime.
type Options struct {
	// AmbientJitter draws branch inclination, branch length and petal jitter
	// from an unkeyed stream, so the same seed varies between runs.
	AmbientJitter bool
	// Ambient is the stream used when AmbientJitter is set. Nil seeds one
	// from the runtime.
	Ambient *rand.Rand

	LeafLayout LeafLayout
	// GrowthRate is growth progress per second of delta.
	GrowthRate float64
	// Ground adds grass and soil discs under the plant.
	Ground bool

	Logger *zap.Logger
}

// DefaultOptions returns strict determinism, thirds layout and the stock
// growth rate.
func DefaultOptions() Options {
	return Options{GrowthRate: DefaultGrowthRate}
}

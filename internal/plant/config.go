// Package plant generates a seeded plant as an arena scene graph and
// animates its growth and wind sway frame by frame.
package plant

import (
	"fmt"
	"math"
)

// Config is the flat parameter set a plant is generated from. It is
// treated as immutable per generation and compared by value to decide what
// needs recomputing.
type Config struct {
	ID                  string  `yaml:"id,omitempty"`
	Seed                int64   `yaml:"seed"`
	Height              float64 `yaml:"height"`
	Curvature           float64 `yaml:"curvature"`
	PetalCount          int     `yaml:"petal_count"`
	Color               string  `yaml:"color"`
	PetalGradientStart  string  `yaml:"petal_gradient_start"`
	PetalGradientEnd    string  `yaml:"petal_gradient_end"`
	LeafSize            float64 `yaml:"leaf_size"`
	LeafScaleNearFlower float64 `yaml:"leaf_scale_near_flower"`
	LeafAngleMin        float64 `yaml:"leaf_angle_min"` // degrees
	LeafAngleMax        float64 `yaml:"leaf_angle_max"` // degrees
	BranchAngleMin      float64 `yaml:"branch_angle_min"`
	BranchAngleMax      float64 `yaml:"branch_angle_max"`
}

// DefaultConfig returns the stock parameters with seed 0. Callers usually
// replace the seed with the wall clock.
func DefaultConfig() Config {
	return Config{
		Height:              4,
		Curvature:           0.5,
		PetalCount:          25,
		Color:               "#fffff0",
		PetalGradientStart:  "#ff69b4",
		PetalGradientEnd:    "#ffffff",
		LeafSize:            1.0,
		LeafScaleNearFlower: 0.5,
		LeafAngleMin:        30,
		LeafAngleMax:        80,
		BranchAngleMin:      30,
		BranchAngleMax:      60,
	}
}

// PlantID returns the identifier used for a seed.
func PlantID(seed int64) string {
	return fmt.Sprintf("plant-%d", seed)
}

// Normalized clamps fields into their valid domains and fills in the id.
// It never fails.
func (c Config) Normalized() Config {
	c.Curvature = clamp(c.Curvature, 0, 1)
	c.LeafScaleNearFlower = clamp(c.LeafScaleNearFlower, 0, 1)
	c.PetalCount = min(max(c.PetalCount, 1), MaxPetalCount)
	if c.Height < 0 || math.IsNaN(c.Height) {
		c.Height = 0
	}
	if c.LeafSize < 0 || math.IsNaN(c.LeafSize) {
		c.LeafSize = 0
	}
	if c.ID == "" {
		c.ID = PlantID(c.Seed)
	}
	return c
}

// BranchCount is max(5, floor(height*2)).
func BranchCount(height float64) int {
	return max(5, int(math.Floor(height*2)))
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Min(hi, math.Max(lo, x))
}

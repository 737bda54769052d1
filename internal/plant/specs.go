package plant

import (
	"fmt"
	"math"

	fmath "github.com/Faultbox/flora/pkg/math"
	"github.com/Faultbox/flora/pkg/seedrand"
)

const (
	// LeavesPerBranch is fixed.
	LeavesPerBranch = 3
	// CurvePoints is the number of control points sampled along a branch.
	CurvePoints = 17
	// BranchFlowerChance is the probability a branch carries a flower.
	BranchFlowerChance = 0.6
	// TerminalSlot is the flower slot of the stem's own flower.
	TerminalSlot = -1

	goldenAngle = math.Pi * (3 - 2.2360679774997896964) // π(3-√5)

	// Draw key layout: every branch owns a stride of keys past the seed.
	branchStride = 1000
	saltFlower   = 0 // +0 presence, +1 scale, +2 petal count
	saltIncline  = 101
	saltLength   = 211
	saltLeaf     = 307 // + leaf slot
	saltPetal    = 400 // + petal*2 + purpose
)

// MaxPetalCount keeps every petal salt inside its flower's key stride.
const MaxPetalCount = (branchStride - saltPetal) / 2

// BranchSpec is the structural record of one branch.
type BranchSpec struct {
	Index          int     `yaml:"index"`
	RelativeHeight float64 `yaml:"relative_height"`
	Azimuth        float64 `yaml:"azimuth"`
	Inclination    float64 `yaml:"inclination"`
	Length         float64 `yaml:"length"`
	Delay          float64 `yaml:"delay"`
}

// LeafSpec is the generated placement of one leaf.
type LeafSpec struct {
	ID        string     `yaml:"id"`
	Branch    int        `yaml:"branch"`
	Slot      int        `yaml:"slot"`
	WindIndex int        `yaml:"wind_index"`
	T         float64    `yaml:"t"`
	Position  fmath.Vec3 `yaml:"position,flow"`
	Tangent   fmath.Vec3 `yaml:"tangent,flow"`
	Opening   float64    `yaml:"opening"`
	Azimuth   float64    `yaml:"azimuth"`
	Twist     float64    `yaml:"twist"`
	Scale     float64    `yaml:"scale"`
}

// FlowerSpec describes a flower at the stem top or a branch tip.
type FlowerSpec struct {
	Slot       int        `yaml:"slot"`
	Scale      float64    `yaml:"scale"`
	PetalCount int        `yaml:"petal_count"`
	Position   fmath.Vec3 `yaml:"position,flow"`
}

// Terminal reports whether this is the stem's own flower.
func (f FlowerSpec) Terminal() bool { return f.Slot == TerminalSlot }

// PetalSpec is one petal with its jitter fixed at creation.
type PetalSpec struct {
	Index     int     `yaml:"index"`
	Total     int     `yaml:"total"`
	Angle     float64 `yaml:"angle"`
	BaseScale float64 `yaml:"base_scale"`
	MaxUnfold float64 `yaml:"max_unfold"`
}

// LeafID names leaf i of branch b.
func LeafID(branch, i int) string {
	return fmt.Sprintf("branch-%d-leaf-%d", branch, i)
}

// generator derives structural records from a config. Strict mode keys every
// draw by seed and structural path; ambient mode reproduces the per-run
// variation of inclination, length and petal jitter.
type generator struct {
	strict  bool
	ambient seedrand.Source
	layout  LeafLayout
}

func (g *generator) draw(key float64) float64 {
	return seedrand.Draw(key)
}

// jitter draws from the ambient stream when enabled, else by key.
func (g *generator) jitter(key float64) float64 {
	if g.strict {
		return seedrand.Draw(key)
	}
	return g.ambient.Float64(key)
}

type branchKey struct {
	Height   float64
	Seed     int64
	AngleMin float64
	AngleMax float64
}

func (g *generator) branches(k branchKey) []BranchSpec {
	count := BranchCount(k.Height)
	minRad, maxRad := fmath.Radians(k.AngleMin), fmath.Radians(k.AngleMax)
	offset := float64(k.Seed % 10)

	specs := make([]BranchSpec, count)
	for i := range specs {
		rel := 0.15 + float64(i)/float64(count)*0.45
		specs[i] = BranchSpec{
			Index:          i,
			RelativeHeight: rel,
			Azimuth:        float64(i)*goldenAngle + offset,
			Inclination:    seedrand.Range(minRad, maxRad, g.jitter(seedrand.Key(k.Seed, i, branchStride, saltIncline))),
			Length:         0.5 + g.jitter(seedrand.Key(k.Seed, i, branchStride, saltLength))*0.6,
			Delay:          rel * 0.7,
		}
	}
	return specs
}

type curveKey struct {
	Length    float64
	Curvature float64
}

// branchCurve samples the gravity droop and wraps it in a spline.
func branchCurve(k curveKey) *fmath.CatmullRom3 {
	pts := make([]fmath.Vec3, CurvePoints)
	for i := range pts {
		t := float64(i) / float64(CurvePoints-1)
		pts[i] = fmath.Vec3{
			X: 0,
			Y: float32(t * k.Length),
			Z: float32(k.Curvature * t * t * 0.3),
		}
	}
	return fmath.NewCatmullRom3(pts)
}

type leafKey struct {
	Curve      curveKey
	Seed       int64
	LeafSize   float64
	NearFlower float64
	AngleMin   float64
	AngleMax   float64
}

func (g *generator) leaves(branch int, curve *fmath.CatmullRom3, k leafKey) []LeafSpec {
	minRad, maxRad := fmath.Radians(k.AngleMin), fmath.Radians(k.AngleMax)
	ts := g.layout.positions()

	specs := make([]LeafSpec, LeavesPerBranch)
	for i, t := range ts {
		point := curve.Point(float32(t))
		tangent := curve.Tangent(float32(t))

		var key float64
		if g.strict {
			key = seedrand.Key(k.Seed, branch, branchStride, saltLeaf+i)
		} else {
			key = float64(branch*branchStride + i)
		}

		twist := fmath.EulerFromQuat(fmath.QuatFromUnitVectors(fmath.Up, tangent), fmath.OrderXYZ).Z

		scale := 0.35
		if t > 0.6 {
			scale = k.NearFlower
		}

		specs[i] = LeafSpec{
			ID:        LeafID(branch, i),
			Branch:    branch,
			Slot:      i,
			WindIndex: i + branch*10,
			T:         t,
			Position:  point,
			Tangent:   tangent,
			Opening:   seedrand.Range(minRad, maxRad, g.draw(key)),
			Azimuth:   float64(i)*math.Pi*0.8 + float64(branch)*1.5,
			Twist:     float64(twist),
			Scale:     scale * k.LeafSize,
		}
	}
	return specs
}

type flowerKey struct {
	Curve      curveKey
	Seed       int64
	PetalCount int
}

// branchFlower returns the flower at the tip of branch, or nil.
func (g *generator) branchFlower(branch int, curve *fmath.CatmullRom3, k flowerKey) *FlowerSpec {
	base := seedrand.Key(k.Seed, branch, branchStride, saltFlower)
	if g.draw(base) >= BranchFlowerChance {
		return nil
	}
	return &FlowerSpec{
		Slot:       branch,
		Scale:      0.3 + g.draw(base+1)*0.4,
		PetalCount: max(3, int(math.Floor(float64(k.PetalCount)*(0.5+g.draw(base+2)*0.5)))),
		Position:   curve.Point(1),
	}
}

type petalKey struct {
	Seed  int64
	Slot  int
	Index int
}

type petalJitter struct {
	BaseScale float64
	MaxUnfold float64
}

func (g *generator) petalJitter(k petalKey) petalJitter {
	base := seedrand.Key(k.Seed, k.Slot, branchStride, saltPetal+k.Index*2)
	return petalJitter{
		BaseScale: 0.25 + g.jitter(base)*0.05,
		MaxUnfold: math.Pi/2.5 - g.jitter(base+1)*0.15,
	}
}

// petal places petal i of n around the flower center.
func petal(i, n int, j petalJitter) PetalSpec {
	return PetalSpec{
		Index:     i,
		Total:     n,
		Angle:     float64(i) / float64(n) * 2 * math.Pi,
		BaseScale: j.BaseScale,
		MaxUnfold: j.MaxUnfold,
	}
}

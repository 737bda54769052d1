package plant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/scene"
	fmath "github.com/Faultbox/flora/pkg/math"
)

func ptr[T any](v T) *T { return &v }

func findNode(p *Plant, kind scene.Kind, name string) *scene.Node {
	var found *scene.Node
	p.Graph().Each(func(n *scene.Node) {
		if n.Kind == kind && n.Name == name {
			found = n
		}
	})
	return found
}

func TestLeafDisplayColorPrecedence(t *testing.T) {
	red := "#ff0000"
	assert.Equal(t, LeafColor, LeafDisplayColor(false, LeafOverride{}))
	assert.Equal(t, mustHex(red), LeafDisplayColor(false, LeafOverride{Color: &red}))
	assert.Equal(t, HighlightColor, LeafDisplayColor(true, LeafOverride{Color: &red}))
	assert.Equal(t, HighlightColor, LeafDisplayColor(true, LeafOverride{}))
	assert.Equal(t, LeafColor, LeafDisplayColor(false, LeafOverride{Color: ptr("")}))
	assert.Equal(t, LeafColor, LeafDisplayColor(false, LeafOverride{Color: ptr("not a color")}))
}

func TestLeafOverrideSizeAndAngle(t *testing.T) {
	p := grown(t, scenarioConfig())
	id := LeafID(0, 0)
	spec := p.Leaves()[0]
	require.Equal(t, id, spec.ID)

	overrides := Overrides{id: {Size: ptr(2.0), Angle: ptr(10.0)}}
	p.Update(Frame{Elapsed: 10, Overrides: overrides})

	leaf := findNode(p, scene.KindLeaf, id)
	require.NotNil(t, leaf)
	assert.InDelta(t, spec.Scale*2, leaf.Local.Scale.X, 1e-6)

	tilt, twist := LeafWind(10, spec.WindIndex, float64(spec.Position.Y))
	assert.InDelta(t, fmath.Radians(10)+tilt, leaf.Local.Rotation.X, 1e-6)
	assert.InDelta(t, spec.Azimuth, leaf.Local.Rotation.Y, 1e-6)
	assert.InDelta(t, spec.Twist+twist, leaf.Local.Rotation.Z, 1e-6)
	assert.Equal(t, fmath.OrderYXZ, leaf.Local.Rotation.Order)

	// Without an override the generated opening is used.
	p.Update(Frame{Elapsed: 10})
	assert.InDelta(t, spec.Opening+tilt, leaf.Local.Rotation.X, 1e-6)
	assert.InDelta(t, spec.Scale, leaf.Local.Scale.X, 1e-6)
}

func TestLeafOverridesAreReadOnly(t *testing.T) {
	p := grown(t, scenarioConfig())
	overrides := Overrides{LeafID(1, 2): {Size: ptr(0.5), Color: ptr("#123456")}}
	snapshot := Overrides{LeafID(1, 2): {Size: ptr(0.5), Color: ptr("#123456")}}

	for i := 0; i < 5; i++ {
		p.Update(Frame{Elapsed: float64(i), Delta: 0.1, Overrides: overrides, Selected: LeafID(1, 2)})
	}
	assert.Equal(t, snapshot, overrides)
}

func TestTinyLeafIsCulled(t *testing.T) {
	p := grown(t, scenarioConfig())
	id := LeafID(2, 1)
	p.Update(Frame{Elapsed: 10, Overrides: Overrides{id: {Size: ptr(0.001)}}})

	for _, it := range p.Graph().DrawList() {
		assert.NotEqual(t, id, it.HitID, "culled leaf must not reach the renderer")
	}
	for _, it := range p.Graph().Pickables() {
		assert.NotEqual(t, id, it.HitID)
	}
	assert.Len(t, p.Leaves(), 24)
}

func TestSelectedLeafIsHighlighted(t *testing.T) {
	p := grown(t, scenarioConfig())
	id := LeafID(4, 0)
	green := "#00ff00"
	overrides := Overrides{id: {Color: &green}}

	p.Update(Frame{Elapsed: 10, Overrides: overrides})
	blade := findNode(p, scene.KindBlade, id+"-blade")
	require.NotNil(t, blade)
	assert.Equal(t, mustHex(green), blade.Material.Color)

	p.Update(Frame{Elapsed: 10, Overrides: overrides, Selected: id})
	assert.Equal(t, HighlightColor, blade.Material.Color)

	other := findNode(p, scene.KindBlade, LeafID(4, 1)+"-blade")
	require.NotNil(t, other)
	assert.Equal(t, LeafColor, other.Material.Color)
}

func TestPetalBloomOrdering(t *testing.T) {
	assert.Equal(t, 0.0, PetalActivation(0, 10))
	assert.InDelta(t, 0.18, PetalActivation(9, 10), 1e-12)
	assert.Greater(t, PetalActivation(9, 10), PetalActivation(0, 10))

	for g := 0.2; g < 0.4; g += 0.01 {
		assert.GreaterOrEqual(t, PetalUnfolding(g, 0, 10), PetalUnfolding(g, 9, 10), "growth %v", g)
	}
	assert.Equal(t, 0.0, PetalUnfolding(0.2, 0, 10))
	// Flat half a growth unit after activation, up to rounding.
	assert.InDelta(t, 1.0, PetalUnfolding(0.7, 0, 10), 1e-12)
	assert.Equal(t, 1.0, PetalUnfolding(0.71, 0, 10))
	assert.InDelta(t, 0.0, PetalUnfolding(0.38, 9, 10), 1e-12)
	assert.InDelta(t, 1.0, PetalUnfolding(0.88, 9, 10), 1e-12)
	assert.Equal(t, 1.0, PetalUnfolding(0.9, 9, 10))
}

func TestReseedDropsOldSelection(t *testing.T) {
	p := grown(t, scenarioConfig())
	id := LeafID(0, 0)
	blue := "#0000ff"
	p.Update(Frame{Elapsed: 10, Overrides: Overrides{id: {Color: &blue}}, Selected: id})

	// A non-seed edit keeps posing with the last frame's selection.
	cfg := scenarioConfig()
	cfg.Curvature = 0.8
	require.False(t, p.Configure(cfg).Has(ChangeSeed))
	blade := findNode(p, scene.KindBlade, id+"-blade")
	require.NotNil(t, blade)
	assert.Equal(t, HighlightColor, blade.Material.Color)

	cfg.Seed = 43
	require.True(t, p.Configure(cfg).Has(ChangeSeed))
	blade = findNode(p, scene.KindBlade, id+"-blade")
	require.NotNil(t, blade)
	assert.Equal(t, LeafColor, blade.Material.Color)
}

func TestPetalJitterIsStable(t *testing.T) {
	p := configured(t, DefaultOptions(), scenarioConfig())
	var before []PetalSpec
	for _, ref := range p.petalRefs {
		before = append(before, ref.spec)
	}
	for i := 0; i < 10; i++ {
		p.Update(Frame{Elapsed: float64(i), Delta: 0.3})
	}
	cfg := scenarioConfig()
	cfg.LeafSize = 3
	p.Configure(cfg)

	var after []PetalSpec
	for _, ref := range p.petalRefs {
		after = append(after, ref.spec)
	}
	assert.Equal(t, before, after)

	for _, ps := range after {
		assert.GreaterOrEqual(t, ps.BaseScale, 0.25)
		assert.Less(t, ps.BaseScale, 0.3)
		assert.LessOrEqual(t, ps.MaxUnfold, math.Pi/2.5)
		assert.Greater(t, ps.MaxUnfold, math.Pi/2.5-0.15)
	}
}

func TestPetalPose(t *testing.T) {
	p := configured(t, DefaultOptions(), scenarioConfig())
	p.Update(Frame{Elapsed: 1.5, Delta: 1.5}) // growth 0.3

	var terminal []*scene.Node
	p.Graph().Each(func(n *scene.Node) {
		if n.Kind == scene.KindPetal && p.petalRefs[n.Organ].slot == TerminalSlot {
			terminal = append(terminal, n)
		}
	})
	require.Len(t, terminal, 10)

	for _, n := range terminal {
		spec := p.petalRefs[n.Organ].spec
		unfold := PetalUnfolding(0.3, spec.Index, spec.Total)
		assert.InDelta(t, unfold*spec.MaxUnfold, n.Local.Rotation.X, 1e-6)
		assert.InDelta(t, spec.BaseScale*0.45, n.Local.Scale.X, 1e-6)
	}
}

func TestStemPose(t *testing.T) {
	p := configured(t, DefaultOptions(), scenarioConfig())
	p.Update(Frame{Elapsed: 2.5, Delta: 2.5}) // growth 0.5

	stem := findNode(p, scene.KindStem, "stem")
	require.NotNil(t, stem)
	assert.InDelta(t, 1.0, stem.Local.Position.Y, 1e-6)
	assert.InDelta(t, 0.8, stem.Local.Scale.X, 1e-6)
	assert.InDelta(t, 0.5, stem.Local.Scale.Y, 1e-6)
	assert.Equal(t, float32(4), stem.Primitive.Height)

	sway := findNode(p, scene.KindPlant, "plant-42")
	require.NotNil(t, sway)
	x, z := StemSway(2.5)
	assert.InDelta(t, x, sway.Local.Rotation.X, 1e-6)
	assert.InDelta(t, z, sway.Local.Rotation.Z, 1e-6)
}

func TestWindTerms(t *testing.T) {
	x, z := StemSway(0)
	assert.InDelta(t, 0.015, x, 1e-12)
	assert.InDelta(t, 0, z, 1e-12)

	assert.InDelta(t, math.Sin(1)*0.05, BranchWind(0, 1), 1e-12)

	tilt, twist := LeafWind(0, 3, 0.4)
	assert.InDelta(t, math.Sin(0.4)*0.05, tilt, 1e-12, "no flutter while sin(t) is zero")
	assert.Equal(t, 0.0, twist)

	tilt, twist = LeafWind(1, 2, 0)
	flutter := math.Sin(12) * 0.02 * math.Sin(1)
	assert.InDelta(t, flutter+math.Sin(2)*0.05, tilt, 1e-12)
	assert.InDelta(t, flutter*0.5, twist, 1e-12)
}

func TestBranchGrowth(t *testing.T) {
	assert.Equal(t, 0.0, BranchGrowth(0.1, 0.2))
	assert.InDelta(t, 0.4, BranchGrowth(0.3, 0.2), 1e-12)
	assert.Equal(t, 1.0, BranchGrowth(1, 0.2))
}

func TestNormalized(t *testing.T) {
	cfg := Config{Seed: 3, Curvature: 2, LeafScaleNearFlower: -1, PetalCount: 0, Height: -1}
	n := cfg.Normalized()
	assert.Equal(t, 1.0, n.Curvature)
	assert.Equal(t, 0.0, n.LeafScaleNearFlower)
	assert.Equal(t, 1, n.PetalCount)
	assert.Equal(t, 0.0, n.Height)
	assert.Equal(t, "plant-3", n.ID)

	cfg.ID = "custom"
	assert.Equal(t, "custom", cfg.Normalized().ID)
}

func TestParseLeafLayout(t *testing.T) {
	l, err := ParseLeafLayout("even")
	require.NoError(t, err)
	assert.Equal(t, LayoutEven, l)

	l, err = ParseLeafLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutThirds, l)

	_, err = ParseLeafLayout("spiral")
	assert.Error(t, err)
}

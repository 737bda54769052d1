package plant

import (
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/scene"
	fmath "github.com/Faultbox/flora/pkg/math"
)

// visibilityEpsilon is the scale below which organs are culled.
const visibilityEpsilon = 0.01

// Update advances growth by the frame delta and poses every node for the
// frame's elapsed time. It does nothing before the first Configure.
func (p *Plant) Update(f Frame) {
	if !p.configured {
		return
	}
	t, d := p.clock.Tick(f.Elapsed, f.Delta)
	wasDone := p.growth.Done()
	p.growth.Advance(d * p.opts.GrowthRate)
	if !wasDone && p.growth.Done() {
		p.log.Debug("plant fully grown", zap.String("id", p.cfg.ID), zap.Float64("elapsed", t))
	}
	p.last = f
	p.pose(t, f)
}

// pose writes every node's local transform for time t. Each organ is a
// pure function of t, the growth value and its structural record.
func (p *Plant) pose(t float64, f Frame) {
	g := p.growth.Progress()
	for i, b := range p.branches {
		p.branchScale[i] = BranchGrowth(g, b.Delay)
	}
	p.graph.Each(func(n *scene.Node) {
		p.poseNode(n, t, g, f)
	})
}

func (p *Plant) poseNode(n *scene.Node, t, g float64, f Frame) {
	h := p.cfg.Height

	switch n.Kind {
	case scene.KindPlant:
		x, z := StemSway(t)
		n.Local.Rotation = fmath.Euler{X: float32(x), Z: float32(z)}

	case scene.KindStem:
		n.Local.Position = fmath.Vec3{Y: float32(h * g / 2)}
		thick := float32(0.6 + 0.4*g)
		n.Local.Scale = fmath.Vec3{X: thick, Y: float32(g), Z: thick}

	case scene.KindBranchMount:
		b := p.branches[n.Organ]
		n.Local.Position = fmath.Vec3{Y: float32(b.RelativeHeight * h * g)}
		n.Visible = p.branchScale[n.Organ] > visibilityEpsilon

	case scene.KindBranch:
		b := p.branches[n.Organ]
		n.Local.Rotation.X = float32(b.Inclination + BranchWind(t, b.Index))

	case scene.KindBranchGrowth:
		n.Local.Uniform(float32(p.branchScale[n.Organ]))

	case scene.KindLeaf:
		spec := p.leafRefs[n.Organ].spec
		ov, _ := lookup(f.Overrides, spec.ID)
		s := effectiveLeafScale(spec, ov, p.branchScale[spec.Branch])
		n.Visible = s >= visibilityEpsilon
		n.Local.Uniform(float32(s))

		tilt := spec.Opening
		if ov.Angle != nil {
			tilt = fmath.Radians(*ov.Angle)
		}
		wt, wz := LeafWind(t, spec.WindIndex, float64(spec.Position.Y))
		n.Local.Rotation = fmath.Euler{
			X:     float32(tilt + wt),
			Y:     float32(spec.Azimuth),
			Z:     float32(spec.Twist + wz),
			Order: fmath.OrderYXZ,
		}

	case scene.KindBlade:
		spec := p.leafRefs[n.Organ].spec
		ov, _ := lookup(f.Overrides, spec.ID)
		n.Material.Color = LeafDisplayColor(spec.ID == f.Selected && f.Selected != "", ov)

	case scene.KindFlowerMount:
		if n.Organ != TerminalSlot {
			return
		}
		n.Local.Position = fmath.Vec3{Y: float32(h * g)}
		n.Local.Uniform(float32(math.Min(1, g*1.2)))

	case scene.KindStamen:
		fg := float32(p.flowerGrowth(int(n.Organ), g))
		n.Local.Scale = fmath.Vec3{X: 0.25 * fg, Y: 0.15 * fg, Z: 0.25 * fg}

	case scene.KindPetal:
		ref := p.petalRefs[n.Organ]
		fg := p.flowerGrowth(ref.slot, g)
		unfold := PetalUnfolding(fg, ref.spec.Index, ref.spec.Total)
		n.Local.Rotation.X = float32(unfold * ref.spec.MaxUnfold)
		n.Local.Uniform(float32(ref.spec.BaseScale * math.Min(1, fg*1.5)))
	}
}

// flowerGrowth is the growth a flower in slot animates with: the plant's
// own for the terminal flower, the carrying branch's scale otherwise.
func (p *Plant) flowerGrowth(slot int, g float64) float64 {
	if slot == TerminalSlot {
		return g
	}
	return p.branchScale[slot]
}

func lookup(l OverrideLookup, id string) (LeafOverride, bool) {
	if l == nil {
		return LeafOverride{}, false
	}
	return l.LeafOverride(id)
}

// effectiveLeafScale applies the override size and the growth ramp.
func effectiveLeafScale(spec LeafSpec, ov LeafOverride, growth float64) float64 {
	size := 1.0
	if ov.Size != nil {
		size = *ov.Size
	}
	return spec.Scale * size * math.Min(1, growth*2)
}

// LeafDisplayColor resolves a blade color: the highlight when selected,
// then the override color, then the default green.
func LeafDisplayColor(selected bool, ov LeafOverride) color.RGBA {
	if selected {
		return HighlightColor
	}
	if ov.Color != nil {
		return colorOr(*ov.Color, LeafColor)
	}
	return LeafColor
}

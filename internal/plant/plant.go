package plant

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/scene"
	fmath "github.com/Faultbox/flora/pkg/math"
	"github.com/Faultbox/flora/pkg/seedrand"
)

// Change reports what a Configure call did.
type Change uint8

const (
	// ChangeSeed means growth was reset and seed-bound caches dropped.
	ChangeSeed Change = 1 << iota
	// ChangeRebuild means the scene graph was rebuilt.
	ChangeRebuild
)

// Has reports whether c includes f.
func (c Change) Has(f Change) bool { return c&f != 0 }

// Frame is the per-frame input from the host.
type Frame struct {
	Elapsed   float64
	Delta     float64
	Overrides OverrideLookup
	Selected  string
}

type leafRef struct {
	spec LeafSpec
}

type petalRef struct {
	slot int
	spec PetalSpec
}

type branchCache struct {
	curve  memo[curveKey, *fmath.CatmullRom3]
	leaves memo[leafKey, []LeafSpec]
	flower memo[flowerKey, *FlowerSpec]
}

// Plant owns the growth state, the derived structure and the scene graph of
// one generated plant.
type Plant struct {
	opts Options
	log  *zap.Logger
	gen  generator

	cfg        Config
	configured bool
	epoch      uint64

	growth Growth
	clock  Clock
	last   Frame

	graph     *scene.Graph
	gradients *GradientCache

	branchMemo memo[branchKey, []BranchSpec]
	perBranch  []branchCache
	petals     map[petalKey]petalJitter

	branches    []BranchSpec
	branchScale []float64
	leafRefs    []leafRef
	petalRefs   []petalRef
	flowers     []FlowerSpec
}

// New creates an unconfigured plant. Update is a no-op until Configure.
func New(opts Options) *Plant {
	if opts.GrowthRate <= 0 {
		opts.GrowthRate = DefaultGrowthRate
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := &Plant{
		opts:      opts,
		log:       log,
		graph:     scene.NewGraph(),
		gradients: NewGradientCache(8),
		petals:    make(map[petalKey]petalJitter),
	}
	p.gen = generator{strict: !opts.AmbientJitter, layout: opts.LeafLayout}
	if opts.AmbientJitter {
		p.gen.ambient = seedrand.NewAmbient(opts.Ambient)
	}
	return p
}

// Configure applies a new parameter set. A new seed resets growth and drops
// every cache bound to the old seed; any other change rebuilds the graph
// from memoized records, so only the parts whose inputs moved are derived
// again.
func (p *Plant) Configure(cfg Config) Change {
	cfg = cfg.Normalized()

	var change Change
	if !p.configured || cfg.Seed != p.cfg.Seed {
		p.growth.Reset()
		clear(p.petals)
		p.branchMemo.reset()
		p.perBranch = p.perBranch[:0]
		// Overrides and selection belong to the old seed.
		p.last = Frame{}
		p.epoch++
		change |= ChangeSeed
	}
	if !p.configured || cfg != p.cfg {
		p.cfg = cfg
		p.configured = true
		p.rebuild()
		change |= ChangeRebuild
	}
	if change != 0 {
		p.log.Debug("plant configured",
			zap.String("id", cfg.ID),
			zap.Int64("seed", cfg.Seed),
			zap.Int("branches", len(p.branches)),
			zap.Bool("reseeded", change.Has(ChangeSeed)),
		)
	}
	return change
}

// Config returns the normalized parameters in use.
func (p *Plant) Config() Config { return p.cfg }

// Configured reports whether Configure has been called.
func (p *Plant) Configured() bool { return p.configured }

// Epoch increases every time the seed changes.
func (p *Plant) Epoch() uint64 { return p.epoch }

// Graph returns the scene graph. Nodes are mutated in place by Update.
func (p *Plant) Graph() *scene.Graph { return p.graph }

// Growth returns the current growth progress.
func (p *Plant) Growth() float64 { return p.growth.Progress() }

// Branches returns the current branch records.
func (p *Plant) Branches() []BranchSpec { return p.branches }

// Flowers returns every flower, the terminal one last.
func (p *Plant) Flowers() []FlowerSpec { return p.flowers }

// Leaves returns every leaf record in branch order.
func (p *Plant) Leaves() []LeafSpec {
	out := make([]LeafSpec, len(p.leafRefs))
	for i, ref := range p.leafRefs {
		out[i] = ref.spec
	}
	return out
}

func (p *Plant) rebuild() {
	cfg := p.cfg
	g := p.graph
	g.Reset()
	p.leafRefs = p.leafRefs[:0]
	p.petalRefs = p.petalRefs[:0]
	p.flowers = p.flowers[:0]

	bk := branchKey{Height: cfg.Height, Seed: cfg.Seed, AngleMin: cfg.BranchAngleMin, AngleMax: cfg.BranchAngleMax}
	p.branches = p.branchMemo.get(bk, func() []BranchSpec { return p.gen.branches(bk) })
	if len(p.perBranch) != len(p.branches) {
		caches := make([]branchCache, len(p.branches))
		copy(caches, p.perBranch)
		p.perBranch = caches
	}
	p.branchScale = make([]float64, len(p.branches))

	if p.opts.Ground {
		p.addGround()
	}

	sway := g.Add(g.Root(), scene.Node{Kind: scene.KindPlant, Organ: -1, Name: cfg.ID})
	g.Add(sway, scene.Node{
		Kind:  scene.KindStem,
		Organ: -1,
		Name:  "stem",
		Primitive: scene.Primitive{
			Kind:         scene.PrimTaperedCylinder,
			Key:          fmt.Sprintf("stem:%g", cfg.Height),
			RadiusTop:    0.04,
			RadiusBottom: 0.1,
			Height:       float32(cfg.Height),
			Segments:     16,
		},
		Material: scene.Opaque(StemColor),
	})

	for i, b := range p.branches {
		p.addBranch(sway, b, &p.perBranch[i])
	}

	p.addFlower(sway, FlowerSpec{Slot: TerminalSlot, Scale: 1, PetalCount: cfg.PetalCount})
	p.pose(p.clock.Elapsed(), p.last)
}

func (p *Plant) addBranch(parent scene.NodeID, b BranchSpec, cache *branchCache) {
	cfg := p.cfg
	g := p.graph
	i := b.Index

	ck := curveKey{Length: b.Length, Curvature: cfg.Curvature}
	curve := cache.curve.get(ck, func() *fmath.CatmullRom3 { return branchCurve(ck) })

	lk := leafKey{
		Curve:      ck,
		Seed:       cfg.Seed,
		LeafSize:   cfg.LeafSize,
		NearFlower: cfg.LeafScaleNearFlower,
		AngleMin:   cfg.LeafAngleMin,
		AngleMax:   cfg.LeafAngleMax,
	}
	leaves := cache.leaves.get(lk, func() []LeafSpec { return p.gen.leaves(i, curve, lk) })

	fk := flowerKey{Curve: ck, Seed: cfg.Seed, PetalCount: cfg.PetalCount}
	flower := cache.flower.get(fk, func() *FlowerSpec { return p.gen.branchFlower(i, curve, fk) })

	mount := g.Add(parent, scene.Node{Kind: scene.KindBranchMount, Organ: int32(i), Name: fmt.Sprintf("branch-%d", i)})

	azimuth := scene.NewTransform()
	azimuth.Rotation.Y = float32(b.Azimuth)
	turn := g.Add(mount, scene.Node{Kind: scene.KindGroup, Organ: int32(i), Local: azimuth})

	incline := scene.NewTransform()
	incline.Rotation.X = float32(b.Inclination)
	branch := g.Add(turn, scene.Node{Kind: scene.KindBranch, Organ: int32(i), Local: incline})

	grow := g.Add(branch, scene.Node{Kind: scene.KindBranchGrowth, Organ: int32(i)})
	g.Add(grow, scene.Node{
		Kind:  scene.KindTube,
		Organ: int32(i),
		Name:  fmt.Sprintf("branch-%d-tube", i),
		Primitive: scene.Primitive{
			Kind:     scene.PrimTube,
			Key:      fmt.Sprintf("tube:%g:%g", ck.Length, ck.Curvature),
			Radius:   0.02,
			Segments: 6,
			Rings:    8,
			Path:     curve.Sample(8),
		},
		Material: scene.Opaque(StemColor),
	})

	for _, leaf := range leaves {
		p.addLeaf(grow, leaf)
	}
	if flower != nil {
		p.addFlower(grow, *flower)
	}
}

func (p *Plant) addLeaf(parent scene.NodeID, spec LeafSpec) {
	g := p.graph
	ref := int32(len(p.leafRefs))
	p.leafRefs = append(p.leafRefs, leafRef{spec: spec})

	local := scene.At(spec.Position)
	local.Rotation = fmath.Euler{
		X:     float32(spec.Opening),
		Y:     float32(spec.Azimuth),
		Z:     float32(spec.Twist),
		Order: fmath.OrderYXZ,
	}
	local.Uniform(float32(spec.Scale))
	leaf := g.Add(parent, scene.Node{Kind: scene.KindLeaf, Organ: ref, Name: spec.ID, Local: local})

	petiole := scene.At(fmath.Vec3{Y: 0.1})
	petiole.Scale = fmath.Vec3{X: 0.02, Y: 0.2, Z: 0.02}
	g.Add(leaf, scene.Node{
		Kind:      scene.KindPetiole,
		Organ:     ref,
		Name:      spec.ID + "-petiole",
		HitID:     spec.ID,
		Local:     petiole,
		Primitive: petiolePrimitive,
		Material:  scene.Opaque(PetioleColor),
	})

	blade := scene.At(fmath.Vec3{Y: 0.2})
	blade.Rotation.X = 0.5
	mat := scene.Opaque(LeafColor)
	mat.DoubleSided = true
	g.Add(leaf, scene.Node{
		Kind:      scene.KindBlade,
		Organ:     ref,
		Name:      spec.ID + "-blade",
		HitID:     spec.ID,
		Local:     blade,
		Primitive: bladePrimitive,
		Material:  mat,
	})
}

func (p *Plant) addFlower(parent scene.NodeID, spec FlowerSpec) {
	cfg := p.cfg
	g := p.graph
	p.flowers = append(p.flowers, spec)

	mountLocal := scene.At(spec.Position)
	mountLocal.Uniform(float32(spec.Scale))
	if spec.Terminal() {
		mountLocal.Rotation.X = math.Pi / 5
	}
	mount := g.Add(parent, scene.Node{
		Kind:  scene.KindFlowerMount,
		Organ: int32(spec.Slot),
		Name:  flowerName(spec.Slot),
		Local: mountLocal,
	})

	flower := g.Add(mount, scene.Node{Kind: scene.KindFlower, Organ: int32(spec.Slot)})
	g.Add(flower, scene.Node{
		Kind:      scene.KindStamen,
		Organ:     int32(spec.Slot),
		Name:      flowerName(spec.Slot) + "-stamen",
		Primitive: stamenPrimitive,
		Material:  scene.Opaque(StamenColor),
	})

	tex, texKey := p.gradients.Get(cfg.PetalGradientStart, cfg.PetalGradientEnd)
	material := scene.Material{
		Color:       colorOr(cfg.Color, mustHex("#fffff0")),
		Texture:     tex,
		TextureKey:  texKey,
		Opacity:     0.95,
		DoubleSided: true,
		Transparent: true,
	}

	for i := 0; i < spec.PetalCount; i++ {
		pk := petalKey{Seed: cfg.Seed, Slot: spec.Slot, Index: i}
		j, ok := p.petals[pk]
		if !ok {
			j = p.gen.petalJitter(pk)
			p.petals[pk] = j
		}
		ps := petal(i, spec.PetalCount, j)
		ref := int32(len(p.petalRefs))
		p.petalRefs = append(p.petalRefs, petalRef{slot: spec.Slot, spec: ps})

		a := float32(ps.Angle)
		place := scene.At(fmath.Vec3{
			X: float32(math.Cos(ps.Angle)) * 0.2,
			Y: float32(i) * 0.0005,
			Z: float32(math.Sin(ps.Angle)) * 0.2,
		})
		place.Rotation.Y = -a + math.Pi/2
		placed := g.Add(flower, scene.Node{Kind: scene.KindGroup, Organ: ref, Local: place})

		pivot := g.Add(placed, scene.Node{Kind: scene.KindPetal, Organ: ref})
		g.Add(pivot, scene.Node{
			Kind:      scene.KindPetalDisc,
			Organ:     ref,
			Name:      fmt.Sprintf("%s-petal-%d", flowerName(spec.Slot), i),
			Local:     scene.At(fmath.Vec3{Y: 1}),
			Primitive: petalPrimitive,
			Material:  material,
		})
	}
}

func (p *Plant) addGround() {
	g := p.graph
	for _, d := range []struct {
		name   string
		radius float32
		y      float32
		c      scene.Material
	}{
		{"soil", 20, -0.02, scene.Opaque(SoilColor)},
		{"grass", 1.5, -0.01, scene.Opaque(GrassColor)},
	} {
		local := scene.At(fmath.Vec3{Y: d.y})
		local.Rotation.X = -math.Pi / 2
		g.Add(g.Root(), scene.Node{
			Kind:  scene.KindGround,
			Organ: -1,
			Name:  d.name,
			Local: local,
			Primitive: scene.Primitive{
				Kind:     scene.PrimDisc,
				Key:      fmt.Sprintf("disc:%g:64", d.radius),
				Radius:   d.radius,
				Segments: 64,
			},
			Material: d.c,
		})
	}
}

func flowerName(slot int) string {
	if slot == TerminalSlot {
		return "flower"
	}
	return fmt.Sprintf("branch-%d-flower", slot)
}

var (
	stamenPrimitive = scene.Primitive{Kind: scene.PrimSphere, Key: "sphere:1:32:16", Radius: 1, Segments: 32, Rings: 16}
	petalPrimitive  = scene.Primitive{Kind: scene.PrimDisc, Key: "disc:1:32", Radius: 1, Segments: 32}

	petiolePrimitive = scene.Primitive{
		Kind:         scene.PrimTaperedCylinder,
		Key:          "cylinder:0.5:1:1:8",
		RadiusTop:    0.5,
		RadiusBottom: 1,
		Height:       1,
		Segments:     8,
	}

	bladePrimitive = scene.Primitive{Kind: scene.PrimShape, Key: "leaf-blade", Outline: bladeOutline()}
)

// bladeOutline traces the two Bezier lobes of a leaf blade.
func bladeOutline() []fmath.Vec2 {
	right := fmath.SampleCubicBezier(
		fmath.Vec2{X: 0, Y: 0}, fmath.Vec2{X: 0.1, Y: 0.1}, fmath.Vec2{X: 0.2, Y: 0.4}, fmath.Vec2{X: 0, Y: 0.8}, 12)
	left := fmath.SampleCubicBezier(
		fmath.Vec2{X: 0, Y: 0.8}, fmath.Vec2{X: -0.2, Y: 0.4}, fmath.Vec2{X: -0.1, Y: 0.1}, fmath.Vec2{X: 0, Y: 0}, 12)
	// Both lobes share their joints; the closing point repeats the start.
	out := append(right, left[1:len(left)-1]...)
	return out
}

// Package scene holds the arena scene graph that the plant generator fills
// and hosts render from.
package scene

import (
	"image"
	"image/color"

	"github.com/Faultbox/flora/pkg/math"
)

// NodeID indexes a node in a Graph. Parents always have a lower ID than
// their children.
type NodeID int32

// None marks the absence of a node (the root's parent).
const None NodeID = -1

// Kind tags a node with the organ role it plays. The per-frame update pass
// dispatches on it.
type Kind uint8

const (
	KindGroup Kind = iota
	KindPlant
	KindStem
	KindBranchMount
	KindBranch
	KindBranchGrowth
	KindTube
	KindLeaf
	KindPetiole
	KindBlade
	KindFlowerMount
	KindFlower
	KindStamen
	KindPetal
	KindPetalDisc
	KindGround
)

var kindNames = [...]string{
	KindGroup:        "group",
	KindPlant:        "plant",
	KindStem:         "stem",
	KindBranchMount:  "branch-mount",
	KindBranch:       "branch",
	KindBranchGrowth: "branch-growth",
	KindTube:         "tube",
	KindLeaf:         "leaf",
	KindPetiole:      "petiole",
	KindBlade:        "blade",
	KindFlowerMount:  "flower-mount",
	KindFlower:       "flower",
	KindStamen:       "stamen",
	KindPetal:        "petal",
	KindPetalDisc:    "petal-disc",
	KindGround:       "ground",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Transform is a node's local position, Euler rotation and scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// At returns a unit-scale transform positioned at p.
func At(p math.Vec3) Transform {
	t := NewTransform()
	t.Position = p
	return t
}

// Uniform sets all three scale components to s.
func (t *Transform) Uniform(s float32) {
	t.Scale = math.Vec3{X: s, Y: s, Z: s}
}

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation.Quat(), t.Scale)
}

// PrimitiveKind selects the geometry a host tessellates for a node.
type PrimitiveKind uint8

const (
	PrimNone PrimitiveKind = iota
	PrimSphere
	PrimDisc
	PrimTaperedCylinder
	PrimTube
	PrimShape
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimSphere:
		return "sphere"
	case PrimDisc:
		return "disc"
	case PrimTaperedCylinder:
		return "cylinder"
	case PrimTube:
		return "tube"
	case PrimShape:
		return "shape"
	default:
		return "none"
	}
}

// Primitive describes renderable geometry. Key identifies identical
// geometry so hosts can share tessellated meshes.
type Primitive struct {
	Kind PrimitiveKind
	Key  string

	Radius       float32 // sphere, disc, tube
	RadiusTop    float32 // cylinder
	RadiusBottom float32 // cylinder
	Height       float32 // cylinder
	Segments     int     // radial segments
	Rings        int     // sphere height segments, tube length segments

	Path    []math.Vec3 // tube centerline samples
	Outline []math.Vec2 // flat shape in the XY plane
}

// Material is a flat unlit surface, optionally textured.
type Material struct {
	Color       color.RGBA
	Texture     *image.RGBA
	TextureKey  string
	Opacity     float32
	DoubleSided bool
	Transparent bool
	DepthWrite  bool
}

// Opaque returns a single-sided, depth-writing material of the given color.
func Opaque(c color.RGBA) Material {
	return Material{Color: c, Opacity: 1, DepthWrite: true}
}

// Node is one entry of the arena.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Children []NodeID

	Kind Kind
	// Organ indexes the per-kind structural record the node was built from
	// (branch index, leaf slot, petal index). -1 when unused.
	Organ int32
	Name  string
	// HitID is reported to the host when a pickable node is hit.
	HitID string

	Local     Transform
	Primitive Primitive
	Material  Material

	// Visible false culls the node and its whole subtree.
	Visible bool
}

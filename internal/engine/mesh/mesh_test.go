package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

func assertIndicesValid(t *testing.T, m *Mesh) {
	t.Helper()
	require.Zero(t, len(m.Indices)%3)
	for _, i := range m.Indices {
		require.Less(t, int(i), len(m.Vertices))
	}
}

func TestBuildSphere(t *testing.T) {
	m := Build(scene.Primitive{Kind: scene.PrimSphere, Radius: 2, Segments: 8, Rings: 4})
	require.NotNil(t, m)
	assertIndicesValid(t, m)

	assert.Len(t, m.Vertices, 9*5)
	// Poles contribute one triangle per segment, middle rows two.
	assert.Equal(t, 8+8*2*2+8, m.Triangles())
	assert.InDelta(t, 2, m.Bounds.Max[1], 1e-5)
	assert.InDelta(t, -2, m.Bounds.Min[1], 1e-5)
	for _, v := range m.Vertices {
		p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		assert.InDelta(t, 2, p.Length(), 1e-4)
	}
}

func TestBuildDisc(t *testing.T) {
	m := Build(scene.Primitive{Kind: scene.PrimDisc, Radius: 1, Segments: 32})
	require.NotNil(t, m)
	assertIndicesValid(t, m)

	assert.Equal(t, 32, m.Triangles())
	assert.InDelta(t, -1, m.Bounds.Min[1], 1e-5)
	assert.InDelta(t, 1, m.Bounds.Max[1], 1e-5)
	assert.Equal(t, float32(0), m.Bounds.Max[2])
	// Bottom edge samples the base row of a gradient.
	assert.InDelta(t, 0.5, m.Vertices[0].TexCoord[1], 1e-6)
}

func TestBuildTaperedCylinder(t *testing.T) {
	m := Build(scene.Primitive{Kind: scene.PrimTaperedCylinder, RadiusTop: 0.04, RadiusBottom: 0.1, Height: 4, Segments: 16})
	require.NotNil(t, m)
	assertIndicesValid(t, m)

	assert.InDelta(t, 2, m.Bounds.Max[1], 1e-6)
	assert.InDelta(t, -2, m.Bounds.Min[1], 1e-6)
	assert.InDelta(t, 0.1, m.Bounds.Max[0], 1e-4)
	// Sides plus both caps.
	assert.Equal(t, 16*2+16*2, m.Triangles())
}

func TestBuildTubeFollowsPath(t *testing.T) {
	curve := math.NewCatmullRom3([]math.Vec3{{}, {Y: 0.5, Z: 0.02}, {Y: 1, Z: 0.15}})
	path := curve.Sample(8)
	m := Build(scene.Primitive{Kind: scene.PrimTube, Path: path, Radius: 0.02, Segments: 6})
	require.NotNil(t, m)
	assertIndicesValid(t, m)

	assert.Len(t, m.Vertices, 9*7)
	assert.Equal(t, 8*6*2, m.Triangles())
	for i, p := range path {
		for j := 0; j <= 6; j++ {
			v := m.Vertices[i*7+j].Position
			d := math.Vec3{X: v[0], Y: v[1], Z: v[2]}.Distance(p)
			assert.InDelta(t, 0.02, d, 1e-4, "ring %d vertex %d", i, j)
		}
	}
}

func TestBuildShapeLeafBlade(t *testing.T) {
	right := math.SampleCubicBezier(math.Vec2{}, math.Vec2{X: 0.1, Y: 0.1}, math.Vec2{X: 0.2, Y: 0.4}, math.Vec2{Y: 0.8}, 12)
	left := math.SampleCubicBezier(math.Vec2{Y: 0.8}, math.Vec2{X: -0.2, Y: 0.4}, math.Vec2{X: -0.1, Y: 0.1}, math.Vec2{}, 12)
	outline := append(right, left[1:]...)

	m := Build(scene.Primitive{Kind: scene.PrimShape, Outline: outline})
	require.NotNil(t, m)
	assertIndicesValid(t, m)

	// The closing point duplicates the first and is dropped.
	assert.Len(t, m.Vertices, len(outline)-1)
	assert.Equal(t, len(outline)-3, m.Triangles())
	assert.InDelta(t, 0.8, m.Bounds.Max[1], 1e-6)
}

func TestTriangulateArea(t *testing.T) {
	square := []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}} // clockwise
	tris := Triangulate(square)
	require.Len(t, tris, 2)

	var area float32
	for _, tr := range tris {
		c := cross2(square[tr[0]], square[tr[1]], square[tr[2]])
		assert.Positive(t, c, "triangles are wound counter-clockwise")
		area += c / 2
	}
	assert.InDelta(t, 1, area, 1e-6)
}

func TestTriangulateConcave(t *testing.T) {
	// An L shape has a reflex vertex that must not be clipped.
	l := []math.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}
	tris := Triangulate(l)
	require.Len(t, tris, 4)
	var area float32
	for _, tr := range tris {
		area += cross2(l[tr[0]], l[tr[1]], l[tr[2]]) / 2
	}
	assert.InDelta(t, 3, area, 1e-6)
}

func TestBuildNone(t *testing.T) {
	assert.Nil(t, Build(scene.Primitive{}))
	assert.Nil(t, Build(scene.Primitive{Kind: scene.PrimTube, Path: []math.Vec3{{}}}))
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
	out := b.Transform(math.Translate(5, 0, 0).Mul(math.Scale(2, 1, 1)))
	assert.InDelta(t, 3, out.Min[0], 1e-6)
	assert.InDelta(t, 7, out.Max[0], 1e-6)
	assert.False(t, out.Empty())
	assert.True(t, emptyBounds().Empty())
}

func TestCacheSharesByKey(t *testing.T) {
	c := NewCache()
	p := scene.Primitive{Kind: scene.PrimSphere, Key: "sphere:1:32:16", Radius: 1, Segments: 32, Rings: 16}
	a := c.Get(&p)
	b := c.Get(&p)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	q := scene.Primitive{Kind: scene.PrimDisc, Radius: 1, Segments: 8}
	assert.NotSame(t, c.Get(&q), c.Get(&q), "unkeyed primitives are rebuilt")
	assert.Equal(t, 1, c.Len())
}

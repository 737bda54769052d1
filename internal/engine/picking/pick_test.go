package picking

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	box := mesh.Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}

	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	d, ok := r.IntersectAABB(box)
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-6)

	inside := Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}
	d, ok = inside.IntersectAABB(box)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-6, "starting inside returns the exit distance")

	miss := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok = miss.IntersectAABB(box)
	assert.False(t, ok)

	behind := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}
	_, ok = behind.IntersectAABB(box)
	assert.False(t, ok)
}

func TestIntersectTriangleBothFaces(t *testing.T) {
	a, b, c := math.Vec3{X: -1, Y: -1}, math.Vec3{X: 1, Y: -1}, math.Vec3{Y: 1}

	front := Ray{Origin: math.Vec3{Z: 2}, Direction: math.Vec3{Z: -1}}
	d, ok := front.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 2, d, 1e-6)

	back := Ray{Origin: math.Vec3{Z: -3}, Direction: math.Vec3{Z: 1}}
	d, ok = back.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3, d, 1e-6)

	outside := Ray{Origin: math.Vec3{X: 2, Z: 2}, Direction: math.Vec3{Z: -1}}
	_, ok = outside.IntersectTriangle(a, b, c)
	assert.False(t, ok)
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 5, Z: 2}, Direction: math.Vec3{Y: -1}}
	x, z, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(2), z)
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Up)
	proj := math.Perspective(0.8, 1, 0.1, 100)
	r := ScreenToRay(50, 50, 100, 100, proj.Mul(view).Inverse())

	assert.InDelta(t, -1, r.Direction.Z, 1e-4)
	assert.InDelta(t, 0, r.Origin.X, 1e-4)
	assert.InDelta(t, 0, r.Origin.Y, 1e-4)
}

func discItem(id string, node scene.NodeID, z float32) scene.DrawItem {
	prim := scene.Primitive{Kind: scene.PrimDisc, Key: "disc:1:16", Radius: 1, Segments: 16}
	mat := scene.Opaque(color.RGBA{G: 128, A: 255})
	return scene.DrawItem{
		Node:      node,
		Kind:      scene.KindBlade,
		HitID:     id,
		Primitive: &prim,
		Material:  &mat,
		World:     math.Translate(0, 0, z),
	}
}

func TestPickNearest(t *testing.T) {
	cache := mesh.NewCache()
	items := []scene.DrawItem{
		discItem("far", 1, -2),
		discItem("near", 2, 1),
	}
	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}

	hit, ok := Pick(r, items, cache)
	require.True(t, ok)
	assert.Equal(t, "near", hit.ID)
	assert.Equal(t, scene.NodeID(2), hit.Node)
	assert.InDelta(t, 4, hit.Distance, 1e-5)

	missRay := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok = Pick(missRay, items, cache)
	assert.False(t, ok)
}

func TestPickSkipsNonTargets(t *testing.T) {
	item := discItem("", 1, 0)
	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok := Pick(r, []scene.DrawItem{item}, mesh.NewCache())
	assert.False(t, ok)
}

package picking

import (
	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// Hit is the nearest pickable struck by a ray.
type Hit struct {
	ID       string
	Node     scene.NodeID
	Distance float32
}

// Pick tests the ray against every item, first by world bounds and then
// per triangle, and returns the nearest hit.
func Pick(r Ray, items []scene.DrawItem, meshes *mesh.Cache) (Hit, bool) {
	best := Hit{Distance: -1}
	for i := range items {
		it := &items[i]
		if it.HitID == "" {
			continue
		}
		m := meshes.Get(it.Primitive)
		if m == nil {
			continue
		}
		if _, ok := r.IntersectAABB(m.Bounds.Transform(it.World)); !ok {
			continue
		}
		t, ok := intersectMesh(r, m, it.World)
		if !ok {
			continue
		}
		if best.Distance < 0 || t < best.Distance {
			best = Hit{ID: it.HitID, Node: it.Node, Distance: t}
		}
	}
	return best, best.Distance >= 0
}

func intersectMesh(r Ray, m *mesh.Mesh, world math.Mat4) (float32, bool) {
	nearest := float32(-1)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := vertex(m, m.Indices[i], world)
		b := vertex(m, m.Indices[i+1], world)
		c := vertex(m, m.Indices[i+2], world)
		if t, ok := r.IntersectTriangle(a, b, c); ok && (nearest < 0 || t < nearest) {
			nearest = t
		}
	}
	return nearest, nearest >= 0
}

func vertex(m *mesh.Mesh, idx uint32, world math.Mat4) math.Vec3 {
	p := m.Vertices[idx].Position
	return world.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
}

package mesh

import (
	gomath "math"

	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// Build tessellates p. It returns nil for PrimNone or degenerate input.
func Build(p scene.Primitive) *Mesh {
	m := &Mesh{Bounds: emptyBounds()}
	switch p.Kind {
	case scene.PrimSphere:
		sphere(m, p.Radius, max(3, p.Segments), max(2, p.Rings))
	case scene.PrimDisc:
		disc(m, p.Radius, max(3, p.Segments))
	case scene.PrimTaperedCylinder:
		cylinder(m, p.RadiusTop, p.RadiusBottom, p.Height, max(3, p.Segments))
	case scene.PrimTube:
		tube(m, p.Path, p.Radius, max(3, p.Segments))
	case scene.PrimShape:
		shape(m, p.Outline)
	}
	if len(m.Indices) == 0 {
		return nil
	}
	return m
}

func sincos(a float32) (float32, float32) {
	s, c := gomath.Sincos(float64(a))
	return float32(s), float32(c)
}

// sphere follows the usual latitude/longitude grid, poles on Y.
func sphere(m *Mesh, r float32, segs, rings int) {
	stride := uint32(segs + 1)
	for iy := 0; iy <= rings; iy++ {
		v := float32(iy) / float32(rings)
		sinV, cosV := sincos(v * gomath.Pi)
		for ix := 0; ix <= segs; ix++ {
			u := float32(ix) / float32(segs)
			sinU, cosU := sincos(u * 2 * gomath.Pi)
			n := math.Vec3{X: -cosU * sinV, Y: cosV, Z: sinU * sinV}
			m.add(n.Scale(r), n, u, 1-v)
		}
	}
	for iy := 0; iy < rings; iy++ {
		for ix := 0; ix < segs; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1
			if iy != 0 {
				m.tri(a, b, d)
			}
			if iy != rings-1 {
				m.tri(b, c, d)
			}
		}
	}
}

// disc lies in the XY plane facing +Z.
func disc(m *Mesh, r float32, segs int) {
	normal := math.Vec3{Z: 1}
	center := m.add(math.Vec3{}, normal, 0.5, 0.5)
	for s := 0; s <= segs; s++ {
		sin, cos := sincos(float32(s) / float32(segs) * 2 * gomath.Pi)
		m.add(math.Vec3{X: r * cos, Y: r * sin}, normal, (cos+1)/2, (sin+1)/2)
	}
	for s := uint32(1); s <= uint32(segs); s++ {
		m.tri(center, center+s, center+s+1)
	}
}

// cylinder is centered on the origin along Y with capped ends.
func cylinder(m *Mesh, top, bottom, height float32, segs int) {
	half := height / 2
	var slope float32
	if height != 0 {
		slope = (bottom - top) / height
	}

	rows := [2]struct {
		y, r, v float32
	}{{half, top, 1}, {-half, bottom, 0}}

	start := uint32(len(m.Vertices))
	for _, row := range rows {
		for s := 0; s <= segs; s++ {
			u := float32(s) / float32(segs)
			sin, cos := sincos(u * 2 * gomath.Pi)
			n := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
			m.add(math.Vec3{X: row.r * sin, Y: row.y, Z: row.r * cos}, n, u, row.v)
		}
	}
	stride := uint32(segs + 1)
	for s := uint32(0); s < uint32(segs); s++ {
		a := start + s
		b := start + stride + s
		m.tri(a, b, a+1)
		m.tri(b, b+1, a+1)
	}

	for _, row := range rows {
		if row.r <= 0 {
			continue
		}
		ny := float32(1)
		if row.y < 0 {
			ny = -1
		}
		normal := math.Vec3{Y: ny}
		center := m.add(math.Vec3{Y: row.y}, normal, 0.5, 0.5)
		for s := 0; s <= segs; s++ {
			sin, cos := sincos(float32(s) / float32(segs) * 2 * gomath.Pi)
			m.add(math.Vec3{X: row.r * sin, Y: row.y, Z: row.r * cos}, normal, (cos+1)/2, (sin*ny+1)/2)
		}
		for s := uint32(1); s <= uint32(segs); s++ {
			if ny > 0 {
				m.tri(center, center+s, center+s+1)
			} else {
				m.tri(center, center+s+1, center+s)
			}
		}
	}
}

// tube sweeps a circle along path using parallel-transport frames.
func tube(m *Mesh, path []math.Vec3, r float32, segs int) {
	n := len(path)
	if n < 2 {
		return
	}
	tangents := make([]math.Vec3, n)
	for i := range path {
		a, b := max(0, i-1), min(n-1, i+1)
		tangents[i] = path[b].Sub(path[a]).Normalize()
	}

	normals := make([]math.Vec3, n)
	binormals := make([]math.Vec3, n)
	normals[0] = initialNormal(tangents[0])
	binormals[0] = tangents[0].Cross(normals[0])
	for i := 1; i < n; i++ {
		normals[i] = normals[i-1]
		axis := tangents[i-1].Cross(tangents[i])
		if axis.Length() > 1e-6 {
			dot := gomath.Max(-1, gomath.Min(1, float64(tangents[i-1].Dot(tangents[i]))))
			theta := float32(gomath.Acos(dot))
			normals[i] = math.QuatFromAxisAngle(axis.Normalize(), theta).Rotate(normals[i])
		}
		binormals[i] = tangents[i].Cross(normals[i])
	}

	stride := uint32(segs + 1)
	for i, p := range path {
		for j := 0; j <= segs; j++ {
			sin, cos := sincos(float32(j) / float32(segs) * 2 * gomath.Pi)
			dir := normals[i].Scale(-cos).Add(binormals[i].Scale(sin)).Normalize()
			m.add(p.Add(dir.Scale(r)), dir, float32(i)/float32(n-1), float32(j)/float32(segs))
		}
	}
	for i := uint32(1); i < uint32(n); i++ {
		for j := uint32(1); j <= uint32(segs); j++ {
			a := stride*(i-1) + (j - 1)
			b := stride*i + (j - 1)
			c := stride*i + j
			d := stride*(i-1) + j
			m.tri(a, b, d)
			m.tri(b, c, d)
		}
	}
}

// initialNormal picks a normal perpendicular to t using the axis t is
// least aligned with.
func initialNormal(t math.Vec3) math.Vec3 {
	ax, ay, az := gomath.Abs(float64(t.X)), gomath.Abs(float64(t.Y)), gomath.Abs(float64(t.Z))
	axis := math.Vec3{Z: 1}
	switch {
	case ax <= ay && ax <= az:
		axis = math.Vec3{X: 1}
	case ay <= az:
		axis = math.Vec3{Y: 1}
	}
	vec := t.Cross(axis).Normalize()
	return t.Cross(vec)
}

// shape fills a simple polygon in the XY plane facing +Z.
func shape(m *Mesh, outline []math.Vec2) {
	pts := outline
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return
	}
	normal := math.Vec3{Z: 1}
	base := uint32(len(m.Vertices))
	for _, p := range pts {
		m.add(math.Vec3{X: p.X, Y: p.Y}, normal, p.X, p.Y)
	}
	for _, t := range Triangulate(pts) {
		m.tri(base+uint32(t[0]), base+uint32(t[1]), base+uint32(t[2]))
	}
}

package math

import "math"

// CatmullRom3 is an open centripetal Catmull-Rom spline through a set of
// control points. The parameter t runs from 0 at the first point to 1 at
// the last, with each segment taking an equal share of the range.
type CatmullRom3 struct {
	Points []Vec3
}

// NewCatmullRom3 creates a curve through points. At least two are required
// for Point and Tangent to be meaningful.
func NewCatmullRom3(points []Vec3) *CatmullRom3 {
	return &CatmullRom3{Points: points}
}

// Point returns the curve position at t in [0, 1].
func (c *CatmullRom3) Point(t float32) Vec3 {
	pts := c.Points
	n := len(pts)
	switch n {
	case 0:
		return Vec3{}
	case 1:
		return pts[0]
	}

	p := float32(n-1) * t
	seg := int(math.Floor(float64(p)))
	w := p - float32(seg)
	if seg >= n-1 {
		seg = n - 2
		w = 1
	}
	if seg < 0 {
		seg = 0
		w = 0
	}

	var p0, p3 Vec3
	if seg > 0 {
		p0 = pts[seg-1]
	} else {
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1 := pts[seg]
	p2 := pts[seg+1]
	if seg+2 < n {
		p3 = pts[seg+2]
	} else {
		p3 = pts[n-1].Sub(pts[n-2]).Add(pts[n-1])
	}

	dt0 := centripetalSpan(p0, p1)
	dt1 := centripetalSpan(p1, p2)
	dt2 := centripetalSpan(p2, p3)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return Vec3{
		X: nonuniformCubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: nonuniformCubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: nonuniformCubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// Tangent returns the unit direction of the curve at t, estimated by a
// central difference clamped to [0, 1].
func (c *CatmullRom3) Tangent(t float32) Vec3 {
	const delta = 0.0001
	t1, t2 := t-delta, t+delta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// Sample returns divisions+1 evenly spaced points along the curve.
func (c *CatmullRom3) Sample(divisions int) []Vec3 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]Vec3, divisions+1)
	for i := range out {
		out[i] = c.Point(float32(i) / float32(divisions))
	}
	return out
}

// centripetalSpan is the knot spacing |b-a|^0.5.
func centripetalSpan(a, b Vec3) float32 {
	return float32(math.Pow(float64(a.Sub(b).LengthSq()), 0.25))
}

func nonuniformCubic(x0, x1, x2, x3, dt0, dt1, dt2, t float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + c1*t + c2*t*t + c3*t*t*t
}

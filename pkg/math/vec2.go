package math

import "math"

// Vec2 is a 2D vector. Flat organ outlines (leaf blades) are built from it.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// CubicBezier evaluates the cubic Bezier curve p0..p3 at t in [0, 1].
func CubicBezier(p0, p1, p2, p3 Vec2, t float32) Vec2 {
	k := 1 - t
	a := k * k * k
	b := 3 * k * k * t
	c := 3 * k * t * t
	d := t * t * t
	return Vec2{
		a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// SampleCubicBezier returns divisions+1 evenly parameterised points on the curve.
func SampleCubicBezier(p0, p1, p2, p3 Vec2, divisions int) []Vec2 {
	if divisions < 1 {
		divisions = 1
	}
	points := make([]Vec2, 0, divisions+1)
	for i := 0; i <= divisions; i++ {
		points = append(points, CubicBezier(p0, p1, p2, p3, float32(i)/float32(divisions)))
	}
	return points
}

package math

import "math"

// EulerOrder is the order in which Euler rotations are applied.
// The name lists the axes from the outermost (applied last) rotation.
type EulerOrder uint8

const (
	// OrderXYZ composes Rx * Ry * Rz.
	OrderXYZ EulerOrder = iota
	// OrderYXZ composes Ry * Rx * Rz: heading, then tilt, then twist.
	OrderYXZ
)

// String returns the axis order name.
func (o EulerOrder) String() string {
	switch o {
	case OrderYXZ:
		return "YXZ"
	default:
		return "XYZ"
	}
}

// Euler holds rotation angles in radians about X, Y and Z.
type Euler struct {
	X, Y, Z float32
	Order   EulerOrder
}

// Quat converts the Euler angles to a quaternion.
func (e Euler) Quat() Quat {
	c1 := float32(math.Cos(float64(e.X / 2)))
	c2 := float32(math.Cos(float64(e.Y / 2)))
	c3 := float32(math.Cos(float64(e.Z / 2)))
	s1 := float32(math.Sin(float64(e.X / 2)))
	s2 := float32(math.Sin(float64(e.Y / 2)))
	s3 := float32(math.Sin(float64(e.Z / 2)))

	switch e.Order {
	case OrderYXZ:
		return Quat{
			X: s1*c2*c3 + c1*s2*s3,
			Y: c1*s2*c3 - s1*c2*s3,
			Z: c1*c2*s3 - s1*s2*c3,
			W: c1*c2*c3 + s1*s2*s3,
		}
	default:
		return Quat{
			X: s1*c2*c3 + c1*s2*s3,
			Y: c1*s2*c3 - s1*c2*s3,
			Z: c1*c2*s3 + s1*s2*c3,
			W: c1*c2*c3 - s1*s2*s3,
		}
	}
}

// EulerFromQuat decomposes a rotation into Euler angles of the given order.
func EulerFromQuat(q Quat, order EulerOrder) Euler {
	m := q.ToMat4()
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]

	e := Euler{Order: order}
	switch order {
	case OrderYXZ:
		e.X = asin32(-clamp32(m23, -1, 1))
		if abs32(m23) < 0.9999999 {
			e.Y = atan2f(m13, m33)
			e.Z = atan2f(m21, m22)
		} else {
			e.Y = atan2f(-m31, m11)
		}
	default:
		e.Y = asin32(clamp32(m13, -1, 1))
		if abs32(m13) < 0.9999999 {
			e.X = atan2f(-m23, m33)
			e.Z = atan2f(-m12, m11)
		} else {
			e.X = atan2f(m32, m22)
		}
	}
	return e
}

// Mat4 returns the rotation matrix for the Euler angles.
func (e Euler) Mat4() Mat4 {
	return e.Quat().ToMat4()
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func asin32(x float32) float32 {
	return float32(math.Asin(float64(x)))
}

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

package math

import (
	"math"
	"testing"
)

func TestEulerQuatMatchesMatrices(t *testing.T) {
	x, y, z := float32(0.4), float32(-0.7), float32(1.1)

	tests := []struct {
		order EulerOrder
		want  Mat4
	}{
		{OrderXYZ, RotateX(x).Mul(RotateY(y)).Mul(RotateZ(z))},
		{OrderYXZ, RotateY(y).Mul(RotateX(x)).Mul(RotateZ(z))},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			got := Euler{X: x, Y: y, Z: z, Order: tt.order}.Mat4()
			for i := 0; i < 16; i++ {
				if abs(got[i]-tt.want[i]) > 0.0001 {
					t.Fatalf("element %d: got %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEulerFromQuatRoundTrip(t *testing.T) {
	for _, order := range []EulerOrder{OrderXYZ, OrderYXZ} {
		in := Euler{X: 0.3, Y: -0.5, Z: 0.8, Order: order}
		out := EulerFromQuat(in.Quat(), order)
		if abs(in.X-out.X) > 0.0001 || abs(in.Y-out.Y) > 0.0001 || abs(in.Z-out.Z) > 0.0001 {
			t.Errorf("%s round trip: got %+v, want %+v", order, out, in)
		}
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Radians(180) = %v, want pi", got)
	}
}

package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0.5, 4}, Vec3{-1, 0.5, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) turns to (0,0,-1)
	if !vecNear(result, Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5).Mul(Scale(2, 1, 1))
	got := m.TransformDirection(Vec3{1, 1, 0})
	if got != (Vec3{2, 1, 0}) {
		t.Errorf("TransformDirection() = %v, want (2, 1, 0)", got)
	}
}

func TestCompose(t *testing.T) {
	pos := Vec3{1, 2, 3}
	rot := QuatFromAxisAngle(Vec3{0, 0, 1}, float32(math.Pi/2))
	scale := Vec3{2, 3, 4}

	got := Compose(pos, rot, scale)
	want := Translate(1, 2, 3).Mul(RotateZ(float32(math.Pi / 2))).Mul(Scale(2, 3, 4))

	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 0.0001 {
			t.Fatalf("Compose element %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if got.Position() != pos {
		t.Errorf("Position() = %v, want %v", got.Position(), pos)
	}
	if !vecNear(got.AxisScale(), scale, 0.0001) {
		t.Errorf("AxisScale() = %v, want %v", got.AxisScale(), scale)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{3, -1, 2}, Euler{X: 0.3, Y: 1.1, Z: -0.4}.Quat(), Vec3{1, 2, 0.5})
	p := Vec3{0.7, -2, 5}

	back := m.Inverse().TransformPoint(m.TransformPoint(p))
	if !vecNear(back, p, 0.001) {
		t.Errorf("Inverse round trip: got %v, want %v", back, p)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Up)

	// The eye maps to the view origin.
	if got := m.TransformPoint(Vec3{0, 0, 5}); !vecNear(got, Vec3{}, 0.0001) {
		t.Errorf("LookAt eye: got %v, want origin", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecNear(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

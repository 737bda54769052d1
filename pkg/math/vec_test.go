package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	p0, p1, p2, p3 := Vec2{0, 0}, Vec2{0.1, 0.1}, Vec2{0.2, 0.4}, Vec2{0, 0.8}
	if got := CubicBezier(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("CubicBezier(0) = %v, want %v", got, p0)
	}
	if got := CubicBezier(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("CubicBezier(1) = %v, want %v", got, p3)
	}

	pts := SampleCubicBezier(p0, p1, p2, p3, 12)
	if len(pts) != 13 {
		t.Fatalf("SampleCubicBezier returned %d points, want 13", len(pts))
	}
	for _, p := range pts[1:12] {
		if p.X <= 0 {
			t.Errorf("lobe point %v should bulge toward +X", p)
		}
	}
}

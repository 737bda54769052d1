package camera

import (
	"testing"

	"github.com/Faultbox/flora/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	p := c.Position()
	if !near(p.X, 0) || !near(p.Y, 3) || !near(p.Z, 8) {
		t.Errorf("Position() = %+v, want (0, 3, 8)", p)
	}
	if !near(c.Distance, 8.544) {
		t.Errorf("Distance = %v, want ~8.544", c.Distance)
	}
}

func TestZoomClamp(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != DefaultMinDistance {
		t.Errorf("Distance = %v after zooming in, want %v", c.Distance, DefaultMinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != DefaultMaxDistance {
		t.Errorf("Distance = %v after zooming out, want %v", c.Distance, DefaultMaxDistance)
	}
}

func TestDragClampsPitch(t *testing.T) {
	tests := []struct {
		name   string
		deltaY float32
		want   float32
	}{
		{"up", 10000, 1.5},
		{"down", -10000, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.HandleDrag(0, tt.deltaY)
			if c.RotationX != tt.want {
				t.Errorf("RotationX = %v, want %v", c.RotationX, tt.want)
			}
		})
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(0, 2, 0)
	v := c.ViewMatrix()
	p := v.TransformPoint(math.Vec3{Y: 2})
	if !near(p.X, 0) || !near(p.Y, 0) || p.Z >= 0 {
		t.Errorf("center in view space = %+v, want on -Z axis", p)
	}
}

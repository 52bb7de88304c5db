package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func nearVec(a, b mgl64.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestNormalizeAxis(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{720, 0},
		{-45, -45},
	}
	for _, c := range cases {
		if got := NormalizeAxis(c.in); !near(got, c.want) {
			t.Errorf("NormalizeAxis(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestClampAngle(t *testing.T) {
	cases := []struct {
		name                string
		angle, lo, hi, want float64
	}{
		{"inside", 30, -89, 89, 30},
		{"above", 120, -89, 89, 89},
		{"below", -100, -89, 89, -89},
		{"wrapped_input", 350, -89, 89, -10},
		{"arc_across_180", 170, 160, -160, 170},
		{"outside_arc_across_180_snaps_to_nearest", 150, 160, -160, 160},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClampAngle(c.angle, c.lo, c.hi); !near(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRotatorAxes(t *testing.T) {
	cases := []struct {
		name               string
		rot                Rotator
		forward, right, up mgl64.Vec3
	}{
		{"identity", Rotator{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"yaw_90", Rotator{Yaw: 90}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{"pitch_90", Rotator{Pitch: 90}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{-1, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, r, u := c.rot.Axes()
			if !nearVec(f, c.forward) || !nearVec(r, c.right) || !nearVec(u, c.up) {
				t.Fatalf("expected %v %v %v, got %v %v %v", c.forward, c.right, c.up, f, r, u)
			}
		})
	}
}

func TestRotatorFromVectorRoundTrip(t *testing.T) {
	for _, rot := range []Rotator{{Pitch: 30, Yaw: 45}, {Pitch: -60, Yaw: -170}, {Yaw: 180}} {
		got := RotatorFromVector(rot.Vector().Mul(12))
		if !got.ApproxEqualThreshold(rot, 1e-9) {
			t.Fatalf("expected %+v, got %+v", rot, got)
		}
	}
	if RotatorFromVector(mgl64.Vec3{}) != (Rotator{}) {
		t.Fatalf("expected zero rotator for zero vector")
	}
}

func TestRotateVector(t *testing.T) {
	rot := Rotator{Yaw: 90}
	got := rot.RotateVector(mgl64.Vec3{-100, 20, 5})
	if !nearVec(got, mgl64.Vec3{-20, -100, 5}) {
		t.Fatalf("unexpected rotated vector %v", got)
	}
}

func TestCurveInterpModeYAML(t *testing.T) {
	var c FloatCurve
	doc := "interp: Cubic\nkeys:\n  - {time: 0, value: 1}\n"
	if err := yaml.Unmarshal([]byte(doc), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Interp != CurveInterpCubic || len(c.Keys) != 1 {
		t.Fatalf("unexpected curve %+v", c)
	}

	if err := yaml.Unmarshal([]byte("interp: wobbly\n"), &c); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

type testTarget struct{}

func (testTarget) ID() uint64                   { return 1 }
func (testTarget) Kind() view.ActorKind         { return view.ActorKindPawn }
func (testTarget) Location() mgl64.Vec3         { return mgl64.Vec3{} }
func (testTarget) Forward() mgl64.Vec3          { return mgl64.Vec3{1, 0, 0} }
func (testTarget) ViewRotation() common.Rotator { return common.Rotator{} }
func (testTarget) PawnViewLocation() mgl64.Vec3 { return mgl64.Vec3{0, 0, 50} }
func (testTarget) CollisionHalfHeight() float64 { return 88 }
func (testTarget) Controller() any              { return nil }

type testOwner struct{}

func (testOwner) ViewTarget() view.Target         { return testTarget{} }
func (testOwner) SpatialQuery() view.SpatialQuery { return nil }

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "view_modes.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	classes := cfg.Classes()
	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(classes))
	}
	wantNames := []string{"FirstPerson", "ThirdPerson", "Spectator"}
	for i, c := range classes {
		if c.Name() != wantNames[i] {
			t.Fatalf("class %d = %q, want %q", i, c.Name(), wantNames[i])
		}
	}

	fpClass, ok := cfg.Class("FirstPerson")
	if !ok {
		t.Fatalf("FirstPerson not found")
	}
	fp := fpClass.NewInstance(testOwner{})
	if fp.FieldOfView() != 100 || fp.BlendFunction() != view.BlendEaseInOut || fp.BlendTime() != 0.25 {
		t.Fatalf("first person settings = %v %v %v", fp.FieldOfView(), fp.BlendFunction(), fp.BlendTime())
	}
	if fp.BlendExponent() != 4 {
		t.Fatalf("default exponent not kept: %v", fp.BlendExponent())
	}

	tpClass, _ := cfg.Class("ThirdPerson")
	tp, ok := tpClass.NewInstance(testOwner{}).(view.ThirdPersonViewMode)
	if !ok {
		t.Fatalf("ThirdPerson did not build a third person mode")
	}
	if tp.ViewPitchMin() != -60 || tp.ViewPitchMax() != 70 || tp.BlendExponent() != 2 {
		t.Fatalf("third person settings = %v %v %v", tp.ViewPitchMin(), tp.ViewPitchMax(), tp.BlendExponent())
	}
	feelers := tp.Feelers()
	if len(feelers) != 2 || feelers[0].Extent != 12 || feelers[1].AdjustmentRot.Yaw != 20 || feelers[1].TraceInterval != 2 {
		t.Fatalf("feelers = %+v", feelers)
	}

	// Pitch 0 with the x curve sorted: camera 200 behind and 40 right of the pawn view location.
	tp.UpdateViewMode(0)
	got := tp.ViewModeInfo().Location
	want := mgl64.Vec3{-200, 40, 50}
	if got.Sub(want).Len() > 1e-9 {
		t.Fatalf("third person location = %v, want %v", got, want)
	}

	spec, _ := cfg.Class("Spectator")
	if m := spec.NewInstance(testOwner{}); m.FieldOfView() != 80 {
		t.Fatalf("spectator fov = %v", m.FieldOfView())
	}
	if _, ok := cfg.Class("Missing"); ok {
		t.Fatalf("unexpected class")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"missing name", "view_modes:\n  - kind: base\n", ErrMissingName},
		{"duplicate", "view_modes:\n  - name: A\n  - name: A\n", ErrDuplicateName},
		{"unknown kind", "view_modes:\n  - name: A\n    kind: orbit\n", ErrUnknownKind},
		{"offset on first person", "view_modes:\n  - name: A\n    kind: first_person\n    target_offset_x:\n      keys: [{time: 0, value: 1}]\n", ErrThirdPerson},
		{"penetration on base", "view_modes:\n  - name: A\n    penetration:\n      prevent: false\n", ErrThirdPerson},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("bad blend function", func(t *testing.T) {
		if _, err := Parse([]byte("view_modes:\n  - name: A\n    blend_function: bouncy\n")); err == nil {
			t.Fatalf("expected an error")
		}
	})
	t.Run("bad interp", func(t *testing.T) {
		y := "view_modes:\n  - name: A\n    kind: third_person\n    target_offset_x:\n      interp: wobbly\n"
		if _, err := Parse([]byte(y)); err == nil {
			t.Fatalf("expected an error")
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatalf("expected an error")
		}
	})
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("view_modes:\n  - name: Plain\n    view_pitch_max: 45\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	class, _ := cfg.Class("Plain")
	m := class.NewInstance(testOwner{})
	if m.ViewPitchMin() != view.DefaultViewPitchMin || m.ViewPitchMax() != 45 {
		t.Fatalf("pitch range = [%v, %v]", m.ViewPitchMin(), m.ViewPitchMax())
	}
	if m.FieldOfView() != view.DefaultFieldOfView || m.BlendFunction() != view.BlendEaseOut || math.Abs(m.BlendTime()-0.5) > 1e-12 {
		t.Fatalf("defaults changed: %v %v %v", m.FieldOfView(), m.BlendFunction(), m.BlendTime())
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(dir, "modes.yaml")
	if err := os.WriteFile(path, []byte("view_modes: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", path)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	for range w.Events {
	}
}

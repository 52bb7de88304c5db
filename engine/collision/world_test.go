package collision

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

type capsuleActor struct {
	*StaticActor
	radius, halfHeight float64
}

func (c capsuleActor) CapsuleRadius() float64     { return c.radius }
func (c capsuleActor) CapsuleHalfHeight() float64 { return c.halfHeight }

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestWorld_SweepShapes(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(w World)
		radius   float64
		from, to mgl64.Vec3
		wantHit  bool
		wantTime float64
	}{
		{
			name: "sphere line trace",
			setup: func(w World) {
				w.AddSphere(NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{10, 0, 0}), 2, view.ChannelCamera)
			},
			from: mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{20, 0, 0},
			wantHit: true, wantTime: 0.4,
		},
		{
			name: "sphere swept radius",
			setup: func(w World) {
				w.AddSphere(NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{10, 0, 0}), 2, view.ChannelCamera)
			},
			radius: 4,
			from:   mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{20, 0, 0},
			wantHit: true, wantTime: 0.2,
		},
		{
			name: "sphere missed",
			setup: func(w World) {
				w.AddSphere(NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{10, 10, 0}), 2, view.ChannelCamera)
			},
			from: mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{20, 0, 0},
		},
		{
			name: "box face",
			setup: func(w World) {
				w.AddBox(NewStaticActor(2, view.ActorKindWorld, mgl64.Vec3{0, 0, 0}), mgl64.Vec3{5, 100, 100}, view.ChannelCamera)
			},
			radius: 1,
			from:   mgl64.Vec3{-20, 0, 0}, to: mgl64.Vec3{20, 0, 0},
			wantHit: true, wantTime: 14.0 / 40.0,
		},
		{
			name: "start inside box",
			setup: func(w World) {
				w.AddBox(NewStaticActor(2, view.ActorKindWorld, mgl64.Vec3{0, 0, 0}), mgl64.Vec3{5, 5, 5}, view.ChannelCamera)
			},
			from: mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{20, 0, 0},
			wantHit: true, wantTime: 0,
		},
		{
			name: "capsule side",
			setup: func(w World) {
				w.AddCapsule(capsuleActor{NewStaticActor(3, view.ActorKindPawn, mgl64.Vec3{0, 0, 0}), 10, 50}, view.ChannelCamera)
			},
			from: mgl64.Vec3{-40, 0, 20}, to: mgl64.Vec3{40, 0, 20},
			wantHit: true, wantTime: 30.0 / 80.0,
		},
		{
			name: "capsule top cap",
			setup: func(w World) {
				w.AddCapsule(capsuleActor{NewStaticActor(3, view.ActorKindPawn, mgl64.Vec3{0, 0, 0}), 10, 50}, view.ChannelCamera)
			},
			from: mgl64.Vec3{0, 0, 100}, to: mgl64.Vec3{0, 0, 0},
			wantHit: true, wantTime: 0.5,
		},
		{
			name: "channel mismatch",
			setup: func(w World) {
				w.AddSphere(NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{10, 0, 0}), 2, view.ChannelPawn)
			},
			from: mgl64.Vec3{0, 0, 0}, to: mgl64.Vec3{20, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			tt.setup(w)
			hit, ok := w.Sweep(tt.radius, tt.from, tt.to, nil, view.ChannelCamera)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if !approx(hit.Time, tt.wantTime) {
				t.Fatalf("time = %v, want %v", hit.Time, tt.wantTime)
			}
			want := tt.from.Add(tt.to.Sub(tt.from).Mul(tt.wantTime))
			if !hit.Location.ApproxEqualThreshold(want, 1e-9) {
				t.Fatalf("location = %v, want %v", hit.Location, want)
			}
		})
	}
}

func TestWorld_SweepEarliestAndIgnore(t *testing.T) {
	w := NewWorld()
	near := NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{5, 0, 0})
	far := NewStaticActor(2, view.ActorKindCameraBlockingVolume, mgl64.Vec3{15, 0, 0})
	w.AddSphere(far, 1, view.ChannelCamera)
	w.AddSphere(near, 1, view.ChannelCamera)

	hit, ok := w.Sweep(0, mgl64.Vec3{}, mgl64.Vec3{20, 0, 0}, nil, view.ChannelCamera)
	if !ok || hit.Actor.ID() != 1 {
		t.Fatalf("expected the near sphere, got %v %v", hit, ok)
	}

	ignore := view.IgnoreSet{}
	ignore.Add(near)
	hit, ok = w.Sweep(0, mgl64.Vec3{}, mgl64.Vec3{20, 0, 0}, ignore, view.ChannelCamera)
	if !ok || hit.Actor.ID() != 2 || hit.Actor.Kind() != view.ActorKindCameraBlockingVolume {
		t.Fatalf("expected the far volume, got %v %v", hit, ok)
	}
	if !approx(hit.Time, 0.7) {
		t.Fatalf("time = %v, want 0.7", hit.Time)
	}
}

func TestWorld_RemoveAndCounters(t *testing.T) {
	w := NewWorld()
	a := NewStaticActor(7, view.ActorKindWorld, mgl64.Vec3{5, 0, 0})
	w.AddSphere(a, 1, view.ChannelCamera)
	w.AddBox(a, mgl64.Vec3{1, 1, 1}, view.ChannelCamera)
	w.AddSphere(nil, 1, view.ChannelCamera)

	if w.Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Len())
	}
	if !w.Remove(7) {
		t.Fatalf("Remove returned false")
	}
	if w.Remove(7) {
		t.Fatalf("second Remove returned true")
	}
	if w.Len() != 0 {
		t.Fatalf("Len = %d, want 0", w.Len())
	}

	for range 3 {
		w.Sweep(0, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, nil, view.ChannelCamera)
	}
	if w.SweepCount() != 3 {
		t.Fatalf("SweepCount = %d, want 3", w.SweepCount())
	}
	if prev := w.ResetSweepCount(); prev != 3 || w.SweepCount() != 0 {
		t.Fatalf("ResetSweepCount = %d, count after = %d", prev, w.SweepCount())
	}
}

func TestWorld_ConcurrentSweeps(t *testing.T) {
	w := NewWorld()
	w.AddSphere(NewStaticActor(1, view.ActorKindWorld, mgl64.Vec3{10, 0, 0}), 2, view.ChannelCamera)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, ok := w.Sweep(0, mgl64.Vec3{}, mgl64.Vec3{20, 0, 0}, nil, view.ChannelCamera); !ok {
					t.Errorf("expected hit")
					return
				}
			}
		}()
	}
	wg.Wait()
	if w.SweepCount() != 800 {
		t.Fatalf("SweepCount = %d, want 800", w.SweepCount())
	}
}

func TestClosestPointOnCapsule(t *testing.T) {
	center := mgl64.Vec3{0, 0, 0}
	tests := []struct {
		name    string
		point   mgl64.Vec3
		want    mgl64.Vec3
		wantSqr float64
	}{
		{"inside", mgl64.Vec3{2, 0, 10}, mgl64.Vec3{2, 0, 10}, 0},
		{"side", mgl64.Vec3{30, 0, 10}, mgl64.Vec3{10, 0, 10}, 400},
		{"above", mgl64.Vec3{0, 0, 70}, mgl64.Vec3{0, 0, 50}, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, distSqr := ClosestPointOnCapsule(tt.point, center, 10, 50)
			if !got.ApproxEqualThreshold(tt.want, 1e-9) || !approx(distSqr, tt.wantSqr) {
				t.Fatalf("got %v %v, want %v %v", got, distSqr, tt.want, tt.wantSqr)
			}
		})
	}
}

package view

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// behind places the camera dist units behind the pivot at every pitch.
func behind(dist float64) ViewModeBuilderOption {
	return WithTargetOffsetCurves(
		common.NewFloatCurve(common.CurveInterpLinear, common.CurveKey{Time: 0, Value: -dist}),
		common.FloatCurve{},
		common.FloatCurve{},
	)
}

var primaryFeeler = PenetrationAvoidanceFeeler{WorldWeight: 1, PawnWeight: 1}

func TestThirdPersonDefaults(t *testing.T) {
	m := NewThirdPersonViewMode(nil)
	if m.Name() != "ThirdPerson" {
		t.Fatalf("unexpected name %q", m.Name())
	}
	if m.DistBlockedPct() != 1 {
		t.Fatalf("expected unobstructed start, got %v", m.DistBlockedPct())
	}
	feelers := m.Feelers()
	if len(feelers) != 7 || feelers[0].Extent != 14 || feelers[3].AdjustmentRot.Yaw != 32 || feelers[6].TraceInterval != 4 {
		t.Fatalf("unexpected default feelers %+v", feelers)
	}
}

func TestThirdPersonOffsetFollowsPitch(t *testing.T) {
	target := newMockTarget(1, ActorKindPawn, mgl64.Vec3{})
	target.rotation = common.Rotator{Yaw: 90}
	m := NewThirdPersonViewMode(&mockOwner{target: target},
		behind(100),
		WithTargetOffsetCurves(
			common.NewFloatCurve(common.CurveInterpLinear, common.CurveKey{Time: 0, Value: -100}),
			common.NewFloatCurve(common.CurveInterpLinear, common.CurveKey{Time: 0, Value: 20}),
			common.FloatCurve{},
		),
	)

	m.UpdateViewMode(0.016)
	want := mgl64.Vec3{-20, -100, 0}
	if got := m.ViewModeInfo().Location; !approxVec(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestThirdPersonPrimaryFeelerScenario(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	wall := newMockTarget(99, ActorKindWorld, mgl64.Vec3{-5, 0, 0})

	var sweeps int
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		sweeps++
		if !ignore.Contains(target.ID()) {
			t.Fatalf("expected the view target to be ignored")
		}
		if channel != ChannelCamera {
			t.Fatalf("expected camera channel, got %d", channel)
		}
		return SweepHit{Location: mgl64.Vec3{-5, 0, 0}, Time: 0.5, Actor: wall}, true
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler),
		WithCollisionPushOutDistance(2),
	)
	m.ResetInterpolation()
	m.UpdateViewMode(0.016)

	if sweeps != 1 {
		t.Fatalf("expected one sweep, got %d", sweeps)
	}
	if !approx(m.DistBlockedPct(), 0.3) {
		t.Fatalf("expected blocked fraction 0.3, got %v", m.DistBlockedPct())
	}
	safe := m.SafeLocation()
	if !approxVec(safe, mgl64.Vec3{}) {
		t.Fatalf("expected safe location at the target, got %v", safe)
	}
	nominal := mgl64.Vec3{-10, 0, 0}
	want := safe.Add(nominal.Sub(safe).Mul(0.3))
	if got := m.ViewModeInfo().Location; !approxVec(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestThirdPersonHysteresis(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	wall := newMockTarget(99, ActorKindWorld, mgl64.Vec3{})

	blockPrimary, blockSoft := true, false
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		soft := math.Abs(to[1]) > 1e-6
		if (soft && blockSoft) || (!soft && blockPrimary) {
			return SweepHit{Time: 0.5, Actor: wall}, true
		}
		return SweepHit{}, false
	})

	soft := PenetrationAvoidanceFeeler{AdjustmentRot: common.Rotator{Yaw: 16}, WorldWeight: 1, PawnWeight: 1}
	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler, soft),
		WithPenetrationBlendTimes(0.1, 0.15),
	)

	m.UpdateViewMode(0.05)
	if !approx(m.DistBlockedPct(), 0.3) {
		t.Fatalf("expected primary hit to snap in to 0.3, got %v", m.DistBlockedPct())
	}

	blockPrimary = false
	m.UpdateViewMode(0.05)
	want := 0.3 + 0.05/0.15*0.7
	if !approx(m.DistBlockedPct(), want) {
		t.Fatalf("expected ease out to %v, got %v", want, m.DistBlockedPct())
	}

	m.UpdateViewMode(1)
	if !approx(m.DistBlockedPct(), 1) {
		t.Fatalf("expected full distance after clearing, got %v", m.DistBlockedPct())
	}
	if got := m.ViewModeInfo().Location; !approxVec(got, mgl64.Vec3{-10, 0, 0}) {
		t.Fatalf("expected nominal location, got %v", got)
	}

	blockSoft = true
	stepUntilSoftTraced(m)
	if !approx(m.DistBlockedPct(), 0.65) {
		t.Fatalf("expected soft hit to ease in to 0.65, got %v", m.DistBlockedPct())
	}
}

// stepUntilSoftTraced advances one frame after the soft feeler's retrace countdown has elapsed.
func stepUntilSoftTraced(m ThirdPersonViewMode) {
	for m.Feelers()[1].FramesUntilNextTrace > 0 {
		m.UpdateViewMode(0)
	}
	m.UpdateViewMode(0.05)
}

func TestThirdPersonIgnoresBlockingVolumeInFront(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	volume := newMockTarget(50, ActorKindCameraBlockingVolume, mgl64.Vec3{5, 0, 0})

	var ignoredOnSecond bool
	calls := 0
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		calls++
		if calls == 2 {
			ignoredOnSecond = ignore.Contains(volume.ID())
		}
		return SweepHit{Location: mgl64.Vec3{5, 0, 0}, Time: 0.2, Actor: volume}, true
	})

	second := PenetrationAvoidanceFeeler{AdjustmentRot: common.Rotator{Yaw: 16}, WorldWeight: 1, PawnWeight: 1}
	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler, second),
	)
	m.ResetInterpolation()
	m.UpdateViewMode(0.016)

	if m.DistBlockedPct() != 1 {
		t.Fatalf("expected volume in front to be ignored, got %v", m.DistBlockedPct())
	}
	if !ignoredOnSecond {
		t.Fatalf("expected the volume to be ignored by later sweeps")
	}

	target.forward = mgl64.Vec3{-1, 0, 0}
	m.ResetInterpolation()
	m.UpdateViewMode(0.016)
	if m.DistBlockedPct() >= 1 {
		t.Fatalf("expected volume behind the target to block")
	}
}

func TestThirdPersonPawnWeight(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	other := newMockTarget(2, ActorKindPawn, mgl64.Vec3{-5, 0, 0})
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		return SweepHit{Time: 0.5, Actor: other}, true
	})

	cases := []struct {
		name   string
		weight float64
		want   float64
	}{
		{"full", 1, 0.3},
		{"half", 0.5, (0.75*10 - 2) / 10},
		{"zero", 0, 0.8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			feeler := PenetrationAvoidanceFeeler{WorldWeight: 1, PawnWeight: c.weight, TraceInterval: 3}
			m := NewThirdPersonViewMode(&mockOwner{target: target, query: query}, behind(10), WithPenetrationFeelers(feeler))
			m.ResetInterpolation()
			m.UpdateViewMode(0.016)
			if !approx(m.DistBlockedPct(), c.want) {
				t.Fatalf("expected %v, got %v", c.want, m.DistBlockedPct())
			}
			if frames := m.Feelers()[0].FramesUntilNextTrace; frames != 0 {
				t.Fatalf("expected a hit to retrace next frame, got %d frames", frames)
			}
		})
	}
}

func TestThirdPersonCrouchMovesPivot(t *testing.T) {
	ch := newMockCharacter(mgl64.Vec3{0, 0, 100})
	m := NewThirdPersonViewMode(&mockOwner{target: ch}, behind(100))

	steps := []struct {
		name     string
		crouched bool
		wantZ    float64
	}{
		{"standing", false, 164},
		{"halfway", true, 148},
		{"crouched", true, 132},
	}
	for _, step := range steps {
		ch.crouched = step.crouched
		m.UpdateViewMode(0.1)
		want := mgl64.Vec3{-100, 0, step.wantZ}
		if got := m.ViewModeInfo().Location; !approxVec(got, want) {
			t.Fatalf("%s: expected %v, got %v", step.name, want, got)
		}
	}
}

func TestThirdPersonReportsPenetration(t *testing.T) {
	controller := &countingAssist{}
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	target.controller = controller
	wall := newMockTarget(99, ActorKindWorld, mgl64.Vec3{})
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		return SweepHit{Time: 0.5, Actor: wall}, true
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler),
		WithReportPenetrationPercent(0.5),
	)
	m.UpdateViewMode(0.016)

	if controller.reports != 1 || target.reports != 1 {
		t.Fatalf("expected controller and pawn to be told once, got %d and %d", controller.reports, target.reports)
	}
}

func TestThirdPersonPenetrationOverride(t *testing.T) {
	vehicle := &solidTarget{mockTarget: newMockTarget(5, ActorKindPawn, mgl64.Vec3{0, 0, 0})}
	rider := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	rider.override = vehicle

	var ignored []uint64
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		for id := range ignore {
			ignored = append(ignored, id)
		}
		return SweepHit{Time: 0.5, Actor: newMockTarget(99, ActorKindWorld, mgl64.Vec3{})}, true
	})

	m := NewThirdPersonViewMode(&mockOwner{target: rider, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler),
		WithReportPenetrationPercent(0.5),
	)
	m.UpdateViewMode(0.016)

	if len(ignored) != 1 || ignored[0] != vehicle.ID() {
		t.Fatalf("expected sweeps to ignore the override actor, got %v", ignored)
	}
	if vehicle.reports != 1 || rider.reports != 1 {
		t.Fatalf("expected override and pawn reports, got %d and %d", vehicle.reports, rider.reports)
	}
}

func TestThirdPersonSkipsWithoutCollider(t *testing.T) {
	target := newMockTarget(1, ActorKindPawn, mgl64.Vec3{})
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		t.Fatalf("unexpected sweep")
		return SweepHit{}, false
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query}, behind(10))
	m.UpdateViewMode(0.016)
	if got := m.ViewModeInfo().Location; !approxVec(got, mgl64.Vec3{-10, 0, 0}) {
		t.Fatalf("expected nominal location, got %v", got)
	}
}

func TestThirdPersonZeroLengthRay(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		t.Fatalf("unexpected sweep")
		return SweepHit{}, false
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query})
	m.UpdateViewMode(0.016)
	if m.DistBlockedPct() != 1 {
		t.Fatalf("expected no adjustment, got %v", m.DistBlockedPct())
	}
}

func TestThirdPersonNoReportWithoutSweep(t *testing.T) {
	controller := &countingAssist{}
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	target.controller = controller

	m := NewThirdPersonViewMode(&mockOwner{target: target}, WithReportPenetrationPercent(0.5))
	m.(*thirdPersonViewModeImpl).distBlockedPct = 0.1
	m.UpdateViewMode(0.016)

	if controller.reports != 0 || target.reports != 0 {
		t.Fatalf("expected no reports on a frame without sweeps, got %d and %d", controller.reports, target.reports)
	}
}

func TestThirdPersonFeelerThrottling(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	traced := map[float64]int{}
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		traced[math.Round(to[1]*1000)/1000]++
		return SweepHit{}, false
	})

	throttled := PenetrationAvoidanceFeeler{AdjustmentRot: common.Rotator{Yaw: 16}, WorldWeight: 1, PawnWeight: 1, TraceInterval: 3}
	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query},
		behind(10),
		WithPenetrationFeelers(primaryFeeler, throttled),
	)
	for i := 0; i < 8; i++ {
		m.UpdateViewMode(0.016)
	}

	if traced[0] != 8 {
		t.Fatalf("expected the primary ray every frame, got %d", traced[0])
	}
	total := 0
	for k, n := range traced {
		if k != 0 {
			total += n
		}
	}
	if total != 2 {
		t.Fatalf("expected the throttled ray on frames 1 and 5, got %d traces", total)
	}
}

func TestThirdPersonSingleRayWithoutPrediction(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	sweeps := 0
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		sweeps++
		return SweepHit{}, false
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query}, behind(10), WithPredictiveAvoidance(false))
	m.UpdateViewMode(0.016)
	if sweeps != 1 {
		t.Fatalf("expected only the primary ray, got %d sweeps", sweeps)
	}
}

func TestThirdPersonPreActivateRequestsReset(t *testing.T) {
	target := &solidTarget{mockTarget: newMockTarget(1, ActorKindPawn, mgl64.Vec3{})}
	wall := newMockTarget(99, ActorKindWorld, mgl64.Vec3{})
	blocked := true
	query := queryFunc(func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
		if blocked {
			return SweepHit{Time: 0.5, Actor: wall}, true
		}
		return SweepHit{}, false
	})

	m := NewThirdPersonViewMode(&mockOwner{target: target, query: query}, behind(10), WithPenetrationFeelers(primaryFeeler))
	m.UpdateViewMode(0.016)
	blocked = false

	m.SetActivationState(ActivationPreActivate)
	m.UpdateViewMode(0.016)
	if m.DistBlockedPct() != 1 {
		t.Fatalf("expected activation to snap out to 1, got %v", m.DistBlockedPct())
	}
}

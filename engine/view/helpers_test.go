package view

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func approxVec(a, b mgl64.Vec3) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

type mockTarget struct {
	id           uint64
	kind         ActorKind
	location     mgl64.Vec3
	forward      mgl64.Vec3
	rotation     common.Rotator
	viewLocation mgl64.Vec3
	halfHeight   float64
	controller   any
}

func newMockTarget(id uint64, kind ActorKind, location mgl64.Vec3) *mockTarget {
	return &mockTarget{
		id:           id,
		kind:         kind,
		location:     location,
		forward:      mgl64.Vec3{1, 0, 0},
		viewLocation: location,
		halfHeight:   50,
	}
}

func (t *mockTarget) ID() uint64                   { return t.id }
func (t *mockTarget) Kind() ActorKind              { return t.kind }
func (t *mockTarget) Location() mgl64.Vec3         { return t.location }
func (t *mockTarget) Forward() mgl64.Vec3          { return t.forward }
func (t *mockTarget) ViewRotation() common.Rotator { return t.rotation }
func (t *mockTarget) PawnViewLocation() mgl64.Vec3 { return t.viewLocation }
func (t *mockTarget) CollisionHalfHeight() float64 { return t.halfHeight }
func (t *mockTarget) Controller() any              { return t.controller }

type mockCharacter struct {
	*mockTarget
	crouched          bool
	capsuleHalf       float64
	defaultHalf       float64
	baseEyeHeight     float64
	crouchedEyeHeight float64
}

var _ Character = &mockCharacter{}

func newMockCharacter(location mgl64.Vec3) *mockCharacter {
	return &mockCharacter{
		mockTarget:        newMockTarget(1, ActorKindPawn, location),
		capsuleHalf:       88,
		defaultHalf:       88,
		baseEyeHeight:     64,
		crouchedEyeHeight: 32,
	}
}

func (c *mockCharacter) IsCrouched() bool                  { return c.crouched }
func (c *mockCharacter) CapsuleHalfHeight() float64        { return c.capsuleHalf }
func (c *mockCharacter) DefaultCapsuleHalfHeight() float64 { return c.defaultHalf }
func (c *mockCharacter) BaseEyeHeight() float64            { return c.baseEyeHeight }
func (c *mockCharacter) CrouchedEyeHeight() float64        { return c.crouchedEyeHeight }

// solidTarget has a collision primitive that contains every query point and counts penetration reports.
type solidTarget struct {
	*mockTarget
	reports  int
	override Target
}

var (
	_ Collider          = &solidTarget{}
	_ PenetrationAssist = &solidTarget{}
)

func (s *solidTarget) ClosestPointOnCollision(point mgl64.Vec3) (mgl64.Vec3, float64, bool) {
	return point, 0, true
}

func (s *solidTarget) OnCameraPenetratingTarget() {
	s.reports++
}

func (s *solidTarget) CameraPenetrationTarget() (Target, bool) {
	return s.override, s.override != nil
}

type countingAssist struct {
	reports int
}

func (a *countingAssist) OnCameraPenetratingTarget() {
	a.reports++
}

type mockOwner struct {
	target Target
	query  SpatialQuery
}

func (o *mockOwner) ViewTarget() Target {
	if o.target == nil {
		return nil
	}
	return o.target
}

func (o *mockOwner) SpatialQuery() SpatialQuery {
	return o.query
}

type queryFunc func(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool)

func (f queryFunc) Sweep(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool) {
	return f(radius, from, to, ignore, channel)
}

type recordedEvent struct {
	mode  string
	state ActivationState
}

// recorder is an Action that logs every lifecycle hook it receives.
type recorder struct {
	events []recordedEvent
}

func (r *recorder) PreActivateMode(mode ViewMode) {
	r.events = append(r.events, recordedEvent{mode.Name(), ActivationPreActivate})
}

func (r *recorder) PostActivateMode(mode ViewMode) {
	r.events = append(r.events, recordedEvent{mode.Name(), ActivationActivated})
}

func (r *recorder) PreDeactivateMode(mode ViewMode) {
	r.events = append(r.events, recordedEvent{mode.Name(), ActivationPreDeactivate})
}

func (r *recorder) PostDeactivateMode(mode ViewMode) {
	r.events = append(r.events, recordedEvent{mode.Name(), ActivationDeactivated})
}

func (r *recorder) statesOf(name string) []ActivationState {
	var out []ActivationState
	for _, e := range r.events {
		if e.mode == name {
			out = append(out, e.state)
		}
	}
	return out
}

// Package game_object holds the actors cameras frame: capsule pawns with a view rotation, crouch state and
// an optional penetration override.
package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/collision"
	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

type pawn struct {
	mu *sync.Mutex

	id      atomic.Uint64
	enabled atomic.Bool

	location     mgl64.Vec3
	viewRotation common.Rotator

	capsuleRadius       float64
	capsuleHalfHeight   float64
	defaultHalfHeight   float64
	crouchedHalfHeight  float64
	baseEyeHeight       float64
	crouchedEyeHeight   float64
	crouched            bool
	controller          any
	penetrationOverride view.Target

	penetrationReports atomic.Uint64
	onPenetration      func(p Pawn)
}

// Pawn is a capsule character a Viewer can frame. It satisfies view.Character, view.Collider,
// view.PenetrationAssist, view.PenetrationTargetProvider and collision.CapsuleActor.
// Thread-safe for concurrent access.
type Pawn interface {
	view.Character
	view.Collider
	view.PenetrationAssist
	view.PenetrationTargetProvider

	// CapsuleRadius returns the capsule radius.
	CapsuleRadius() float64

	// SetID sets the pawn's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether the pawn takes part in its scene.
	Enabled() bool

	// SetEnabled sets whether the pawn takes part in its scene.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetLocation moves the capsule center.
	//
	// Parameters:
	//   - location: the new world-space location
	SetLocation(location mgl64.Vec3)

	// SetViewRotation sets the aim rotation.
	//
	// Parameters:
	//   - rotation: the new view rotation in degrees
	SetViewRotation(rotation common.Rotator)

	// AddViewRotation adds delta to the aim rotation and normalizes the result.
	//
	// Parameters:
	//   - delta: rotation to add in degrees
	AddViewRotation(delta common.Rotator)

	// Crouch shrinks the capsule to its crouched half height, keeping the capsule bottom in place.
	// Does nothing if already crouched.
	Crouch()

	// UnCrouch restores the default half height, keeping the capsule bottom in place.
	// Does nothing if not crouched.
	UnCrouch()

	// SetController sets the controlling object. A controller implementing view.PenetrationAssist
	// receives camera penetration reports.
	//
	// Parameters:
	//   - controller: the controller, or nil
	SetController(controller any)

	// SetPenetrationTarget substitutes target for this pawn during camera penetration avoidance.
	// Pass nil to clear the override.
	//
	// Parameters:
	//   - target: the override target, or nil
	SetPenetrationTarget(target view.Target)

	// PenetrationReports returns how many times the camera reported penetrating this pawn.
	//
	// Returns:
	//   - uint64: the report count
	PenetrationReports() uint64
}

var _ Pawn = &pawn{}
var _ collision.CapsuleActor = &pawn{}

// NewPawn creates a new Pawn configured with the given options.
// Defaults: radius 34, half height 88, crouched half height 44, eye heights 64 and 40.
//
// Parameters:
//   - options: functional options to configure the pawn
//
// Returns:
//   - Pawn: the newly created pawn
func NewPawn(options ...PawnBuilderOption) Pawn {
	p := &pawn{
		mu:                 &sync.Mutex{},
		capsuleRadius:      34,
		defaultHalfHeight:  88,
		crouchedHalfHeight: 44,
		baseEyeHeight:      64,
		crouchedEyeHeight:  40,
	}
	p.enabled.Store(true)
	for _, option := range options {
		option(p)
	}
	p.capsuleHalfHeight = p.defaultHalfHeight
	return p
}

func (p *pawn) ID() uint64 {
	return p.id.Load()
}

func (p *pawn) SetID(id uint64) {
	p.id.Store(id)
}

func (p *pawn) Kind() view.ActorKind {
	return view.ActorKindPawn
}

func (p *pawn) Enabled() bool {
	return p.enabled.Load()
}

func (p *pawn) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *pawn) Location() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

func (p *pawn) SetLocation(location mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = location
}

// Forward faces along the view yaw.
func (p *pawn) Forward() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return common.Rotator{Yaw: p.viewRotation.Yaw}.Vector()
}

func (p *pawn) ViewRotation() common.Rotator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewRotation
}

func (p *pawn) SetViewRotation(rotation common.Rotator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewRotation = rotation
}

func (p *pawn) AddViewRotation(delta common.Rotator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewRotation = p.viewRotation.Add(delta).Normalized()
}

func (p *pawn) PawnViewLocation() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	eye := p.baseEyeHeight
	if p.crouched {
		eye = p.crouchedEyeHeight
	}
	return p.location.Add(mgl64.Vec3{0, 0, eye})
}

func (p *pawn) CollisionHalfHeight() float64 {
	return p.CapsuleHalfHeight()
}

func (p *pawn) Controller() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controller
}

func (p *pawn) SetController(controller any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controller = controller
}

func (p *pawn) IsCrouched() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crouched
}

func (p *pawn) Crouch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.crouched {
		return
	}
	p.location[2] -= p.capsuleHalfHeight - p.crouchedHalfHeight
	p.capsuleHalfHeight = p.crouchedHalfHeight
	p.crouched = true
}

func (p *pawn) UnCrouch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.crouched {
		return
	}
	p.location[2] += p.defaultHalfHeight - p.capsuleHalfHeight
	p.capsuleHalfHeight = p.defaultHalfHeight
	p.crouched = false
}

func (p *pawn) CapsuleRadius() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capsuleRadius
}

func (p *pawn) CapsuleHalfHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capsuleHalfHeight
}

func (p *pawn) DefaultCapsuleHalfHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.defaultHalfHeight
}

func (p *pawn) BaseEyeHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baseEyeHeight
}

func (p *pawn) CrouchedEyeHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crouchedEyeHeight
}

func (p *pawn) ClosestPointOnCollision(point mgl64.Vec3) (mgl64.Vec3, float64, bool) {
	p.mu.Lock()
	center, radius, halfHeight := p.location, p.capsuleRadius, p.capsuleHalfHeight
	p.mu.Unlock()

	if radius <= 0 {
		return mgl64.Vec3{}, 0, false
	}
	closest, distSqr := collision.ClosestPointOnCapsule(point, center, radius, halfHeight)
	return closest, distSqr, true
}

func (p *pawn) CameraPenetrationTarget() (view.Target, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.penetrationOverride, p.penetrationOverride != nil
}

func (p *pawn) SetPenetrationTarget(target view.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.penetrationOverride = target
}

func (p *pawn) OnCameraPenetratingTarget() {
	p.penetrationReports.Add(1)
	if p.onPenetration != nil {
		p.onPenetration(p)
	}
}

func (p *pawn) PenetrationReports() uint64 {
	return p.penetrationReports.Load()
}

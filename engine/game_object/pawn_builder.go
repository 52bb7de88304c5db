package game_object

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// PawnBuilderOption is a functional option for configuring a Pawn during construction.
type PawnBuilderOption func(*pawn)

// WithID sets the ID of the Pawn.
//
// Parameters:
//   - id: unique identifier for the Pawn
//
// Returns:
//   - PawnBuilderOption: functional option to set the ID
func WithID(id uint64) PawnBuilderOption {
	return func(p *pawn) {
		p.id.Store(id)
	}
}

// WithEnabled sets whether the Pawn takes part in its scene.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - PawnBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) PawnBuilderOption {
	return func(p *pawn) {
		p.enabled.Store(enabled)
	}
}

// WithLocation sets the initial capsule center.
//
// Parameters:
//   - location: world-space location
//
// Returns:
//   - PawnBuilderOption: functional option to set the location
func WithLocation(location mgl64.Vec3) PawnBuilderOption {
	return func(p *pawn) {
		p.location = location
	}
}

// WithViewRotation sets the initial aim rotation.
//
// Parameters:
//   - rotation: view rotation in degrees
//
// Returns:
//   - PawnBuilderOption: functional option to set the view rotation
func WithViewRotation(rotation common.Rotator) PawnBuilderOption {
	return func(p *pawn) {
		p.viewRotation = rotation
	}
}

// WithCapsule sets the capsule radius and its standing and crouched half heights.
// Half heights are raised to at least the radius.
//
// Parameters:
//   - radius: capsule radius
//   - halfHeight: standing half height
//   - crouchedHalfHeight: crouched half height
//
// Returns:
//   - PawnBuilderOption: functional option to set the capsule
func WithCapsule(radius, halfHeight, crouchedHalfHeight float64) PawnBuilderOption {
	return func(p *pawn) {
		p.capsuleRadius = max(radius, 0)
		p.defaultHalfHeight = max(halfHeight, p.capsuleRadius)
		p.crouchedHalfHeight = max(crouchedHalfHeight, p.capsuleRadius)
	}
}

// WithEyeHeights sets the standing and crouched eye heights above the capsule center.
//
// Parameters:
//   - base: standing eye height
//   - crouched: crouched eye height
//
// Returns:
//   - PawnBuilderOption: functional option to set the eye heights
func WithEyeHeights(base, crouched float64) PawnBuilderOption {
	return func(p *pawn) {
		p.baseEyeHeight = base
		p.crouchedEyeHeight = crouched
	}
}

// WithController sets the controlling object.
//
// Parameters:
//   - controller: the controller
//
// Returns:
//   - PawnBuilderOption: functional option to set the controller
func WithController(controller any) PawnBuilderOption {
	return func(p *pawn) {
		p.controller = controller
	}
}

// WithPenetrationCallback registers a function called every time the camera reports penetrating the pawn.
// It runs on the evaluating goroutine and must not block.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - PawnBuilderOption: functional option to set the callback
func WithPenetrationCallback(fn func(p Pawn)) PawnBuilderOption {
	return func(p *pawn) {
		p.onPenetration = fn
	}
}

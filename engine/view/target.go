package view

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ActorKind classifies an actor for penetration weighting and blocking-volume handling.
type ActorKind uint8

const (
	// ActorKindWorld is static or dynamic world geometry.
	ActorKindWorld ActorKind = iota
	// ActorKindPawn is a character or other controllable actor.
	ActorKindPawn
	// ActorKindCameraBlockingVolume only blocks the camera and is ignored when it lies in front of the view target.
	ActorKindCameraBlockingVolume
)

func (k ActorKind) String() string {
	switch k {
	case ActorKindWorld:
		return "World"
	case ActorKindPawn:
		return "Pawn"
	case ActorKindCameraBlockingVolume:
		return "CameraBlockingVolume"
	default:
		return fmt.Sprintf("ActorKind(%d)", uint8(k))
	}
}

// Actor is anything that can be hit by a camera sweep.
type Actor interface {
	// ID returns a stable identifier, unique within a world.
	ID() uint64
	// Kind returns the actor classification.
	Kind() ActorKind
	// Location returns the world-space actor location.
	Location() mgl64.Vec3
	// Forward returns the actor's facing direction.
	Forward() mgl64.Vec3
}

// Target is the actor a ViewMode frames.
type Target interface {
	Actor
	// ViewRotation returns the aim rotation of the target, usually its controller's rotation.
	ViewRotation() common.Rotator
	// PawnViewLocation returns the eye location used when the target has no capsule.
	PawnViewLocation() mgl64.Vec3
	// CollisionHalfHeight returns the half height of the target's collision bounds.
	CollisionHalfHeight() float64
	// Controller returns the controlling object, or nil.
	Controller() any
}

// Character is a capsule-based Target that can crouch.
type Character interface {
	Target
	IsCrouched() bool
	CapsuleHalfHeight() float64
	DefaultCapsuleHalfHeight() float64
	BaseEyeHeight() float64
	CrouchedEyeHeight() float64
}

// Collider is implemented by targets with a collision primitive.
type Collider interface {
	// ClosestPointOnCollision returns the point of the collision primitive closest to point and its squared distance.
	// A point inside the primitive returns itself with a distance of 0. ok is false when there is no primitive.
	ClosestPointOnCollision(point mgl64.Vec3) (closest mgl64.Vec3, distSqr float64, ok bool)
}

// PenetrationAssist is notified when the camera is forced closer to a target than the reporting threshold.
type PenetrationAssist interface {
	OnCameraPenetratingTarget()
}

// PenetrationTargetProvider lets a pawn substitute another actor for penetration avoidance.
type PenetrationTargetProvider interface {
	// CameraPenetrationTarget returns the override target and whether one is set.
	CameraPenetrationTarget() (Target, bool)
}

// Owner supplies a ViewMode with the actor it frames and the world it sweeps against.
type Owner interface {
	// ViewTarget returns the current target, or nil.
	ViewTarget() Target
	// SpatialQuery returns the collision world, or nil.
	SpatialQuery() SpatialQuery
}

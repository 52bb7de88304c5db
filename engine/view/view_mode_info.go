package view

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFieldOfView is the horizontal field of view, in degrees, of a zero-configured pose.
const DefaultFieldOfView = 90.0

// ViewModeInfo is a single camera pose produced by a ViewMode.
type ViewModeInfo struct {
	// Location is the world-space camera location.
	Location mgl64.Vec3
	// Rotation is the camera orientation.
	Rotation common.Rotator
	// ControlRotation is the aim orientation reported back to the controlling player.
	ControlRotation common.Rotator
	// FieldOfView is the horizontal field of view in degrees.
	FieldOfView float64
}

// DefaultViewModeInfo returns a pose at the origin facing +X with the default field of view.
//
// Returns:
//   - ViewModeInfo: the default pose
func DefaultViewModeInfo() ViewModeInfo {
	return ViewModeInfo{FieldOfView: DefaultFieldOfView}
}

// Blend moves this pose toward other by weight.
// A weight <= 0 leaves the pose untouched and a weight >= 1 replaces it with other.
// In between, location and field of view are linearly interpolated while both rotations travel
// along the shortest normalized angular delta scaled by weight. The operation is not commutative.
//
// Parameters:
//   - other: the pose to blend toward
//   - weight: contribution of other in [0, 1]
func (v *ViewModeInfo) Blend(other ViewModeInfo, weight float64) {
	if weight <= 0 {
		return
	} else if weight >= 1 {
		*v = other
		return
	}

	v.Location = common.LerpVec3(v.Location, other.Location, weight)

	deltaRotation := other.Rotation.Sub(v.Rotation).Normalized()
	v.Rotation = v.Rotation.Add(deltaRotation.Scale(weight))

	deltaControlRotation := other.ControlRotation.Sub(v.ControlRotation).Normalized()
	v.ControlRotation = v.ControlRotation.Add(deltaControlRotation.Scale(weight))

	v.FieldOfView = common.Lerp(v.FieldOfView, other.FieldOfView, weight)
}

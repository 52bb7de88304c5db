package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionMode selects how a view is projected onto the screen.
type ProjectionMode uint8

const (
	// ProjectionPerspective uses the field of view.
	ProjectionPerspective ProjectionMode = iota
	// ProjectionOrthographic uses the ortho width and clip planes.
	ProjectionOrthographic
)

func (p ProjectionMode) String() string {
	switch p {
	case ProjectionPerspective:
		return "Perspective"
	case ProjectionOrthographic:
		return "Orthographic"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", uint8(p))
	}
}

// MinimalViewInfo is the complete view a Viewer hands to its consumer each frame.
// Location, Rotation and FOV come from the blended view modes; every other field is copied
// from the viewer's own settings.
type MinimalViewInfo struct {
	Location mgl64.Vec3
	Rotation common.Rotator
	// FOV is the horizontal field of view in degrees.
	FOV float64

	OrthoWidth         float64
	OrthoNearClipPlane float64
	OrthoFarClipPlane  float64

	AspectRatio          float64
	ConstrainAspectRatio bool
	UseFieldOfViewForLOD bool

	ProjectionMode         ProjectionMode
	PostProcessBlendWeight float64
}

package camera

import "github.com/Carmen-Shannon/oxy-view/engine/view"

// ViewerBuilderOption configures a Viewer at construction time.
type ViewerBuilderOption func(*viewerImpl)

// WithViewTarget sets the pawn the viewer's modes frame.
//
// Parameters:
//   - target: the view target
//
// Returns:
//   - ViewerBuilderOption: a function that sets the target
func WithViewTarget(target view.Target) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.target = target
	}
}

// WithSpatialQuery sets the collision world used by penetration avoidance.
//
// Parameters:
//   - query: the spatial query
//
// Returns:
//   - ViewerBuilderOption: a function that sets the query
func WithSpatialQuery(query view.SpatialQuery) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.query = query
	}
}

// WithDefaultViewMode sets the class pushed when no override is active.
//
// Parameters:
//   - class: the default view mode class
//
// Returns:
//   - ViewerBuilderOption: a function that sets the default class
func WithDefaultViewMode(class *view.ViewModeClass) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.defaultViewMode = class
	}
}

// WithDedicatedServer lets the viewer finish initialization without a default view mode.
func WithDedicatedServer(dedicated bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.dedicatedServer = dedicated
	}
}

// WithDataAvailable sets the predicate that must hold before the viewer reaches DataAvailable.
//
// Parameters:
//   - ready: reports whether the pawn's data can be read
//
// Returns:
//   - ViewerBuilderOption: a function that sets the predicate
func WithDataAvailable(ready func() bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.dataAvailable = ready
	}
}

// WithCamera attaches a camera that the viewer drives as its controller.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - ViewerBuilderOption: a function that attaches the camera
func WithCamera(cam Camera) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.camera = cam
	}
}

// WithOrthoWidth sets the ortho width copied into every MinimalViewInfo.
func WithOrthoWidth(width float64) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.orthoWidth = width
	}
}

// WithOrthoClipPlanes sets the ortho near and far clip planes copied into every MinimalViewInfo.
func WithOrthoClipPlanes(near, far float64) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.orthoNearClipPlane = near
		v.orthoFarClipPlane = far
	}
}

// WithAspectRatio sets the aspect ratio and whether it is enforced with letterboxing.
func WithAspectRatio(aspect float64, constrain bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.aspectRatio = aspect
		v.constrainAspectRatio = constrain
	}
}

// WithFieldOfViewForLOD marks the view's field of view as relevant for level of detail selection.
func WithFieldOfViewForLOD(use bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.useFieldOfViewForLOD = use
	}
}

// WithProjectionMode sets the projection copied into every MinimalViewInfo.
func WithProjectionMode(mode ProjectionMode) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.projectionMode = mode
	}
}

// WithPostProcessBlendWeight sets the post-process blend weight copied into every MinimalViewInfo.
func WithPostProcessBlendWeight(weight float64) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.postProcessBlendWeight = weight
	}
}

package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/initstate"
	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

// worldMax is the far ortho clip plane used when none is configured.
const worldMax = 2097152.0

type viewerImpl struct {
	mu *sync.Mutex

	name   string
	target view.Target
	query  view.SpatialQuery
	stack  view.ViewModeStack
	gate   initstate.Gate
	camera Camera

	defaultViewMode  *view.ViewModeClass
	overrideViewMode *view.ViewModeClass
	dedicatedServer  bool
	dataAvailable    func() bool

	orthoWidth             float64
	orthoNearClipPlane     float64
	orthoFarClipPlane      float64
	aspectRatio            float64
	constrainAspectRatio   bool
	useFieldOfViewForLOD   bool
	projectionMode         ProjectionMode
	postProcessBlendWeight float64

	current                 view.ViewModeInfo
	previousControlRotation common.Rotator
	controlRotationDelta    common.Rotator
}

// Viewer owns the view mode stack of one pawn. Every frame it pushes the active view mode class,
// evaluates the stack and publishes the blended result as a MinimalViewInfo. A Viewer is also the
// CameraController of the Camera attached to it.
//
// GetCameraView must not be called concurrently for the same Viewer. All other methods are safe
// for concurrent use.
type Viewer interface {
	CameraController
	view.Owner

	// Name returns the viewer's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetViewTarget changes the pawn the view modes frame.
	//
	// Parameters:
	//   - target: the new target, may be nil
	SetViewTarget(target view.Target)

	// InitState returns the viewer's start-up state.
	//
	// Returns:
	//   - initstate.State: the current state
	InitState() initstate.State

	// CheckDefaultInitialization advances the start-up chain as far as the viewer's dependencies allow.
	//
	// Returns:
	//   - initstate.State: the state reached
	CheckDefaultInitialization() initstate.State

	// InitializeViewMode sets the default view mode class and retries initialization if it changed.
	//
	// Parameters:
	//   - class: the default class
	InitializeViewMode(class *view.ViewModeClass)

	// SetViewModeOverride makes class take precedence over the default view mode.
	//
	// Parameters:
	//   - class: the override class
	SetViewModeOverride(class *view.ViewModeClass)

	// ClearViewModeOverride removes the override so the default view mode applies again.
	ClearViewModeOverride()

	// DetermineViewMode returns the override class if set, otherwise the default class.
	//
	// Returns:
	//   - *view.ViewModeClass: the class to push, possibly nil
	DetermineViewMode() *view.ViewModeClass

	// GetCameraView pushes the current view mode class, evaluates the stack and returns the resulting view.
	// The attached camera, if any, is updated from the result.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - MinimalViewInfo: the evaluated view
	GetCameraView(deltaTime float64) MinimalViewInfo

	// ControlRotationDelta returns how much the blended control rotation changed during the last evaluation.
	//
	// Returns:
	//   - common.Rotator: the control rotation delta
	ControlRotationDelta() common.Rotator

	// ViewModeInfo returns the blended pose of the last evaluation.
	//
	// Returns:
	//   - view.ViewModeInfo: the pose
	ViewModeInfo() view.ViewModeInfo

	// Stack returns the viewer's view mode stack.
	//
	// Returns:
	//   - view.ViewModeStack: the stack
	Stack() view.ViewModeStack

	// Camera returns the attached camera, or nil.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a viewer and runs its start-up chain as far as it can.
//
// Parameters:
//   - name: the viewer's name, used in log lines
//   - options: builder options
//
// Returns:
//   - Viewer: the new viewer
func NewViewer(name string, options ...ViewerBuilderOption) Viewer {
	v := &viewerImpl{
		mu:                     &sync.Mutex{},
		name:                   name,
		orthoWidth:             512,
		orthoFarClipPlane:      worldMax,
		aspectRatio:            16.0 / 9.0,
		projectionMode:         ProjectionPerspective,
		postProcessBlendWeight: 1,
		current:                view.DefaultViewModeInfo(),
	}
	for _, option := range options {
		option(v)
	}

	v.stack = view.NewViewModeStack(v)
	v.gate = initstate.NewGate(name,
		initstate.WithTransition(initstate.StateSpawned, initstate.Transition{
			CanEnter: func() bool { return v.ViewTarget() != nil },
		}),
		initstate.WithTransition(initstate.StateDataAvailable, initstate.Transition{
			CanEnter: v.canEnterDataAvailable,
		}),
		initstate.WithTransition(initstate.StateDataInitialized, initstate.Transition{
			CanEnter: v.canEnterDataInitialized,
		}),
	)
	if v.camera != nil {
		v.camera.SetController(v)
	}

	v.CheckDefaultInitialization()
	return v
}

func (v *viewerImpl) canEnterDataAvailable() bool {
	v.mu.Lock()
	check := v.dataAvailable
	v.mu.Unlock()
	return check == nil || check()
}

func (v *viewerImpl) canEnterDataInitialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dedicatedServer || v.defaultViewMode != nil
}

func (v *viewerImpl) Name() string {
	return v.name
}

func (v *viewerImpl) ViewTarget() view.Target {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.target
}

func (v *viewerImpl) SpatialQuery() view.SpatialQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *viewerImpl) SetViewTarget(target view.Target) {
	v.mu.Lock()
	v.target = target
	v.mu.Unlock()
	v.CheckDefaultInitialization()
}

func (v *viewerImpl) InitState() initstate.State {
	return v.gate.State()
}

func (v *viewerImpl) CheckDefaultInitialization() initstate.State {
	return v.gate.ContinueChain(initstate.DefaultChain...)
}

func (v *viewerImpl) InitializeViewMode(class *view.ViewModeClass) {
	v.mu.Lock()
	if v.defaultViewMode == class {
		v.mu.Unlock()
		return
	}
	v.defaultViewMode = class
	v.mu.Unlock()

	v.CheckDefaultInitialization()
}

func (v *viewerImpl) SetViewModeOverride(class *view.ViewModeClass) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.overrideViewMode = class
}

func (v *viewerImpl) ClearViewModeOverride() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.overrideViewMode = nil
}

func (v *viewerImpl) DetermineViewMode() *view.ViewModeClass {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.overrideViewMode != nil {
		return v.overrideViewMode
	}
	return v.defaultViewMode
}

func (v *viewerImpl) GetCameraView(deltaTime float64) MinimalViewInfo {
	if class := v.DetermineViewMode(); class != nil {
		v.stack.PushViewMode(class)
	}

	v.mu.Lock()
	out := v.current
	v.mu.Unlock()

	// The stack calls back into ViewTarget and SpatialQuery, so it runs without the lock.
	v.stack.EvaluateStack(deltaTime, &out)

	v.mu.Lock()
	v.controlRotationDelta = out.ControlRotation.Sub(v.previousControlRotation).Normalized()
	v.previousControlRotation = out.ControlRotation
	v.current = out
	info := MinimalViewInfo{
		Location:               out.Location,
		Rotation:               out.Rotation,
		FOV:                    out.FieldOfView,
		OrthoWidth:             v.orthoWidth,
		OrthoNearClipPlane:     v.orthoNearClipPlane,
		OrthoFarClipPlane:      v.orthoFarClipPlane,
		AspectRatio:            v.aspectRatio,
		ConstrainAspectRatio:   v.constrainAspectRatio,
		UseFieldOfViewForLOD:   v.useFieldOfViewForLOD,
		ProjectionMode:         v.projectionMode,
		PostProcessBlendWeight: v.postProcessBlendWeight,
	}
	cam := v.camera
	v.mu.Unlock()

	if cam != nil {
		cam.Update()
	}
	return info
}

func (v *viewerImpl) ControlRotationDelta() common.Rotator {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.controlRotationDelta
}

func (v *viewerImpl) ViewModeInfo() view.ViewModeInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *viewerImpl) Stack() view.ViewModeStack {
	return v.stack
}

func (v *viewerImpl) Camera() Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera
}

func (v *viewerImpl) Position() mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current.Location
}

func (v *viewerImpl) Target() mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current.Location.Add(v.current.Rotation.Vector())
}

func (v *viewerImpl) FieldOfView() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current.FieldOfView
}

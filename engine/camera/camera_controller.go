package camera

import "github.com/go-gl/mathgl/mgl64"

// CameraController is the pose source a Camera reads every frame.
// Controllers own positional state; the camera only derives matrices from it.
// A Viewer is the controller of the camera it drives.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space camera position
	Position() mgl64.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target position
	Target() mgl64.Vec3

	// FieldOfView returns the desired horizontal field of view in degrees. Values <= 0 keep the camera's own.
	//
	// Returns:
	//   - float64: field of view in degrees
	FieldOfView() float64
}

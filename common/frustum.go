package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents a plane in 3D space using the equation: n·p + d = 0
// where n is the unit normal and d is the distance from origin.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// SignedDistance returns how far p lies on the normal side of the plane.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum represents the six planes of a view frustum.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix with OpenGL clip depth in [-1, 1].
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl64.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	var f Frustum
	for i, v := range [6]mgl64.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	} {
		f.Planes[i] = normalizePlane(v)
	}
	return f
}

// normalizePlane scales a plane so that its normal has unit length.
func normalizePlane(v mgl64.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v[3]}
	if length := p.Normal.Len(); length > 0 {
		p.Normal = p.Normal.Mul(1 / length)
		p.Distance /= length
	}
	return p
}

// ContainsSphere reports whether a sphere is at least partly inside the frustum.
//
// Parameters:
//   - center: sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere lies entirely outside one plane
func (f Frustum) ContainsSphere(center mgl64.Vec3, radius float64) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

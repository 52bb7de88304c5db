package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sweepSphere returns the earliest fraction of the segment from + delta*t, t in [0, 1], whose point lies
// within radius of center. A start inside the sphere hits at 0.
func sweepSphere(from, delta, center mgl64.Vec3, radius float64) (float64, bool) {
	f := from.Sub(center)
	c := f.LenSqr() - radius*radius
	if c <= 0 {
		return 0, true
	}

	a := delta.LenSqr()
	if a == 0 {
		return 0, false
	}
	b := 2 * f.Dot(delta)

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// sweepBox slab-tests the segment against the box grown by radius on every side.
// Corners are treated as square, so the result is slightly conservative near edges.
func sweepBox(from, delta, center, halfExtents mgl64.Vec3, radius float64) (float64, bool) {
	tmin := 0.0
	tmax := 1.0

	for axis := 0; axis < 3; axis++ {
		lo := center[axis] - halfExtents[axis] - radius
		hi := center[axis] + halfExtents[axis] + radius

		if delta[axis] != 0 {
			invD := 1.0 / delta[axis]
			t1 := (lo - from[axis]) * invD
			t2 := (hi - from[axis]) * invD
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if from[axis] < lo || from[axis] > hi {
			return 0, false
		}
	}

	if tmax >= tmin {
		return tmin, true
	}
	return 0, false
}

// capsuleSegment returns the end points of the inner segment of a vertical capsule.
func capsuleSegment(center mgl64.Vec3, radius, halfHeight float64) (bottom, top mgl64.Vec3) {
	inner := max(halfHeight-radius, 0)
	bottom = center.Sub(mgl64.Vec3{0, 0, inner})
	top = center.Add(mgl64.Vec3{0, 0, inner})
	return
}

// sweepCapsule tests the segment against a vertical capsule grown by radius: the cylinder side
// first, then the two end spheres.
func sweepCapsule(from, delta, center mgl64.Vec3, capsuleRadius, halfHeight, radius float64) (float64, bool) {
	bottom, top := capsuleSegment(center, capsuleRadius, halfHeight)
	r := capsuleRadius + radius

	if _, distSqr := closestOnVerticalSegment(from, bottom, top); distSqr <= r*r {
		return 0, true
	}

	best := math.Inf(1)

	fx := from[0] - center[0]
	fy := from[1] - center[1]
	a := delta[0]*delta[0] + delta[1]*delta[1]
	if a > 0 {
		b := 2 * (fx*delta[0] + fy*delta[1])
		c := fx*fx + fy*fy - r*r
		if disc := b*b - 4*a*c; disc >= 0 {
			t := (-b - math.Sqrt(disc)) / (2 * a)
			z := from[2] + delta[2]*t
			if t >= 0 && t <= 1 && z >= bottom[2] && z <= top[2] {
				best = t
			}
		}
	}

	for _, end := range []mgl64.Vec3{bottom, top} {
		if t, ok := sweepSphere(from, delta, end, r); ok && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// closestOnVerticalSegment returns the point of the vertical segment [bottom, top] closest to p and the
// squared distance to it.
func closestOnVerticalSegment(p, bottom, top mgl64.Vec3) (mgl64.Vec3, float64) {
	q := mgl64.Vec3{bottom[0], bottom[1], mgl64.Clamp(p[2], bottom[2], top[2])}
	return q, p.Sub(q).LenSqr()
}

// ClosestPointOnCapsule returns the point of a vertical capsule closest to point and the squared distance
// between them. Points inside the capsule return themselves with a distance of 0.
//
// Parameters:
//   - point: the query point
//   - center: capsule center
//   - radius: capsule radius
//   - halfHeight: half the total capsule height, including the end caps
//
// Returns:
//   - mgl64.Vec3: the closest point
//   - float64: the squared distance
func ClosestPointOnCapsule(point, center mgl64.Vec3, radius, halfHeight float64) (mgl64.Vec3, float64) {
	bottom, top := capsuleSegment(center, radius, halfHeight)
	q, distSqr := closestOnVerticalSegment(point, bottom, top)
	if distSqr <= radius*radius {
		return point, 0
	}

	dist := math.Sqrt(distSqr)
	closest := q.Add(point.Sub(q).Mul(radius / dist))
	gap := dist - radius
	return closest, gap * gap
}

package view

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// minRayLength is the shortest base ray worth sweeping.
const minRayLength = 1e-4

// updatePreventPenetration picks a safe location inside the penetration actor closest to the aim line,
// pulls the camera in front of any obstruction and notifies assists when the camera gets too close.
func (m *thirdPersonViewModeImpl) updatePreventPenetration(target Target, deltaTime float64) {
	if !m.preventPenetration || len(m.feelers) == 0 {
		return
	}

	ppActor := target
	overridden := false
	if provider, ok := target.(PenetrationTargetProvider); ok {
		if override, ok := provider.CameraPenetrationTarget(); ok && override != nil {
			ppActor = override
			overridden = true
		}
	}

	collider, ok := ppActor.(Collider)
	if !ok {
		return
	}

	m.safeLocation = m.computeSafeLocation(ppActor, collider)
	location, traced := m.preventCameraPenetration(ppActor, m.safeLocation, m.info.Location, deltaTime, !m.predictiveAvoidance)
	m.info.Location = location

	if traced && m.distBlockedPct < m.reportPenetrationPercent {
		assists := []any{target.Controller(), target}
		if overridden {
			assists = append(assists, ppActor)
		}
		for _, candidate := range assists {
			if assist, ok := candidate.(PenetrationAssist); ok {
				assist.OnCameraPenetratingTarget()
			}
		}
	}
}

// computeSafeLocation returns the sweep origin. It starts at the actor location with its height moved to
// the aim line, kept pushIn inside the collision bounds. If the aim line passes outside the primitive the
// closest surface point is used instead, pushed pushIn further away from the line.
func (m *thirdPersonViewModeImpl) computeSafeLocation(ppActor Target, collider Collider) mgl64.Vec3 {
	actorLocation := ppActor.Location()
	closestOnLine := common.ClosestPointOnLine(actorLocation, m.info.Rotation.Vector(), m.info.Location)

	pushIn := m.feelers[0].Extent + m.collisionPushOutDistance
	maxHalfHeight := max(ppActor.CollisionHalfHeight()-pushIn, 0)

	safe := actorLocation
	safe[2] = mgl64.Clamp(closestOnLine[2], actorLocation[2]-maxHalfHeight, actorLocation[2]+maxHalfHeight)

	if surface, distSqr, ok := collider.ClosestPointOnCollision(closestOnLine); ok && distSqr > 0 {
		safe = surface.Add(common.SafeNormal(surface.Sub(closestOnLine)).Mul(pushIn))
	}
	return safe
}

// preventCameraPenetration sweeps the feelers from safeLoc toward cameraLoc, updates the smoothed blocked
// fraction and returns the adjusted camera location. traced is false when the ray was too short to sweep.
func (m *thirdPersonViewModeImpl) preventCameraPenetration(viewTarget Target, safeLoc, cameraLoc mgl64.Vec3, deltaTime float64, singleRayOnly bool) (location mgl64.Vec3, traced bool) {
	baseRay := cameraLoc.Sub(safeLoc)
	rayLength := baseRay.Len()
	if rayLength < minRayLength {
		return cameraLoc, false
	}

	reset := m.resetInterpolation
	m.resetInterpolation = false

	hardBlockedPct := m.distBlockedPct
	softBlockedPct := m.distBlockedPct
	blockedThisFrame := 1.0

	_, localRight, localUp := common.RotatorFromVector(baseRay).Axes()

	numRays := len(m.feelers)
	if singleRayOnly {
		numRays = min(1, numRays)
	}

	var query SpatialQuery
	if m.owner != nil {
		query = m.owner.SpatialQuery()
	}
	ignore := IgnoreSet{}
	ignore.Add(viewTarget)

	for i := 0; i < numRays; i++ {
		feeler := &m.feelers[i]
		if feeler.FramesUntilNextTrace > 0 {
			feeler.FramesUntilNextTrace--
			continue
		}

		ray := common.RotateAngleAxis(baseRay, feeler.AdjustmentRot.Yaw, localUp)
		ray = common.RotateAngleAxis(ray, feeler.AdjustmentRot.Pitch, localRight)
		rayTarget := safeLoc.Add(ray)

		feeler.FramesUntilNextTrace = feeler.TraceInterval

		if query != nil {
			if hit, ok := query.Sweep(feeler.Extent, safeLoc, rayTarget, ignore, ChannelCamera); ok && !ignoreBlockingVolumeHit(viewTarget, hit, ignore) {
				weight := feeler.WorldWeight
				if hit.Actor != nil && hit.Actor.Kind() == ActorKindPawn {
					weight = feeler.PawnWeight
				}
				pct := hit.Time + (1-hit.Time)*(1-weight)
				pct = (pct*rayLength - m.collisionPushOutDistance) / rayLength
				blockedThisFrame = math.Min(pct, blockedThisFrame)
				feeler.FramesUntilNextTrace = 0
			}
		}

		if i == 0 {
			hardBlockedPct = blockedThisFrame
		} else {
			softBlockedPct = blockedThisFrame
		}
	}

	switch {
	case reset:
		m.distBlockedPct = blockedThisFrame
	case m.distBlockedPct < blockedThisFrame:
		if m.penetrationBlendOutTime > deltaTime {
			m.distBlockedPct += deltaTime / m.penetrationBlendOutTime * (blockedThisFrame - m.distBlockedPct)
		} else {
			m.distBlockedPct = blockedThisFrame
		}
	case m.distBlockedPct > hardBlockedPct:
		m.distBlockedPct = hardBlockedPct
	case m.distBlockedPct > softBlockedPct:
		if m.penetrationBlendInTime > deltaTime {
			m.distBlockedPct -= deltaTime / m.penetrationBlendInTime * (m.distBlockedPct - softBlockedPct)
		} else {
			m.distBlockedPct = softBlockedPct
		}
	}

	m.distBlockedPct = mgl64.Clamp(m.distBlockedPct, 0, 1)
	if m.distBlockedPct < 1-common.ZeroAnimWeightThresh {
		return safeLoc.Add(baseRay.Mul(m.distBlockedPct)), true
	}
	return cameraLoc, true
}

// ignoreBlockingVolumeHit reports whether hit is a camera blocking volume in front of the view target.
// Such volumes are added to ignore so the remaining feelers pass through them.
func ignoreBlockingVolumeHit(viewTarget Target, hit SweepHit, ignore IgnoreSet) bool {
	if hit.Actor == nil || hit.Actor.Kind() != ActorKindCameraBlockingVolume {
		return false
	}
	forwardXY := common.SafeNormal2D(viewTarget.Forward())
	hitDirectionXY := common.SafeNormal2D(hit.Location.Sub(viewTarget.Location()))
	if forwardXY.Dot(hitDirectionXY) > 0 {
		ignore.Add(hit.Actor)
		return true
	}
	return false
}

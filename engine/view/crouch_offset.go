package view

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// CrouchOffset eases the camera between standing and crouched eye heights.
type CrouchOffset struct {
	// BlendMultiplier is the blend rate in units per second. Values <= 0 snap.
	BlendMultiplier float64
	// Exponent shapes the ease-in-out curve, 1 is linear.
	Exponent float64

	pct     float64
	initial mgl64.Vec3
	target  mgl64.Vec3
	current mgl64.Vec3
}

// NewCrouchOffset returns an offset at rest at zero.
//
// Parameters:
//   - blendMultiplier: the blend rate in units per second
//
// Returns:
//   - CrouchOffset: the offset
func NewCrouchOffset(blendMultiplier float64) CrouchOffset {
	return CrouchOffset{BlendMultiplier: blendMultiplier, Exponent: 1, pct: 1}
}

// SetTarget starts easing from the current offset toward target. Setting the current target again does nothing.
func (c *CrouchOffset) SetTarget(target mgl64.Vec3) {
	if target == c.target {
		return
	}
	c.initial = c.current
	c.target = target
	c.pct = 0
}

// Update advances the blend by deltaTime seconds and returns the current offset.
// The target is reached exactly once deltaTime*BlendMultiplier has accumulated to 1.
func (c *CrouchOffset) Update(deltaTime float64) mgl64.Vec3 {
	if c.pct < 1 && c.BlendMultiplier > 0 {
		c.pct = min(c.pct+deltaTime*c.BlendMultiplier, 1)
	} else {
		c.pct = 1
	}

	if c.pct >= 1 {
		c.current = c.target
	} else {
		exp := c.Exponent
		if exp <= 0 {
			exp = 1
		}
		c.current = common.InterpEaseInOutVec3(c.initial, c.target, c.pct, exp)
	}
	return c.current
}

// Current returns the offset computed by the last Update.
func (c *CrouchOffset) Current() mgl64.Vec3 {
	return c.current
}

// Target returns the offset being eased toward.
func (c *CrouchOffset) Target() mgl64.Vec3 {
	return c.target
}

// updateForTarget retargets from the character's crouch state and advances the blend.
// Targets that cannot crouch get no offset.
func (c *CrouchOffset) updateForTarget(target Target, deltaTime float64) mgl64.Vec3 {
	if ch, ok := target.(Character); ok {
		var offset mgl64.Vec3
		if ch.IsCrouched() {
			offset = mgl64.Vec3{0, 0, ch.CrouchedEyeHeight() - ch.BaseEyeHeight()}
		}
		c.SetTarget(offset)
	}
	return c.Update(deltaTime)
}

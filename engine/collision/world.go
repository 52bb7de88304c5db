// Package collision is a small spatial query backend for camera sweeps. It holds spheres, boxes and
// vertical capsules bound to actors and answers swept-sphere queries against them.
package collision

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

// Shape identifies the geometry of a body.
type Shape uint8

const (
	ShapeSphere Shape = iota
	ShapeBox
	ShapeCapsule
)

// CapsuleActor is an actor whose capsule can change size, such as a crouching character.
// Its capsule is read at query time and centered on the actor location.
type CapsuleActor interface {
	view.Actor
	CapsuleRadius() float64
	CapsuleHalfHeight() float64
}

type body struct {
	actor    view.Actor
	shape    Shape
	channels view.CollisionChannel

	radius      float64
	halfExtents mgl64.Vec3
}

type worldImpl struct {
	mu *sync.RWMutex

	bodies []body
	sweeps atomic.Uint64
}

// World is a collection of collision bodies. It implements view.SpatialQuery.
// Queries take a read lock and may run concurrently with each other.
type World interface {
	view.SpatialQuery

	// AddSphere registers a sphere centered on the actor.
	//
	// Parameters:
	//   - actor: the owning actor
	//   - radius: sphere radius
	//   - channels: channels the sphere blocks
	AddSphere(actor view.Actor, radius float64, channels view.CollisionChannel)

	// AddBox registers an axis-aligned box centered on the actor.
	//
	// Parameters:
	//   - actor: the owning actor
	//   - halfExtents: half the box size on each axis
	//   - channels: channels the box blocks
	AddBox(actor view.Actor, halfExtents mgl64.Vec3, channels view.CollisionChannel)

	// AddCapsule registers the actor's vertical capsule.
	//
	// Parameters:
	//   - actor: the owning actor
	//   - channels: channels the capsule blocks
	AddCapsule(actor CapsuleActor, channels view.CollisionChannel)

	// Remove drops every body of the actor with id.
	//
	// Parameters:
	//   - id: the actor id
	//
	// Returns:
	//   - bool: true if anything was removed
	Remove(id uint64) bool

	// Len returns the number of bodies.
	//
	// Returns:
	//   - int: the body count
	Len() int

	// SweepCount returns the number of sweeps since the last reset.
	//
	// Returns:
	//   - uint64: the sweep count
	SweepCount() uint64

	// ResetSweepCount zeroes the sweep counter and returns its previous value.
	//
	// Returns:
	//   - uint64: the count before the reset
	ResetSweepCount() uint64
}

var _ World = &worldImpl{}

// NewWorld creates an empty world.
//
// Returns:
//   - World: the world
func NewWorld() World {
	return &worldImpl{mu: &sync.RWMutex{}}
}

func (w *worldImpl) AddSphere(actor view.Actor, radius float64, channels view.CollisionChannel) {
	w.add(body{actor: actor, shape: ShapeSphere, radius: radius, channels: channels})
}

func (w *worldImpl) AddBox(actor view.Actor, halfExtents mgl64.Vec3, channels view.CollisionChannel) {
	w.add(body{actor: actor, shape: ShapeBox, halfExtents: halfExtents, channels: channels})
}

func (w *worldImpl) AddCapsule(actor CapsuleActor, channels view.CollisionChannel) {
	w.add(body{actor: actor, shape: ShapeCapsule, channels: channels})
}

func (w *worldImpl) add(b body) {
	if b.actor == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = append(w.bodies, b)
}

func (w *worldImpl) Remove(id uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.actor.ID() != id {
			kept = append(kept, b)
		}
	}
	removed := len(kept) != len(w.bodies)
	clear(w.bodies[len(kept):])
	w.bodies = kept
	return removed
}

func (w *worldImpl) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

func (w *worldImpl) SweepCount() uint64 {
	return w.sweeps.Load()
}

func (w *worldImpl) ResetSweepCount() uint64 {
	return w.sweeps.Swap(0)
}

func (w *worldImpl) Sweep(radius float64, from, to mgl64.Vec3, ignore view.IgnoreSet, channel view.CollisionChannel) (view.SweepHit, bool) {
	w.sweeps.Add(1)

	w.mu.RLock()
	defer w.mu.RUnlock()

	delta := to.Sub(from)
	radius = max(radius, 0)

	best := math.Inf(1)
	var hitActor view.Actor
	for _, b := range w.bodies {
		if b.channels&channel == 0 || ignore.Contains(b.actor.ID()) {
			continue
		}
		if t, ok := b.sweep(radius, from, delta); ok && t < best {
			best = t
			hitActor = b.actor
		}
	}

	if hitActor == nil {
		return view.SweepHit{}, false
	}
	return view.SweepHit{
		Location: from.Add(delta.Mul(best)),
		Time:     best,
		Actor:    hitActor,
	}, true
}

func (b body) sweep(radius float64, from, delta mgl64.Vec3) (float64, bool) {
	center := b.actor.Location()
	switch b.shape {
	case ShapeSphere:
		return sweepSphere(from, delta, center, b.radius+radius)
	case ShapeBox:
		return sweepBox(from, delta, center, b.halfExtents, radius)
	case ShapeCapsule:
		capsule := b.actor.(CapsuleActor)
		return sweepCapsule(from, delta, center, capsule.CapsuleRadius(), capsule.CapsuleHalfHeight(), radius)
	default:
		return 0, false
	}
}

package view

import "github.com/go-gl/mathgl/mgl64"

// CollisionChannel is a bit mask selecting which primitives a sweep considers.
type CollisionChannel uint32

const (
	// ChannelCamera is traced by penetration avoidance.
	ChannelCamera CollisionChannel = 1 << iota
	// ChannelVisibility is traced by line-of-sight queries.
	ChannelVisibility
	// ChannelPawn is traced by movement queries.
	ChannelPawn
)

// SweepHit describes the first blocking contact of a sphere sweep.
type SweepHit struct {
	// Location is the sphere center at the time of impact.
	Location mgl64.Vec3
	// Time is the fraction of the sweep in [0, 1] at which the hit occurred. 0 means the sweep started in penetration.
	Time float64
	// Actor is the actor that was hit, or nil.
	Actor Actor
}

// IgnoreSet holds actor IDs a sweep passes through.
type IgnoreSet map[uint64]struct{}

// Add inserts an actor into the set. Nil actors are ignored.
func (s IgnoreSet) Add(a Actor) {
	if a == nil {
		return
	}
	s[a.ID()] = struct{}{}
}

// Contains reports whether the actor with id is ignored.
func (s IgnoreSet) Contains(id uint64) bool {
	_, ok := s[id]
	return ok
}

// SpatialQuery sweeps spheres through the world.
type SpatialQuery interface {
	// Sweep moves a sphere of radius from from to to and returns the earliest blocking hit on channel,
	// skipping actors in ignore. A radius of 0 is a line trace.
	Sweep(radius float64, from, to mgl64.Vec3, ignore IgnoreSet, channel CollisionChannel) (SweepHit, bool)
}

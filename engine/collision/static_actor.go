package collision

import (
	"github.com/Carmen-Shannon/oxy-view/engine/view"
	"github.com/go-gl/mathgl/mgl64"
)

// StaticActor is an immovable actor for world geometry and blocking volumes.
type StaticActor struct {
	id       uint64
	kind     view.ActorKind
	location mgl64.Vec3
	forward  mgl64.Vec3
}

var _ view.Actor = &StaticActor{}

// NewStaticActor creates a static actor facing +X.
//
// Parameters:
//   - id: the actor id, unique within a world
//   - kind: the actor classification
//   - location: world-space location
//
// Returns:
//   - *StaticActor: the actor
func NewStaticActor(id uint64, kind view.ActorKind, location mgl64.Vec3) *StaticActor {
	return &StaticActor{id: id, kind: kind, location: location, forward: mgl64.Vec3{1, 0, 0}}
}

func (a *StaticActor) ID() uint64           { return a.id }
func (a *StaticActor) Kind() view.ActorKind { return a.kind }
func (a *StaticActor) Location() mgl64.Vec3 { return a.location }
func (a *StaticActor) Forward() mgl64.Vec3  { return a.forward }

package scene

import (
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/collision"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is ticked by the engine.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithWorld replaces the scene's collision world.
//
// Parameters:
//   - w: the world to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorld(w collision.World) SceneBuilderOption {
	return func(s *scene) {
		s.world = w
	}
}

// WithPawns adds initial pawns to the scene.
// Pawns without IDs will be assigned new IDs. Their capsules are registered once the world exists.
//
// Parameters:
//   - pawns: the pawns to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPawns(pawns ...game_object.Pawn) SceneBuilderOption {
	return func(s *scene) {
		s.pending = append(s.pending, pawns...)
	}
}

// WithViewers adds initial viewers to the scene.
//
// Parameters:
//   - viewers: the viewers to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewers(viewers ...camera.Viewer) SceneBuilderOption {
	return func(s *scene) {
		for _, v := range viewers {
			if v != nil {
				s.viewers[v.Name()] = v
			}
		}
	}
}

// WithWorkers sets the number of worker goroutines used to evaluate viewers during Tick.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

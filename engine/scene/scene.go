package scene

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/collision"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/view"
)

// PawnChannels are the channels a pawn capsule blocks once added to a scene.
const PawnChannels = view.ChannelCamera | view.ChannelVisibility | view.ChannelPawn

// Scene holds a collision world, the pawns standing in it and the viewers framing them.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access, except that Tick must not run concurrently with itself.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is ticked by the engine.
	Active() bool

	// SetActive sets whether this scene is ticked by the engine.
	SetActive(active bool)

	// World returns the scene's collision world. Static geometry is added to it directly.
	//
	// Returns:
	//   - collision.World: the world
	World() collision.World

	// AddPawn adds a pawn and registers its capsule in the world. Pawns without an ID are assigned one.
	//
	// Parameters:
	//   - p: the pawn to add
	//
	// Returns:
	//   - uint64: the pawn ID
	AddPawn(p game_object.Pawn) uint64

	// Pawn retrieves a pawn by ID, or nil if not found.
	//
	// Parameters:
	//   - id: the pawn ID
	//
	// Returns:
	//   - game_object.Pawn: the pawn or nil
	Pawn(id uint64) game_object.Pawn

	// RemovePawn removes a pawn and its capsule.
	//
	// Parameters:
	//   - id: the pawn ID
	RemovePawn(id uint64)

	// Count returns the number of pawns.
	Count() int

	// AddViewer adds a viewer. A viewer with the same name is replaced.
	// A viewer without a spatial query should be built with WithSpatialQuery(s.World()).
	//
	// Parameters:
	//   - v: the viewer to add
	AddViewer(v camera.Viewer)

	// Viewer retrieves a viewer by name, or nil if not found.
	//
	// Parameters:
	//   - name: the viewer name
	//
	// Returns:
	//   - camera.Viewer: the viewer or nil
	Viewer(name string) camera.Viewer

	// RemoveViewer removes a viewer by name.
	//
	// Parameters:
	//   - name: the viewer name
	RemoveViewer(name string)

	// Viewers returns the viewers ordered by name.
	//
	// Returns:
	//   - []camera.Viewer: the viewers
	Viewers() []camera.Viewer

	// Tick evaluates every viewer in parallel on the scene's worker pool and waits for all of them.
	// Viewers whose target is disabled are skipped.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - map[string]camera.MinimalViewInfo: the evaluated views by viewer name
	Tick(deltaTime float64) map[string]camera.MinimalViewInfo

	// SweepsLastTick returns the number of world sweeps issued during the last Tick.
	//
	// Returns:
	//   - uint64: the sweep count
	SweepsLastTick() uint64

	// Close stops the scene's worker pool.
	Close()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	world   collision.World
	pawns   map[uint64]game_object.Pawn
	nextID  uint64
	viewers map[string]camera.Viewer
	pending []game_object.Pawn

	workers        int
	pool           worker.DynamicWorkerPool
	sweepsLastTick uint64
}

var _ Scene = &scene{}

// NewScene creates a new Scene with an empty collision world.
//
// Parameters:
//   - name: the scene's identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:      &sync.RWMutex{},
		name:    name,
		active:  true,
		pawns:   make(map[uint64]game_object.Pawn),
		nextID:  1,
		viewers: make(map[string]camera.Viewer),
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}
	if s.world == nil {
		s.world = collision.NewWorld()
	}
	for _, p := range s.pending {
		s.AddPawn(p)
	}
	s.pending = nil

	// Initialize the pool after options so WithWorkers can override the default.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) World() collision.World {
	return s.world
}

func (s *scene) AddPawn(p game_object.Pawn) uint64 {
	if p == nil {
		panic("scene: AddPawn called with nil pawn")
	}

	s.mu.Lock()
	if p.ID() == 0 {
		for s.pawns[s.nextID] != nil {
			s.nextID++
		}
		p.SetID(s.nextID)
		s.nextID++
	}
	id := p.ID()
	s.pawns[id] = p
	s.mu.Unlock()

	s.world.Remove(id)
	s.world.AddCapsule(p, PawnChannels)
	return id
}

func (s *scene) Pawn(id uint64) game_object.Pawn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pawns[id]
}

func (s *scene) RemovePawn(id uint64) {
	s.mu.Lock()
	_, ok := s.pawns[id]
	delete(s.pawns, id)
	s.mu.Unlock()

	if ok {
		s.world.Remove(id)
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pawns)
}

func (s *scene) AddViewer(v camera.Viewer) {
	if v == nil {
		panic("scene: AddViewer called with nil viewer")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers[v.Name()] = v
}

func (s *scene) Viewer(name string) camera.Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewers[name]
}

func (s *scene) RemoveViewer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.viewers, name)
}

func (s *scene) Viewers() []camera.Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.viewers))
	for name := range s.viewers {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]camera.Viewer, 0, len(names))
	for _, name := range names {
		out = append(out, s.viewers[name])
	}
	return out
}

func (s *scene) Tick(deltaTime float64) map[string]camera.MinimalViewInfo {
	viewers := s.Viewers()
	results := make([]camera.MinimalViewInfo, len(viewers))
	evaluated := make([]bool, len(viewers))

	s.world.ResetSweepCount()

	// Each viewer owns its stack, so viewers evaluate independently. A WaitGroup provides the
	// per-tick barrier since pool.Wait() blocks until workers idle-exit.
	var wg sync.WaitGroup
	for i, v := range viewers {
		if p, ok := v.ViewTarget().(game_object.Pawn); ok && !p.Enabled() {
			continue
		}

		wg.Add(1)
		idx := i
		vCap := v
		s.pool.SubmitTask(worker.Task{
			ID:      idx,
			Payload: vCap.Name(),
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = vCap.GetCameraView(deltaTime)
				evaluated[idx] = true
				return nil, nil
			},
		})
	}
	wg.Wait()

	sweeps := s.world.SweepCount()
	s.mu.Lock()
	s.sweepsLastTick = sweeps
	s.mu.Unlock()

	out := make(map[string]camera.MinimalViewInfo, len(viewers))
	for i, v := range viewers {
		if evaluated[i] {
			out[v.Name()] = results[i]
		}
	}
	return out
}

func (s *scene) SweepsLastTick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sweepsLastTick
}

func (s *scene) Close() {
	s.pool.Stop()
}

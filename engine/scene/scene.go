package scene

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/engine/camera"
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
)

var (
	ErrNilCamera = errors.New("scene: camera is nil")
	ErrNilWorld  = errors.New("scene: physics world is nil")
)

// Behaviour is anything that advances once per frame, such as the movement and inspection controllers.
type Behaviour interface {
	Update(dt float32)
}

// Releaser is implemented by behaviours that hold on to scene objects between frames and must
// hand them back before the scene is cleared.
type Releaser interface {
	Release() bool
}

// Scene manages the GameObjects of one play space together with the physics world they collide
// in, the camera the player looks through and the behaviours that drive them each frame.
// Controllers receive their collaborators from the scene at construction instead of searching
// for them at runtime.
// Scenes can be hot-swapped via the Active flag to switch between different levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently ticked by the engine.
	Active() bool

	// SetActive sets whether this scene is ticked by the engine.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// World returns the physics world the scene's colliders live in.
	World() physics.World

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject and its colliders. Objects without an ID are assigned the next
	// free one. Colliders are added to the scene's physics world.
	//
	// Parameters:
	//   - obj: the object to register
	//   - colliders: colliders attached to obj
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject, colliders ...physics.Collider) uint64

	// Get returns the object registered under id, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// GetByName returns the first registered object with the given name, or nil.
	// Names are not unique; prefer IDs for anything but setup code.
	//
	// Parameters:
	//   - name: the object name
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	GetByName(name string) game_object.GameObject

	// Objects returns the registered objects ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: a snapshot of the registry
	Objects() []game_object.GameObject

	// Remove unregisters the object with the given ID and drops its colliders from the world.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// AddBehaviour appends a behaviour to the per-frame update list.
	//
	// Parameters:
	//   - b: the behaviour to run each tick
	AddBehaviour(b Behaviour)

	// Behaviours returns the behaviours in update order.
	//
	// Returns:
	//   - []Behaviour: a snapshot of the behaviour list
	Behaviours() []Behaviour

	// Tick runs every behaviour in registration order, then updates the camera.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Tick(dt float32)

	// Clear releases anything behaviours still hold, then drops every object, collider and behaviour.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry   map[uint64]game_object.GameObject
	nextID     uint64
	behaviours []Behaviour

	cam   camera.Camera
	world physics.World
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new inactive Scene around the given camera and physics world.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - world: the physics world to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: ErrNilCamera or ErrNilWorld when a dependency is missing
func NewScene(name string, cam camera.Camera, world physics.World, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}
	if world == nil {
		return nil, ErrNilWorld
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
		cam:      cam,
		world:    world,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
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

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) World() physics.World {
	return s.world
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject, colliders ...physics.Collider) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj, colliders...)
}

// add registers obj. Caller must hold s.mu write lock.
func (s *scene) add(obj game_object.GameObject, colliders ...physics.Collider) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj

	for _, c := range colliders {
		s.world.AddCollider(c)
	}
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) GetByName(name string) game_object.GameObject {
	for _, obj := range s.Objects() {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	slices.SortFunc(out, func(a, b game_object.GameObject) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}
	delete(s.registry, id)
	s.world.RemoveObject(obj)
}

func (s *scene) AddBehaviour(b Behaviour) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.behaviours = append(s.behaviours, b)
}

func (s *scene) Behaviours() []Behaviour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Behaviour, len(s.behaviours))
	copy(out, s.behaviours)
	return out
}

// Tick runs the behaviours outside the scene lock so they are free to add or look up objects.
func (s *scene) Tick(dt float32) {
	for _, b := range s.Behaviours() {
		b.Update(dt)
	}
	if cam := s.Camera(); cam != nil {
		cam.Update()
	}
}

func (s *scene) Clear() {
	for _, b := range s.Behaviours() {
		if r, ok := b.(Releaser); ok && r.Release() {
			logger.L().Debug("behaviour released its hold before clearing", "scene", s.Name())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, obj := range s.registry {
		s.world.RemoveObject(obj)
		delete(s.registry, id)
	}
	s.behaviours = nil
}

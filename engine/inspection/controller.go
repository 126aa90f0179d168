package inspection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
	"github.com/Carmen-Shannon/oxy-fps/engine/physics"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNilViewer             = errors.New("inspection: viewer object is nil")
	ErrNilCamera             = errors.New("inspection: camera object is nil")
	ErrNilAnchor             = errors.New("inspection: anchor object is nil")
	ErrNilWorld              = errors.New("inspection: physics world is nil")
	ErrNilInput              = errors.New("inspection: input gateway is nil")
	ErrNilRestrictor         = errors.New("inspection: movement restrictor is nil")
	ErrInvalidSelectDistance = errors.New("inspection: select distance must be positive")
	ErrInvalidZoomDistance   = errors.New("inspection: zoom distance must not be negative")
)

// axisEpsilon is the shortest derived rotation axis still considered usable.
const axisEpsilon float32 = 1e-6

// State is the inspection state.
type State int

const (
	StateIdle State = iota
	StateInspecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInspecting:
		return "inspecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MovementRestrictor freezes and unfreezes the player while an object is held.
type MovementRestrictor interface {
	RestrictMovement(restrict bool)
}

// Controller lets the player pick up an object in front of them, turn it over with the mouse,
// move it closer or further with the scroll wheel, and put it back exactly where it was.
type Controller interface {
	// Advance runs one frame of the state machine.
	//
	// While idle, a press of the select button casts a ray from the viewer; an inspectable hit is
	// moved onto the anchor and the player is frozen. While inspecting, mouse movement tumbles the
	// anchor, scrolling moves it along the camera's forward axis, and a press of the release button
	// puts the object back and unfreezes the player.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//
	// Returns:
	//   - bool: true if the state changed during this frame
	Advance(dt float32) bool

	// Update runs Advance and discards the result.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Update(dt float32)

	// State returns the current state.
	//
	// Returns:
	//   - State: StateIdle or StateInspecting
	State() State

	// Inspecting reports whether an object is held.
	//
	// Returns:
	//   - bool: true while inspecting
	Inspecting() bool

	// Held returns the object being inspected.
	//
	// Returns:
	//   - game_object.GameObject: the held object, nil while idle
	Held() game_object.GameObject

	// Release puts the held object back and returns to idle as if the release button was pressed.
	// Call it before tearing down a scene that may still hold an object.
	//
	// Returns:
	//   - bool: true if an object was released
	Release() bool

	// Configure applies tuning options to a running controller.
	//
	// Parameters:
	//   - options: functional options to apply
	//
	// Returns:
	//   - error: a sentinel error if the resulting distances are invalid
	Configure(options ...ControllerBuilderOption) error
}

type controllerImpl struct {
	mu *sync.Mutex

	viewer     game_object.GameObject
	camera     game_object.GameObject
	anchor     game_object.GameObject
	world      physics.World
	input      input.Gateway
	restrictor MovementRestrictor

	settings

	state         State
	held          game_object.GameObject
	heldPosition  mgl32.Vec3
	heldRotation  mgl32.Quat
	anchorInitial mgl32.Vec3
}

type settings struct {
	rotateSpeed    float32
	zoomSpeed      float32
	zoomDistance   float32
	selectDistance float32
	inspectMask    common.LayerMask
	selectButton   int
	releaseButton  int
}

var _ Controller = &controllerImpl{}

// NewController creates an inspection controller.
//
// Parameters:
//   - viewer: the object whose position and forward axis aim the selection ray, usually the camera
//   - camera: the camera the rotation and zoom axes are derived from
//   - anchor: the object held items are attached to
//   - world: the physics world used for the selection ray
//   - in: the input gateway to read
//   - restrictor: frozen while an object is held, usually the movement controller
//   - options: functional options to tune the controller
//
// Returns:
//   - Controller: the new controller
//   - error: a sentinel error if a dependency is nil or a setting is invalid
func NewController(viewer, camera, anchor game_object.GameObject, world physics.World, in input.Gateway, restrictor MovementRestrictor, options ...ControllerBuilderOption) (Controller, error) {
	switch {
	case viewer == nil:
		return nil, ErrNilViewer
	case camera == nil:
		return nil, ErrNilCamera
	case anchor == nil:
		return nil, ErrNilAnchor
	case world == nil:
		return nil, ErrNilWorld
	case in == nil:
		return nil, ErrNilInput
	case restrictor == nil:
		return nil, ErrNilRestrictor
	}

	c := &controllerImpl{
		mu:         &sync.Mutex{},
		viewer:     viewer,
		camera:     camera,
		anchor:     anchor,
		world:      world,
		input:      in,
		restrictor: restrictor,
		settings: settings{
			rotateSpeed:    100,
			zoomSpeed:      0.1,
			zoomDistance:   10,
			selectDistance: 3,
			inspectMask:    common.LayerMaskOf(common.LayerInspectable),
			selectButton:   common.MouseButtonLeft,
			releaseButton:  common.MouseButtonRight,
		},
		state: StateIdle,
	}
	for _, option := range options {
		option(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *controllerImpl) validate() error {
	if c.selectDistance <= 0 {
		return fmt.Errorf("%w: %.3f", ErrInvalidSelectDistance, c.selectDistance)
	}
	if c.zoomDistance < 0 {
		return fmt.Errorf("%w: %.3f", ErrInvalidZoomDistance, c.zoomDistance)
	}
	return nil
}

func (c *controllerImpl) Advance(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.state
	if c.state == StateIdle {
		if !c.selectObject() {
			return false
		}
	}
	c.inspect(dt)
	return c.state != before
}

func (c *controllerImpl) Update(dt float32) {
	c.Advance(dt)
}

func (c *controllerImpl) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controllerImpl) Inspecting() bool {
	return c.State() == StateInspecting
}

func (c *controllerImpl) Held() game_object.GameObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

func (c *controllerImpl) Release() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInspecting {
		return false
	}
	c.endInspection()
	return true
}

func (c *controllerImpl) Configure(options ...ControllerBuilderOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.settings
	for _, option := range options {
		option(c)
	}
	if err := c.validate(); err != nil {
		c.settings = prev
		return err
	}
	logger.L().Info("inspection configured",
		"rotate_speed", c.rotateSpeed,
		"zoom_speed", c.zoomSpeed,
		"zoom_distance", c.zoomDistance,
		"select_distance", c.selectDistance,
	)
	return nil
}

// selectObject picks up whatever inspectable object the viewer is looking at when the select
// button goes down. Returns true if an object was picked up.
func (c *controllerImpl) selectObject() bool {
	if !c.input.InteractInput(c.selectButton) {
		return false
	}
	hit, ok := c.world.Raycast(c.viewer.Position(), c.viewer.Forward(), c.selectDistance, c.inspectMask)
	if !ok || hit.Object == nil {
		return false
	}

	obj := hit.Object
	pos, rot := obj.Position(), obj.Rotation()
	if err := obj.SetParent(c.anchor, false); err != nil {
		logger.L().Warn("inspection target cannot be attached to the anchor", "object", obj.Name(), "error", err)
		return false
	}
	obj.SetLocalPosition(mgl32.Vec3{})
	obj.SetLocalRotation(mgl32.QuatIdent())

	c.held = obj
	c.heldPosition = pos
	c.heldRotation = rot
	c.restrictor.RestrictMovement(true)
	c.anchorInitial = c.anchor.Position()
	c.state = StateInspecting

	logger.L().Debug("inspection started", "object", obj.Name(), "id", obj.ID(), "distance", hit.Distance)
	return true
}

// inspect runs one frame of the held-object loop.
func (c *controllerImpl) inspect(dt float32) {
	c.rotateAnchor(dt)
	c.zoomAnchor()
	if c.input.InteractInput(c.releaseButton) {
		c.endInspection()
	}
}

func (c *controllerImpl) endInspection() {
	obj := c.held

	c.restrictor.RestrictMovement(false)
	c.anchor.SetPosition(c.anchorInitial)
	c.anchor.SetLocalRotation(mgl32.QuatIdent())

	// detaching without keeping the world pose leaves the saved pose to be written back verbatim
	_ = obj.SetParent(nil, false)
	obj.SetPosition(c.heldPosition)
	obj.SetRotation(c.heldRotation)

	c.held = nil
	c.state = StateIdle
	logger.L().Debug("inspection ended", "object", obj.Name(), "id", obj.ID())
}

// rotateAnchor tumbles the anchor about axes rebuilt every frame from the camera's up vector and
// the line of sight to the anchor. Mouse right spins the object to the left about the vertical
// axis and mouse up tips its top away from the viewer.
func (c *controllerImpl) rotateAnchor(dt float32) {
	mouse := c.input.MouseInput().Mul(c.rotateSpeed * dt)
	if mouse.Len() == 0 {
		return
	}

	sight := c.anchor.Position().Sub(c.camera.Position())
	right := sight.Cross(c.camera.Up())
	up := right.Cross(sight)

	if up.Len() > axisEpsilon {
		spin := mgl32.QuatRotate(mgl32.DegToRad(mouse.X()), up.Normalize())
		c.anchor.SetRotation(spin.Mul(c.anchor.Rotation()).Normalize())
	}
	if right.Len() > axisEpsilon {
		tip := mgl32.QuatRotate(mgl32.DegToRad(-mouse.Y()), right.Normalize())
		c.anchor.SetRotation(tip.Mul(c.anchor.Rotation()).Normalize())
	}
}

// zoomAnchor steps the anchor along the camera's forward axis and keeps it within zoomDistance
// of where inspection started.
func (c *controllerImpl) zoomAnchor() {
	scroll := c.input.ScrollInput() * c.zoomSpeed
	if scroll == 0 {
		return
	}

	step := c.camera.Forward().Mul(c.zoomSpeed)
	if scroll < 0 {
		step = step.Mul(-1)
	}
	offset := c.anchor.Position().Add(step).Sub(c.anchorInitial)
	c.anchor.SetPosition(common.ClampMagnitude(offset, c.zoomDistance).Add(c.anchorInitial))
}

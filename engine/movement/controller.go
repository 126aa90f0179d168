package movement

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
	ErrNilBody             = errors.New("movement: character body is nil")
	ErrNilCamera           = errors.New("movement: camera object is nil")
	ErrNilInput            = errors.New("movement: input gateway is nil")
	ErrNilWorld            = errors.New("movement: physics world is nil")
	ErrInvalidCrouchHeight = errors.New("movement: crouch height must be positive and below the standing height")
)

const (
	// landingVelocity is the vertical velocity held while grounded. It stays negative so the
	// body keeps pressing into the floor and the ground ray keeps hitting it.
	landingVelocity float32 = -2

	crouchThreshold  float32 = 0.1
	ceilingCastRange float32 = 0.2
	ceilingClearance float32 = 0.1
	groundCastSlack  float32 = 0.1
	maxPitch         float32 = 90
)

// Controller drives a first-person character: walking, mouse look, crouching and gravity.
type Controller interface {
	// Update advances the controller by one frame. Crouch, move, rotate and gravity run in that
	// order unless movement is restricted, in which case nothing happens.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Update(dt float32)

	// RestrictMovement toggles whether Update does anything.
	//
	// Parameters:
	//   - restrict: true to freeze the character
	RestrictMovement(restrict bool)

	// Restricted reports whether movement is currently frozen.
	//
	// Returns:
	//   - bool: true while restricted
	Restricted() bool

	// Pitch returns the camera pitch in degrees, in [-90, 90]. Negative values look up.
	//
	// Returns:
	//   - float32: the pitch angle
	Pitch() float32

	// Height returns the current body height.
	//
	// Returns:
	//   - float32: height in world units
	Height() float32

	// StandingHeight returns the body height captured at construction.
	//
	// Returns:
	//   - float32: height in world units
	StandingHeight() float32

	// VerticalVelocity returns the current vertical velocity.
	//
	// Returns:
	//   - float32: velocity in units per second, negative when falling
	VerticalVelocity() float32

	// Landed reports whether the landing reset has fired for the current ground contact.
	//
	// Returns:
	//   - bool: true after landing until the body is airborne again
	Landed() bool

	// Crouching reports whether the body is noticeably below its standing height.
	//
	// Returns:
	//   - bool: true while crouched
	Crouching() bool

	// Configure applies tuning options to a running controller.
	//
	// Parameters:
	//   - options: functional options to apply
	//
	// Returns:
	//   - error: ErrInvalidCrouchHeight if the resulting crouch height is out of range
	Configure(options ...ControllerBuilderOption) error
}

type controllerImpl struct {
	mu *sync.Mutex

	body   physics.CharacterBody
	camera game_object.GameObject
	input  input.Gateway
	world  physics.World

	settings

	standingHeight float32
	currentHeight  float32
	pitch          float32
	velocity       float32
	cameraInitial  mgl32.Vec3
	landed         bool
	restricted     bool
}

// settings holds the tunables that Configure may replace at runtime.
type settings struct {
	moveSpeed    float32
	lookSpeed    float32
	gravity      float32
	crouchSpeed  float32
	crouchHeight float32
	groundMask   common.LayerMask
}

var _ Controller = &controllerImpl{}

// NewController creates a movement controller for body, looking through camera. The camera is
// expected to be a child of the body's object. The standing height is read from the body and the
// camera's current local position becomes its standing eye position.
//
// Parameters:
//   - body: the collision-aware character body to move
//   - camera: the camera object, child of the body
//   - in: the input gateway to read
//   - world: the physics world used for ground and ceiling casts
//   - options: functional options to tune the controller
//
// Returns:
//   - Controller: the new controller
//   - error: a sentinel error if a dependency is nil or the crouch height is invalid
func NewController(body physics.CharacterBody, camera game_object.GameObject, in input.Gateway, world physics.World, options ...ControllerBuilderOption) (Controller, error) {
	switch {
	case body == nil:
		return nil, ErrNilBody
	case camera == nil:
		return nil, ErrNilCamera
	case in == nil:
		return nil, ErrNilInput
	case world == nil:
		return nil, ErrNilWorld
	}

	c := &controllerImpl{
		mu:     &sync.Mutex{},
		body:   body,
		camera: camera,
		input:  in,
		world:  world,
		settings: settings{
			moveSpeed:    5,
			lookSpeed:    3,
			gravity:      -9.81,
			crouchSpeed:  5,
			crouchHeight: 0.5,
			groundMask:   common.AllLayers,
		},
		velocity: landingVelocity,
	}
	for _, option := range options {
		option(c)
	}

	c.standingHeight = body.Height()
	c.currentHeight = c.standingHeight
	c.cameraInitial = camera.LocalPosition()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *controllerImpl) validate() error {
	if c.crouchHeight <= 0 || c.crouchHeight >= c.standingHeight {
		return fmt.Errorf("%w: crouch %.3f, standing %.3f", ErrInvalidCrouchHeight, c.crouchHeight, c.standingHeight)
	}
	return nil
}

func (c *controllerImpl) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restricted {
		return
	}
	c.crouch(dt)
	c.move(dt)
	c.rotate()
	c.applyGravity(dt)
}

func (c *controllerImpl) RestrictMovement(restrict bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restricted != restrict {
		logger.L().Debug("movement restriction changed", "restricted", restrict)
	}
	c.restricted = restrict
}

func (c *controllerImpl) Restricted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restricted
}

func (c *controllerImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *controllerImpl) Height() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentHeight
}

func (c *controllerImpl) StandingHeight() float32 {
	return c.standingHeight
}

func (c *controllerImpl) VerticalVelocity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

func (c *controllerImpl) Landed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.landed
}

func (c *controllerImpl) Crouching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.crouching()
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
	if c.currentHeight < c.crouchHeight {
		c.applyHeight(c.crouchHeight)
	}
	logger.L().Info("movement configured",
		"move_speed", c.moveSpeed,
		"look_speed", c.lookSpeed,
		"gravity", c.gravity,
		"crouch_speed", c.crouchSpeed,
		"crouch_height", c.crouchHeight,
	)
	return nil
}

func (c *controllerImpl) crouching() bool {
	return c.standingHeight-c.currentHeight > crouchThreshold
}

func (c *controllerImpl) rotate() {
	look := c.input.MouseInput().Mul(c.lookSpeed)
	if look.Len() == 0 {
		return
	}

	c.pitch = mgl32.Clamp(c.pitch-look.Y(), -maxPitch, maxPitch)
	// pitch is set absolutely so repeated frames cannot drift
	c.camera.SetLocalRotation(mgl32.QuatRotate(mgl32.DegToRad(-c.pitch), common.WorldRight))
	// a positive yaw about +Y turns left, mouse right turns right
	c.body.Object().Rotate(common.WorldUp, -look.X())
}

func (c *controllerImpl) move(dt float32) {
	in := c.input.MoveInput()
	if in.Len() == 0 {
		return
	}
	in = in.Normalize()

	obj := c.body.Object()
	dir := obj.Right().Mul(in.X()).Add(obj.Forward().Mul(in.Y()))
	if dir.Len() == 0 {
		return
	}
	c.body.Move(dir.Normalize().Mul(c.moveSpeed * dt))
}

func (c *controllerImpl) crouch(dt float32) {
	held := c.input.CrouchHeld()
	target := c.standingHeight
	if held {
		target = c.crouchHeight
	}

	if c.crouching() && !held {
		if above, hit := c.ceilingDistance(); hit {
			target = max(c.currentHeight+above-ceilingClearance, c.crouchHeight)
		}
	}

	if common.Approximately(target, c.currentHeight) {
		return
	}
	c.applyHeight(common.Lerp(c.currentHeight, target, dt*c.crouchSpeed))
}

// applyHeight resizes the body and keeps the camera's drop in step with the height the body
// actually took, which can be less than asked for under a low ceiling.
func (c *controllerImpl) applyHeight(height float32) {
	c.body.SetHeight(height)
	c.currentHeight = c.body.Height()
	offset := mgl32.Vec3{0, (c.standingHeight - c.currentHeight) / 2, 0}
	c.camera.SetLocalPosition(c.cameraInitial.Sub(offset))
}

func (c *controllerImpl) applyGravity(dt float32) {
	grounded := c.grounded()
	if grounded && c.velocity < 0 && !c.landed {
		c.velocity = landingVelocity
		c.landed = true
	}
	if !grounded {
		c.velocity += c.gravity * dt
		c.landed = false
	}
	c.body.Move(mgl32.Vec3{0, c.velocity * dt, 0})
}

// ceilingDistance casts a short ray up from the top of the body and returns the distance to
// whatever it hits. A ceiling flush with the top of the body is a hit at distance 0.
func (c *controllerImpl) ceilingDistance() (float32, bool) {
	origin := c.body.Object().Position().Add(mgl32.Vec3{0, c.currentHeight / 2, 0})
	hit, ok := c.world.Raycast(origin, common.WorldUp, ceilingCastRange, c.groundMask)
	if !ok {
		return 0, false
	}
	return max(hit.Point.Y()-origin.Y(), 0), true
}

func (c *controllerImpl) grounded() bool {
	_, ok := c.world.Raycast(c.body.Object().Position(), common.WorldUp.Mul(-1), c.currentHeight+groundCastSlack, c.groundMask)
	return ok
}

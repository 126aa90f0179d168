package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Gateway is the read-through input surface the controllers consume. Every accessor is a
// pure function of the Device's current frame; the gateway itself holds only bindings and scales.
type Gateway interface {
	// MoveInput returns the normalized movement vector. X is strafe (+ right), Y is forward (+ forward).
	// Returns the zero vector when no movement key is held.
	//
	// Returns:
	//   - mgl32.Vec2: movement input with length 0 or 1
	MoveInput() mgl32.Vec2

	// MouseInput returns this frame's mouse movement scaled by the mouse axis scale.
	// X is + right, Y is + up.
	//
	// Returns:
	//   - mgl32.Vec2: mouse look delta
	MouseInput() mgl32.Vec2

	// CrouchInput reports whether the crouch key went down this frame.
	//
	// Returns:
	//   - bool: true on the press frame
	CrouchInput() bool

	// CrouchHeld reports whether the crouch key is held.
	//
	// Returns:
	//   - bool: true while held
	CrouchHeld() bool

	// InteractInput reports whether the given mouse button went down this frame.
	//
	// Parameters:
	//   - button: button index (0 left, 1 right, 2 middle)
	//
	// Returns:
	//   - bool: true on the press frame
	InteractInput(button int) bool

	// ScrollInput returns this frame's scroll movement scaled by the scroll axis scale.
	//
	// Returns:
	//   - float32: scroll delta
	ScrollInput() float32

	// Configure applies new bindings or scales on top of the current ones.
	// Keys already held keep their state in the Device; only the mapping changes.
	//
	// Parameters:
	//   - options: the same options NewGateway accepts
	Configure(options ...GatewayBuilderOption)
}

type gatewayImpl struct {
	mu     *sync.Mutex
	device Device

	forwardKey int
	backKey    int
	leftKey    int
	rightKey   int
	crouchKey  int

	mouseAxisScale  float32
	scrollAxisScale float32
	invertY         bool
}

var _ Gateway = &gatewayImpl{}

// NewGateway creates a Gateway reading from device. Defaults: WASD movement, left control
// crouch, mouse axis scale 0.1 and scroll axis scale 0.1 (one wheel notch reads as 0.1).
//
// Parameters:
//   - device: the raw input source
//   - options: functional options to configure bindings and scales
//
// Returns:
//   - Gateway: the new gateway
func NewGateway(device Device, options ...GatewayBuilderOption) Gateway {
	g := &gatewayImpl{
		mu:              &sync.Mutex{},
		device:          device,
		forwardKey:      common.KeyW,
		backKey:         common.KeyS,
		leftKey:         common.KeyA,
		rightKey:        common.KeyD,
		crouchKey:       common.KeyLeftControl,
		mouseAxisScale:  0.1,
		scrollAxisScale: 0.1,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gatewayImpl) Configure(options ...GatewayBuilderOption) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, option := range options {
		option(g)
	}
}

func (g *gatewayImpl) MoveInput() mgl32.Vec2 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var v mgl32.Vec2
	if g.device.KeyDown(g.rightKey) {
		v[0]++
	}
	if g.device.KeyDown(g.leftKey) {
		v[0]--
	}
	if g.device.KeyDown(g.forwardKey) {
		v[1]++
	}
	if g.device.KeyDown(g.backKey) {
		v[1]--
	}
	if v.Len() == 0 {
		return mgl32.Vec2{}
	}
	return v.Normalize()
}

func (g *gatewayImpl) MouseInput() mgl32.Vec2 {
	g.mu.Lock()
	defer g.mu.Unlock()
	dx, dy := g.device.CursorDelta()
	// screen Y grows downwards, look input treats up as positive
	y := -dy
	if g.invertY {
		y = dy
	}
	return mgl32.Vec2{dx * g.mouseAxisScale, y * g.mouseAxisScale}
}

func (g *gatewayImpl) CrouchInput() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.device.KeyPressed(g.crouchKey)
}

func (g *gatewayImpl) CrouchHeld() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.device.KeyDown(g.crouchKey)
}

func (g *gatewayImpl) InteractInput(button int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.device.MouseButtonPressed(button)
}

func (g *gatewayImpl) ScrollInput() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.device.ScrollDelta() * g.scrollAxisScale
}

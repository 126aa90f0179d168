package input

import "sync"

// Device exposes the raw state of keyboard and mouse for the current frame.
// Edge queries (Pressed) are true only on the frame the key or button went down.
type Device interface {
	// KeyDown reports whether the key is currently held.
	//
	// Parameters:
	//   - key: GLFW key code
	//
	// Returns:
	//   - bool: true while held
	KeyDown(key int) bool

	// KeyPressed reports whether the key went down this frame.
	//
	// Parameters:
	//   - key: GLFW key code
	//
	// Returns:
	//   - bool: true on the press frame only
	KeyPressed(key int) bool

	// MouseButtonDown reports whether the mouse button is currently held.
	//
	// Parameters:
	//   - button: button index (0 left, 1 right, 2 middle)
	//
	// Returns:
	//   - bool: true while held
	MouseButtonDown(button int) bool

	// MouseButtonPressed reports whether the mouse button went down this frame.
	//
	// Parameters:
	//   - button: button index (0 left, 1 right, 2 middle)
	//
	// Returns:
	//   - bool: true on the press frame only
	MouseButtonPressed(button int) bool

	// CursorDelta returns the cursor movement accumulated this frame in screen pixels (+Y down).
	//
	// Returns:
	//   - dx, dy: cursor movement
	CursorDelta() (dx, dy float32)

	// ScrollDelta returns the vertical scroll accumulated this frame (+ away from the user).
	//
	// Returns:
	//   - float32: scroll amount in wheel notches
	ScrollDelta() float32
}

// Tracker is a Device fed by window events. Events arriving between two EndFrame calls
// make up one frame. A key counts as pressed for the frame when any down event in it
// found the key up, so taps and quick re-presses are never lost. EndFrame clears the
// press edges and the cursor and scroll accumulators.
type Tracker struct {
	mu *sync.Mutex

	keys    map[int]bool
	buttons map[int]bool

	// keys and buttons that went from up to down at least once this frame
	pressedKeys map[int]bool
	pressedBtns map[int]bool

	hasCursor      bool
	lastX, lastY   float32
	deltaX, deltaY float32
	scroll         float32
}

var _ Device = &Tracker{}

// NewTracker creates an empty Tracker.
//
// Returns:
//   - *Tracker: the new tracker
func NewTracker() *Tracker {
	return &Tracker{
		mu:          &sync.Mutex{},
		keys:        make(map[int]bool),
		buttons:     make(map[int]bool),
		pressedKeys: make(map[int]bool),
		pressedBtns: make(map[int]bool),
	}
}

// KeyEvent records a key going down or up.
//
// Parameters:
//   - key: GLFW key code
//   - down: true for press, false for release
func (t *Tracker) KeyEvent(key int, down bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if down && !t.keys[key] {
		t.pressedKeys[key] = true
	}
	t.keys[key] = down
}

// MouseButtonEvent records a mouse button going down or up.
//
// Parameters:
//   - button: button index
//   - down: true for press, false for release
func (t *Tracker) MouseButtonEvent(button int, down bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if down && !t.buttons[button] {
		t.pressedBtns[button] = true
	}
	t.buttons[button] = down
}

// CursorEvent records an absolute cursor position. The first event only establishes
// the reference point and produces no delta.
//
// Parameters:
//   - x, y: cursor position in screen pixels
func (t *Tracker) CursorEvent(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hasCursor {
		t.deltaX += x - t.lastX
		t.deltaY += y - t.lastY
	}
	t.lastX, t.lastY = x, y
	t.hasCursor = true
}

// ScrollEvent records vertical scroll wheel movement.
//
// Parameters:
//   - dy: scroll offset in notches
func (t *Tracker) ScrollEvent(dy float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scroll += dy
}

// EndFrame closes the current frame.
func (t *Tracker) EndFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.pressedKeys)
	clear(t.pressedBtns)
	t.deltaX, t.deltaY = 0, 0
	t.scroll = 0
}

func (t *Tracker) KeyDown(key int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keys[key]
}

func (t *Tracker) KeyPressed(key int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressedKeys[key]
}

func (t *Tracker) MouseButtonDown(button int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buttons[button]
}

func (t *Tracker) MouseButtonPressed(button int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pressedBtns[button]
}

func (t *Tracker) CursorDelta() (dx, dy float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deltaX, t.deltaY
}

func (t *Tracker) ScrollDelta() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scroll
}

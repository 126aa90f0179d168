package engine

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
	"github.com/Carmen-Shannon/oxy-fps/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/window"
)

var ErrNoWindow = errors.New("engine: no window to run")

// defaultMaxDeltaTime caps a single frame's delta so a stall (window drag, breakpoint) does not
// teleport bodies through the floor on the next frame.
const defaultMaxDeltaTime = time.Second / 3

// engine implements the Engine interface.
// Drives every scene, the tick callback and the input tracker from the window's message loop.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	input  *input.Tracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	maxDeltaTime   time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Scene
}

// Engine is the main entry point for the engine.
// It owns the frame loop, the window and the input tracker fed by it.
// All scene, controller and callback work happens on the goroutine calling Run or Step.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// Input returns the tracker fed by the window's input callbacks.
	//
	// Returns:
	//   - *input.Tracker: the tracker, or nil when none was configured
	Input() *input.Tracker

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// Run steps the scenes at most this often.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each frame after the scenes have ticked.
	// Use this for game logic that spans scenes, such as applying reloaded configuration.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are ticked in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining tick order (lower ticks first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs one frame on the calling goroutine: active scenes in ascending key order,
	// the tick callback, the input tracker's end of frame, then the profiler.
	//
	// Parameters:
	//   - dt: frame time in seconds
	Step(dt float32)

	// Run drives Step from the window's message loop at the configured tick rate.
	// Blocks until the window closes or Quit is called. Must run on the main goroutine.
	//
	// Returns:
	//   - error: ErrNoWindow for a headless engine
	Run() error

	// Quit stops the frame loop and closes the window on the next iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has been called or Run has returned.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// When both a window and an input tracker are configured, the window's input callbacks feed the
// tracker and resizes update every scene camera's aspect ratio.
//
// Parameters:
//   - options: functional options for engine configuration (window, input, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		maxDeltaTime:     defaultMaxDeltaTime,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		if e.input != nil {
			e.window.SetKeyCallback(e.input.KeyEvent)
			e.window.SetMouseButtonCallback(e.input.MouseButtonEvent)
			e.window.SetCursorPosCallback(e.input.CursorEvent)
			e.window.SetScrollCallback(e.input.ScrollEvent)
		}
	}

	return e
}

// resize keeps every scene camera's aspect ratio in step with the framebuffer.
// A minimized window reports a zero size and is ignored.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.scenes {
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() *input.Tracker {
	return e.input
}

func (e *engine) Step(dt float32) {
	for _, k := range slices.Sorted(maps.Keys(e.scenes)) {
		if s := e.scenes[k]; s.Active() {
			s.Tick(dt)
		}
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.input != nil {
		e.input.EndFrame()
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(dt)
	}
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	defer e.signalQuit()

	lastTick := time.Now()
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			if err := e.window.Close(); err != nil {
				logger.L().Warn("closing window", "error", err)
			}
			return
		default:
		}

		now := time.Now()
		elapsed := now.Sub(lastTick)
		if elapsed < e.engineTickRate {
			return
		}
		lastTick = now
		e.Step(float32(min(elapsed, e.maxDeltaTime).Seconds()))
	})

	logger.L().Info("engine running", "tick_rate", e.engineTickRate, "scenes", len(e.scenes))
	e.window.ProcessMessages()
	logger.L().Info("engine stopped")
	return nil
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// A running loop picks the new rate up on its next iteration.
func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickInterval(fps)
}

// tickInterval converts a rate in frames per second to a frame duration; rates <= 0 mean 60.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// SetTickCallback registers the function called each frame.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	return maps.Clone(e.scenes)
}

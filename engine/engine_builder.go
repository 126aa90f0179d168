package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fps/engine/scene"
	"github.com/Carmen-Shannon/oxy-fps/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, for example to change its interval or logger.
//
// Parameters:
//   - p: the profiler to tick each frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithMaxDeltaTime caps the delta time handed to a single Step.
// Values <= 0 keep the default of one third of a second.
//
// Parameters:
//   - d: the largest frame time passed to the scenes
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDeltaTime(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d > 0 {
			e.maxDeltaTime = d
		}
	}
}

// WithWindow sets the window whose message loop drives Run.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithInput sets the input tracker the engine feeds from the window and closes at the end of each frame.
//
// Parameters:
//   - t: the tracker shared with the scene's input gateways
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(t *input.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.input = t
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are ticked in ascending key order.
//
// Parameters:
//   - key: the z-index determining tick order (lower ticks first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

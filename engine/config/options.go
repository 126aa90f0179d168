package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine"
	"github.com/Carmen-Shannon/oxy-fps/engine/input"
	"github.com/Carmen-Shannon/oxy-fps/engine/inspection"
	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
	"github.com/Carmen-Shannon/oxy-fps/engine/movement"
	"github.com/Carmen-Shannon/oxy-fps/engine/window"
)

var namedKeys = map[string]int{
	"space":         common.KeySpace,
	"escape":        common.KeyEsc,
	"up":            common.KeyUp,
	"down":          common.KeyDown,
	"left":          common.KeyLeft,
	"right":         common.KeyRight,
	"left_shift":    common.KeyLeftShift,
	"right_shift":   common.KeyRightShift,
	"left_control":  common.KeyLeftControl,
	"right_control": common.KeyRightControl,
}

var namedButtons = map[string]int{
	"left":   common.MouseButtonLeft,
	"right":  common.MouseButtonRight,
	"middle": common.MouseButtonMiddle,
}

// KeyCode resolves a key name to its GLFW key code.
// Single letters and digits map to their ASCII codes; longer names use snake case, such as left_control.
// Names are case-insensitive.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - int: the key code
//   - error: ErrUnknownKey when the name is not recognised
func KeyCode(name string) (int, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'a' && c <= 'z':
			return int(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return int(c), nil
		}
	}
	if code, ok := namedKeys[n]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MouseButton resolves left, right or middle to a button index.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - int: the button index
//   - error: ErrUnknownButton when the name is not recognised
func MouseButton(name string) (int, error) {
	if b, ok := namedButtons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// mustKey and mustButton are only used on validated configs.
func mustKey(name string) int {
	code, _ := KeyCode(name)
	return code
}

func mustButton(name string) int {
	b, _ := MouseButton(name)
	return b
}

func layerMask(layers []uint8) common.LayerMask {
	ls := make([]common.Layer, len(layers))
	for i, l := range layers {
		ls[i] = common.Layer(l)
	}
	return common.LayerMaskOf(ls...)
}

// LoggerConfig converts the logging section for logger.Init.
//
// Parameters:
//   - out: log destination (nil for stderr)
//
// Returns:
//   - logger.Config: the logger configuration
func (c *Config) LoggerConfig(out io.Writer) logger.Config {
	return logger.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: out,
	}
}

// EngineOptions converts the engine section into engine builder options.
//
// Returns:
//   - []engine.EngineBuilderOption: tick rate, delta cap and profiling options
func (c *Config) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithTickRate(c.Engine.TickRate),
		engine.WithMaxDeltaTime(common.Coalesce(c.Engine.MaxDeltaTime, time.Second/3)),
		engine.WithProfiling(c.Engine.Profiling),
	}
}

// WindowOptions converts the window section into window builder options.
//
// Returns:
//   - []window.WindowBuilderOption: title, size and cursor options
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(common.Coalesce(c.Window.Title, "oxy-fps")),
		window.WithWidth(c.Window.Width),
		window.WithHeight(c.Window.Height),
		window.WithCursorLocked(c.Window.CursorLocked),
	}
}

// GatewayOptions converts the input section into gateway builder options.
// Expects a validated config; unknown key names resolve to 0.
//
// Returns:
//   - []input.GatewayBuilderOption: bindings and axis scales
func (c *Config) GatewayOptions() []input.GatewayBuilderOption {
	in := c.Input
	return []input.GatewayBuilderOption{
		input.WithMoveKeys(mustKey(in.Forward), mustKey(in.Back), mustKey(in.Left), mustKey(in.Right)),
		input.WithCrouchKey(mustKey(in.Crouch)),
		input.WithMouseAxisScale(common.Coalesce(in.MouseScale, 0.1)),
		input.WithScrollAxisScale(common.Coalesce(in.ScrollScale, 0.1)),
		input.WithInvertY(in.InvertY),
	}
}

// MovementOptions converts the movement section into controller options, for construction or Configure.
//
// Returns:
//   - []movement.ControllerBuilderOption: speeds, gravity, crouch height and ground mask
func (c *Config) MovementOptions() []movement.ControllerBuilderOption {
	m := c.Movement
	mask := common.AllLayers
	if len(m.GroundLayers) > 0 {
		mask = layerMask(m.GroundLayers)
	}
	return []movement.ControllerBuilderOption{
		movement.WithMoveSpeed(m.MoveSpeed),
		movement.WithLookSpeed(m.LookSpeed),
		movement.WithGravity(m.Gravity),
		movement.WithCrouchSpeed(m.CrouchSpeed),
		movement.WithCrouchHeight(m.CrouchHeight),
		movement.WithGroundMask(mask),
	}
}

// InspectionOptions converts the inspection section into controller options, for construction or Configure.
//
// Returns:
//   - []inspection.ControllerBuilderOption: speeds, distances, mask and buttons
func (c *Config) InspectionOptions() []inspection.ControllerBuilderOption {
	s := c.Inspection
	mask := common.LayerMaskOf(common.LayerInspectable)
	if len(s.InspectLayers) > 0 {
		mask = layerMask(s.InspectLayers)
	}
	return []inspection.ControllerBuilderOption{
		inspection.WithRotateSpeed(s.RotateSpeed),
		inspection.WithZoomSpeed(s.ZoomSpeed),
		inspection.WithZoomDistance(s.ZoomDistance),
		inspection.WithSelectDistance(s.SelectDistance),
		inspection.WithInspectMask(mask),
		inspection.WithSelectButton(mustButton(s.SelectButton)),
		inspection.WithReleaseButton(mustButton(s.ReleaseButton)),
	}
}

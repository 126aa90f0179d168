package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("config: invalid value")
	ErrUnknownKey    = errors.New("config: unknown key name")
	ErrUnknownButton = errors.New("config: unknown mouse button name")
)

// Config is the game's tuning file. Every section has a default, so a file only needs the keys it changes.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Engine     EngineConfig     `yaml:"engine"`
	Window     WindowConfig     `yaml:"window"`
	Input      InputConfig      `yaml:"input"`
	Movement   MovementConfig   `yaml:"movement"`
	Inspection InspectionConfig `yaml:"inspection"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type EngineConfig struct {
	TickRate     float64       `yaml:"tick_rate"`
	MaxDeltaTime time.Duration `yaml:"max_delta_time"`
	Profiling    bool          `yaml:"profiling"`
}

type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	CursorLocked bool   `yaml:"cursor_locked"`
}

// InputConfig binds keys by name (see KeyCode) and scales the raw mouse and wheel axes.
type InputConfig struct {
	Forward     string  `yaml:"forward"`
	Back        string  `yaml:"back"`
	Left        string  `yaml:"left"`
	Right       string  `yaml:"right"`
	Crouch      string  `yaml:"crouch"`
	MouseScale  float32 `yaml:"mouse_scale"`
	ScrollScale float32 `yaml:"scroll_scale"`
	InvertY     bool    `yaml:"invert_y"`
}

type MovementConfig struct {
	MoveSpeed    float32 `yaml:"move_speed"`
	LookSpeed    float32 `yaml:"look_speed"`
	Gravity      float32 `yaml:"gravity"`
	CrouchSpeed  float32 `yaml:"crouch_speed"`
	CrouchHeight float32 `yaml:"crouch_height"`
	// GroundLayers restricts the ground and ceiling raycasts; empty means every layer.
	GroundLayers []uint8 `yaml:"ground_layers"`
}

type InspectionConfig struct {
	RotateSpeed    float32 `yaml:"rotate_speed"`
	ZoomSpeed      float32 `yaml:"zoom_speed"`
	ZoomDistance   float32 `yaml:"zoom_distance"`
	SelectDistance float32 `yaml:"select_distance"`
	// InspectLayers are the layers a selection ray can hit; empty keeps the inspectable layer.
	InspectLayers []uint8 `yaml:"inspect_layers"`
	SelectButton  string  `yaml:"select_button"`
	ReleaseButton string  `yaml:"release_button"`
}

// Default returns the configuration the game runs with when no file is given.
//
// Returns:
//   - *Config: a fresh default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			TickRate:     60,
			MaxDeltaTime: time.Second / 3,
		},
		Window: WindowConfig{
			Title:        "oxy-fps",
			Width:        1280,
			Height:       720,
			CursorLocked: true,
		},
		Input: InputConfig{
			Forward:     "w",
			Back:        "s",
			Left:        "a",
			Right:       "d",
			Crouch:      "left_control",
			MouseScale:  0.1,
			ScrollScale: 0.1,
		},
		Movement: MovementConfig{
			MoveSpeed:    5,
			LookSpeed:    3,
			Gravity:      -9.81,
			CrouchSpeed:  5,
			CrouchHeight: 0.5,
		},
		Inspection: InspectionConfig{
			RotateSpeed:    100,
			ZoomSpeed:      0.1,
			ZoomDistance:   10,
			SelectDistance: 3,
			SelectButton:   "left",
			ReleaseButton:  "right",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - *Config: the merged configuration
//   - error: read, parse or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Keys that do not belong to any section are rejected so typos do not pass silently.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: the merged configuration
//   - error: parse or validation error
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
//
// Returns:
//   - error: nil, or a joined error whose parts wrap ErrInvalidConfig, ErrUnknownKey or ErrUnknownButton
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...)))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		invalid("logging.level", "%q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		invalid("logging.format", "%q is not one of text, json", c.Logging.Format)
	}

	if c.Engine.TickRate <= 0 {
		invalid("engine.tick_rate", "must be positive, got %v", c.Engine.TickRate)
	}
	if c.Engine.MaxDeltaTime <= 0 {
		invalid("engine.max_delta_time", "must be positive, got %v", c.Engine.MaxDeltaTime)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window", "size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	for _, binding := range []struct{ field, name string }{
		{"input.forward", c.Input.Forward},
		{"input.back", c.Input.Back},
		{"input.left", c.Input.Left},
		{"input.right", c.Input.Right},
		{"input.crouch", c.Input.Crouch},
	} {
		if _, err := KeyCode(binding.name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", binding.field, err))
		}
	}

	if c.Movement.MoveSpeed < 0 {
		invalid("movement.move_speed", "must not be negative, got %v", c.Movement.MoveSpeed)
	}
	if c.Movement.CrouchSpeed < 0 {
		invalid("movement.crouch_speed", "must not be negative, got %v", c.Movement.CrouchSpeed)
	}
	if c.Movement.CrouchHeight <= 0 {
		invalid("movement.crouch_height", "must be positive, got %v", c.Movement.CrouchHeight)
	}
	if err := validLayers("movement.ground_layers", c.Movement.GroundLayers); err != nil {
		errs = append(errs, err)
	}

	if c.Inspection.SelectDistance <= 0 {
		invalid("inspection.select_distance", "must be positive, got %v", c.Inspection.SelectDistance)
	}
	if c.Inspection.ZoomDistance < 0 {
		invalid("inspection.zoom_distance", "must not be negative, got %v", c.Inspection.ZoomDistance)
	}
	if err := validLayers("inspection.inspect_layers", c.Inspection.InspectLayers); err != nil {
		errs = append(errs, err)
	}
	if _, err := MouseButton(c.Inspection.SelectButton); err != nil {
		errs = append(errs, fmt.Errorf("inspection.select_button: %w", err))
	}
	if _, err := MouseButton(c.Inspection.ReleaseButton); err != nil {
		errs = append(errs, fmt.Errorf("inspection.release_button: %w", err))
	}

	return errors.Join(errs...)
}

func validLayers(field string, layers []uint8) error {
	for _, l := range layers {
		if l > 31 {
			return fmt.Errorf("%w: %s layer %d is out of range 0-31", ErrInvalidConfig, field, l)
		}
	}
	return nil
}

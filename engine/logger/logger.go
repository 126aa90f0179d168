package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config selects the level, format and destination of the engine logger.
type Config struct {
	// Level is one of debug, info, warn or error. Unknown values fall back to info.
	Level string
	// Format is "text" (default) or "json".
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

// Init installs the engine logger and makes it the slog default. Only the first call has an effect.
//
// Parameters:
//   - cfg: logger configuration
func Init(cfg Config) {
	once.Do(func() {
		lg = New(cfg)
		slog.SetDefault(lg)
	})
}

// New builds a logger from cfg without touching the package default.
//
// Parameters:
//   - cfg: logger configuration
//
// Returns:
//   - *slog.Logger: the configured logger
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// L returns the engine logger, initialising it with info level text output on first use.
//
// Returns:
//   - *slog.Logger: the engine logger
func L() *slog.Logger {
	Init(Config{Level: "info"})
	return lg
}

// ParseLevel maps a level name to a slog.Level.
//
// Parameters:
//   - level: debug, info, warn or error (case-insensitive)
//
// Returns:
//   - slog.Level: the matching level, info when unknown
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logsetup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"
)

// Output values accepted by Config.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Color values accepted by Config.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config describes one named console logger.
type Config struct {
	// Name is the logger name; it also keys the registry used by Enable.
	Name string `json:"name"`

	// Level is a zap level name: debug, info, warn, error, dpanic, panic, fatal.
	Level string `json:"level"`

	// Output is OutputStderr or OutputStdout. Ignored when Writer is set.
	Output string `json:"output,omitempty"`

	// Styles maps a level name to a terminal color (ANSI number or hex).
	Styles map[string]string `json:"styles,omitempty"`

	// Color is ColorAuto, ColorAlways or ColorNever. Auto asks the output itself
	// whether it is a terminal.
	Color string `json:"color,omitempty"`

	// Writer overrides Output.
	Writer io.Writer `json:"-"`
}

// DefaultConfig returns a debug level stderr logger with warnings in red.
func DefaultConfig() Config {
	return Config{
		Level:  "debug",
		Output: OutputStderr,
		Color:  ColorAuto,
		Styles: map[string]string{
			"debug": "8",
			"info":  "12",
			"warn":  "9",
			"error": "1",
		},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ConfigError{Field: "Name", Message: "must not be empty"}
	}
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return &ConfigError{Field: "Level", Message: err.Error()}
	}
	if c.Writer == nil {
		switch c.Output {
		case OutputStderr, OutputStdout, "":
		default:
			return &ConfigError{Field: "Output", Message: fmt.Sprintf("unknown output %q", c.Output)}
		}
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever, "":
	default:
		return &ConfigError{Field: "Color", Message: fmt.Sprintf("unknown color mode %q", c.Color)}
	}
	for name := range c.Styles {
		if _, err := zapcore.ParseLevel(name); err != nil {
			return &ConfigError{Field: "Styles", Message: err.Error()}
		}
	}
	return nil
}

func (c Config) level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.DebugLevel
	}
	return lvl
}

func (c Config) writer() io.Writer {
	switch {
	case c.Writer != nil:
		return c.Writer
	case c.Output == OutputStdout:
		return os.Stdout
	default:
		return os.Stderr
	}
}

// renderer styles for the configured output rather than for stdout.
func (c Config) renderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(c.writer())
	switch c.Color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// LoadConfig parses a JSON config that may contain comments and trailing commas.
// Fields missing from data keep their DefaultConfig value.
func LoadConfig(data []byte) (Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse logger config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode logger config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LevelFromEnv reads a level name from envVar, falling back when it is unset or invalid.
func LevelFromEnv(envVar string, fallback zapcore.Level) zapcore.Level {
	raw := strings.TrimSpace(os.Getenv(envVar))
	if raw == "" {
		return fallback
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return fallback
	}
	return lvl
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Package logsetup builds named, colorized console loggers.
//
// Enable is meant to be called once per name at startup. Calling it again for a
// name that already exists returns the same logger and only moves its level.
package logsetup

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type enabled struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

var loggers sync.Map // name -> *enabled

// Enable returns the console logger called name, set to level.
func Enable(name string, level zapcore.Level) *zap.Logger {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Level = level.String()
	return enable(cfg, level)
}

// EnableWithConfig is Enable with full control over output and styles.
// Output and styles of an already enabled name are left as they were.
func EnableWithConfig(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return enable(cfg, cfg.level()), nil
}

func enable(cfg Config, level zapcore.Level) *zap.Logger {
	if raw, ok := loggers.Load(cfg.Name); ok {
		existing := raw.(*enabled)
		existing.level.SetLevel(level)
		return existing.logger
	}

	atom := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig(cfg.renderer(), cfg.Styles)),
		zapcore.Lock(zapcore.AddSync(cfg.writer())),
		atom,
	)
	candidate := &enabled{
		logger: zap.New(core).Named(cfg.Name),
		level:  atom,
	}

	raw, loaded := loggers.LoadOrStore(cfg.Name, candidate)
	existing := raw.(*enabled)
	if loaded {
		existing.level.SetLevel(level)
	}
	return existing.logger
}

// Lookup returns the logger enabled under name, if any.
func Lookup(name string) (*zap.Logger, bool) {
	raw, ok := loggers.Load(name)
	if !ok {
		return nil, false
	}
	return raw.(*enabled).logger, true
}

// Sync flushes every enabled logger.
func Sync() error {
	var err error
	loggers.Range(func(_, raw any) bool {
		err = multierr.Append(err, raw.(*enabled).logger.Sync())
		return true
	})
	return err
}

// Reset forgets every enabled logger. Loggers already handed out keep working.
func Reset() {
	loggers.Clear()
}

func encoderConfig(r *lipgloss.Renderer, styles map[string]string) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = styledLevelEncoder(r, styles)
	return cfg
}

func styledLevelEncoder(r *lipgloss.Renderer, styles map[string]string) zapcore.LevelEncoder {
	rendered := make(map[zapcore.Level]string, len(styles))
	for name, color := range styles {
		lvl, err := zapcore.ParseLevel(name)
		if err != nil {
			continue
		}
		style := r.NewStyle().Foreground(lipgloss.Color(color))
		if lvl >= zapcore.WarnLevel {
			style = style.Bold(true)
		}
		rendered[lvl] = style.Render(lvl.CapitalString())
	}

	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		if s, ok := rendered[l]; ok {
			enc.AppendString(s)
			return
		}
		enc.AppendString(l.CapitalString())
	}
}

// pkg/logging/logging.go
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.SugaredLogger

// Init builds the process-wide logger at the given level ("debug", "info",
// "warn", "error"). An empty level means "info".
func Init(level string) error {
	if level == "" {
		level = "info"
	}

	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	global = logger.Sugar()
	return nil
}

// Logger returns the process logger. Before Init it returns a no-op logger
// so library code can log unconditionally.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}

// Sync flushes buffered log entries. Safe to call before Init.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}

// Package logger wraps zap behind a printf-style leveled interface.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
)

// Initialize configures the global logger at the given level. Unknown
// levels fall back to info. Safe to call more than once; the last call
// wins.
func Initialize(level string) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}
	mu.Lock()
	sugar = newLogger(lvl)
	mu.Unlock()
}

func newLogger(lvl zapcore.Level) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core).Sugar()
}

func logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if sugar == nil {
		sugar = newLogger(zapcore.InfoLevel)
	}
	return sugar
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) { logger().Debugf(format, args...) }

// Info logs a formatted message at info level.
func Info(format string, args ...any) { logger().Infof(format, args...) }

// Warn logs a formatted message at warn level.
func Warn(format string, args ...any) { logger().Warnf(format, args...) }

// Error logs a formatted message at error level.
func Error(format string, args ...any) { logger().Errorf(format, args...) }

// Fatal logs a formatted message and exits with a non-zero status.
func Fatal(format string, args ...any) {
	l := logger()
	l.Errorf(format, args...)
	_ = l.Sync()
	os.Exit(1)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger().Sync()
}

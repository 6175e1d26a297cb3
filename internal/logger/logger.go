package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	output = zap.NewNop()
)

// Init replaces the package logger. format "json" selects the production
// encoder, anything else the development console encoder. A non-empty path
// redirects output to that file instead of stderr.
func Init(level, format, path string) error {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Use(l)
	return nil
}

// Use installs an existing zap logger, e.g. zaptest.NewLogger in tests.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	output = l
}

// SetNop discards all output.
func SetNop() { Use(zap.NewNop()) }

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = output.Sync()
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func emit(level zapcore.Level, msg string, extra map[string]interface{}) {
	mu.RLock()
	l := output
	mu.RUnlock()
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(fields(extra)...)
	}
}

func fields(extra map[string]interface{}) []zap.Field {
	if len(extra) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(extra))
	for k, v := range extra {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Debug(msg string, extra map[string]interface{}) {
	emit(zapcore.DebugLevel, msg, extra)
}

func Info(msg string, extra map[string]interface{}) {
	emit(zapcore.InfoLevel, msg, extra)
}

func Warn(msg string, extra map[string]interface{}) {
	emit(zapcore.WarnLevel, msg, extra)
}

func Error(msg string, extra map[string]interface{}) {
	emit(zapcore.ErrorLevel, msg, extra)
}

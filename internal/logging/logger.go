// Package logging holds the process-wide zap logger. Lines are JSON with
// ts, level, caller and msg keys plus any typed fields.
package logging

import (
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = mustBuild(Config())
)

// Config returns the zap configuration for the process logger: JSON at
// info level on stderr.
func Config() zap.Config {
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func mustBuild(cfg zap.Config) *zap.Logger {
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l
}

// Setup rebuilds the process logger to write to paths (files, "stdout" or
// "stderr"). The previous logger is kept when the build fails.
func Setup(paths ...string) error {
	cfg := Config()
	if len(paths) > 0 {
		cfg.OutputPaths = paths
	}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	swap(l)
	return nil
}

// SetOutput redirects log lines to w.
func SetOutput(w io.Writer) {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zap.InfoLevel)
	swap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}

func swap(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	logger = l
}

// L returns the current logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered lines. Call it before the process exits.
func Sync() {
	_ = L().Sync()
}

// Info logs an informational message.
func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

// Warn logs a recoverable problem.
func Warn(msg string, err error, fields ...zap.Field) {
	L().Warn(msg, withError(err, fields)...)
}

// Error logs a failure.
func Error(msg string, err error, fields ...zap.Field) {
	L().Error(msg, withError(err, fields)...)
}

// Fatal logs the error and exits the process.
func Fatal(msg string, err error, fields ...zap.Field) {
	L().Fatal(msg, withError(err, fields)...)
}

func withError(err error, fields []zap.Field) []zap.Field {
	if err == nil {
		return fields
	}
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, zap.Error(err))
	return append(out, fields...)
}

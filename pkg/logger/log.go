package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Console encoding, debug level
// by default; LOG_LEVEL overrides it.
func NewLogger() *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = zap.NewAtomicLevelAt(parsed)
		}
	}

	cfg := zap.Config{
		Encoding:         "console",
		Level:            level,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. It defaults to a no-op logger so
// packages can log before Init runs (and in tests).
var Log = zap.NewNop()

// Init builds the global zap logger. Production config in release mode,
// human-readable console output otherwise.
func Init(mode string) {
	var (
		l   *zap.Logger
		err error
	)

	if mode == "release" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	Log = l
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

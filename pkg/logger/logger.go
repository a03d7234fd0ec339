package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

var (
	global *zap.Logger
	mu     sync.RWMutex
)

// SetupLogger builds the global zap logger for the given environment and
// returns it. Local builds a human-readable development logger, everything
// else gets the production JSON config.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case envLocal:
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger setup failed: %s", err)
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

// Logger returns the global logger. Safe for concurrent use.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if global == nil {
		return zap.NewNop()
	}

	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

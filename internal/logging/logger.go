// Package logging bootstraps the global zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a production zap logger at the given level and installs it as
// the process-wide global, so packages log through zap.S().
// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive); anything else
// falls back to INFO.
func Init(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Build cannot fail with this config, but never leave globals unset.
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger)
	return logger
}

// InitFromEnv initialises the global logger from LOG_LEVEL.
func InitFromEnv() *zap.Logger {
	return Init(os.Getenv("LOG_LEVEL"))
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "DEBUG", "debug":
		return zap.DebugLevel
	case "WARN", "warn":
		return zap.WarnLevel
	case "ERROR", "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

package utils

import (
	"log"

	"vacancy/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration from cfg and installs
// the result as zap's global logger.
func InitializeLogger(cfg *config.Config) *zap.Logger {
	var zcfg zap.Config

	if cfg != nil && cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.DebugLevel
	if cfg != nil && cfg.LogLevel != "" {
		if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	var err error
	Logger, err = zcfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(Logger)
	return Logger
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger(nil)
	}
	return Logger
}

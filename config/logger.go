package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. DEBUG=true switches to the development encoder.
func NewLogger() (*zap.Logger, error) {
	var cfg zap.Config
	if GetEnvBool("DEBUG", false) {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
	}
	return cfg.Build()
}

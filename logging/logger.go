package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

func InitLogger(production bool) error {
	var config zap.Config

	if production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = config.Build()
	if err != nil {
		return err
	}

	return nil
}

// L returns the global logger, falling back to a no-op logger so that
// packages can log before InitLogger has run (e.g. in tests).
func L() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

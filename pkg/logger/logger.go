package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Production gets JSON output; anything
// else gets the human-readable development encoder.
func New() *zap.Logger {
	if os.Getenv("APP_ENV") == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

package logger

import (
	"go.uber.org/zap"

	"authbase/internal/config"
)

// New builds the process logger. Development mode gets the human-readable
// console encoder, production gets JSON.
func New(env string) (*zap.Logger, error) {
	if env == config.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

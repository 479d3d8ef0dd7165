package logger

import (
	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
)

// New builds the application logger from the log config section
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}

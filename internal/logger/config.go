package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LoggerConfig holds the resolved settings used to assemble a logger
type LoggerConfig struct {
	Level      zerolog.Level
	Format     LogFormat
	Console    io.Writer
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// LogFormat represents available log formats
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

// String returns string representation of LogFormat
func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig logs info and above to stderr. Stdout is reserved for results.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		Console:    os.Stderr,
		MaxSizeMB:  100,
		MaxBackups: 3,
	}
}

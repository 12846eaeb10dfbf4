// Package logging builds the zap loggers used by the formwizard CLI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// New constructs a structured logger writing to stderr so prompts on stdout
// stay readable. Unknown or empty levels fall back to info.
func New(level string, format Format) (*zap.Logger, error) {
	// An invalid level leaves the default in place.
	atomic, _ := ParseLevel(level)

	encoding := string(format)
	switch format {
	case FormatJSON, FormatConsole:
	case "":
		encoding = string(FormatJSON)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "severity",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
	}

	cfg := zap.Config{
		Level:             atomic,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// ParseLevel converts a textual level into an AtomicLevel. The returned
// level is usable (info) even when err is non-nil.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	atomic := zap.NewAtomicLevel()
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return atomic, nil
	}
	if err := atomic.UnmarshalText([]byte(level)); err != nil {
		return atomic, fmt.Errorf("logging: %w", err)
	}
	return atomic, nil
}

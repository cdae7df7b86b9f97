// Package logging builds the zap logger used across smartsquash.
package logging

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// NewLogger returns a console logger writing to stdout at the given level.
// Lines carry only the level and message; colored selects ANSI level colors.
func NewLogger(level string, colored bool) (*zap.Logger, error) {
	return newLogger(level, colored, zapcore.Lock(os.Stdout))
}

func newLogger(level string, colored bool, out zapcore.WriteSyncer) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if colored {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, zap.NewAtomicLevelAt(zapLevel))
	return zap.New(core), nil
}

// ParseLevel maps a level name to a zap level. The empty string means
// DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		level = DefaultLevel
	}
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapLevel, errors.Wrapf(err, "invalid log level %q", level)
	}
	return zapLevel, nil
}

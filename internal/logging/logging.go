package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeFormat is the timestamp layout of audit log lines.
const TimeFormat = "2006-01-02 15:04:05"

// Config builds the audit log configuration: one console-encoded line per
// event (timestamp, level, message, fields) appended to path.
func Config(path string, verbose bool) zap.Config {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.TimeEncoderOfLayout(TimeFormat)
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder.ConsoleSeparator = ", "
	encoder.CallerKey = ""
	encoder.StacktraceKey = ""

	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          "console",
		EncoderConfig:     encoder,
		OutputPaths:       []string{path},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
}

// New opens the audit log at path and tags every entry with a fresh run id.
func New(path string, verbose bool) (*zap.Logger, string, error) {
	logger, err := Config(path, verbose).Build()
	if err != nil {
		return nil, "", fmt.Errorf("logging: open %s: %w", path, err)
	}
	runID := uuid.NewString()
	return logger.With(zap.String("run_id", runID)), runID, nil
}

// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logger outputs.
type Options struct {
	// Debug writes human-readable debug logs to Console.
	Debug   bool
	Console io.Writer

	// File, when set, receives JSON logs at Level through a rotating writer.
	File  string
	Level string
}

// New returns a logger for opts and a function that flushes it.
// With no outputs selected the logger discards everything.
func New(opts Options) (*zap.Logger, func(), error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if opts.Debug && opts.Console != nil {
		consoleConfig := encoderConfig
		consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConfig),
			zapcore.AddSync(opts.Console),
			zap.DebugLevel,
		))
	}

	if opts.File != "" {
		level := zap.InfoLevel
		if opts.Level != "" {
			if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
				return nil, nil, fmt.Errorf("invalid log level: %s", opts.Level)
			}
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    10, // MB
				MaxBackups: 3,
				MaxAge:     30, // days
			}),
			level,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, func() { _ = logger.Sync() }, nil
}

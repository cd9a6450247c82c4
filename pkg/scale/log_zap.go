//go:build !tinygo

package scale

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDefaultLogger instantiates a new default logger
func NewDefaultLogger(debug bool) *zap.SugaredLogger {

	level := "info"
	if debug {
		level = "debug"
	}

	logger, err := NewLogger(level)
	if err != nil {
		fmt.Printf("failed to instantiate logger: %s\n", err)
		os.Exit(1)
	}

	return logger
}

// NewLogger instantiates a new logger for the given level name (debug, info, warn, error)
func NewLogger(levelName string) (*zap.SugaredLogger, error) {

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelName)))); err != nil {
		return nil, fmt.Errorf("invalid log level `%s`: %w", levelName, err)
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.DisableStacktrace = true
	logCfg.DisableCaller = level > zap.DebugLevel
	logCfg.Level.SetLevel(level)
	zapLogger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}

	return zapLogger.Sugar(), nil
}

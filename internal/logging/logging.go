package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sugared zap logger shared by the CLI commands
type Logger struct {
	*zap.SugaredLogger
}

// console logger at debug level when verbose, info otherwise
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.Sampling = nil

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	base, err := cfg.Build()
	if err != nil {
		return Nop()
	}
	return &Logger{SugaredLogger: base.Sugar()}
}

// discards everything, for tests and library callers
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

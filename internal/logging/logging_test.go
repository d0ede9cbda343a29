package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{verbose: true, wantDebug: true},
		{verbose: false, wantDebug: false},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.verbose)
		got := logger.Desugar().Core().Enabled(zapcore.DebugLevel)
		if got != tt.wantDebug {
			t.Errorf(
				"NewLogger(%v): debug enabled = %v, want %v",
				tt.verbose,
				got,
				tt.wantDebug,
			)
		}
		if !logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("NewLogger(%v): info should be enabled", tt.verbose)
		}
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	if logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Nop logger should not enable any level")
	}
	logger.Infow("ignored", "key", "value")
}

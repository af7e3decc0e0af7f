package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
		wantInfo  bool
	}{
		{"off", false, false},
		{"", false, false},
		{"dev", true, true},
		{"DEV", true, true},
		{"prod", false, true},
		{"production", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			log, err := New(tt.mode)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.mode, err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := log.Core().Enabled(zapcore.InfoLevel); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewUnknownMode(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

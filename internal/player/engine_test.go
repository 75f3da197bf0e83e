package player

import (
	"fmt"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
		{State(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", int(tt.state)), func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state      State
		wantActive bool
		wantPause  bool
		wantResume bool
	}{
		{Stopped, false, false, false},
		{Playing, true, true, false},
		{Paused, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.wantActive {
				t.Errorf("IsActive() = %v, want %v", got, tt.wantActive)
			}
			if got := tt.state.CanPause(); got != tt.wantPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.wantPause)
			}
			if got := tt.state.CanResume(); got != tt.wantResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.wantResume)
			}
		})
	}
}

package player

import "time"

// Interface is the audio engine seen by the playback layer.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(position time.Duration)

	// OnFinished sets the callback for a stream ending on its own. It runs
	// on an engine goroutine.
	OnFinished(fn func())
}

var _ Interface = (*Player)(nil)

// State is the engine state. Pause only applies to Playing and Resume
// only to Paused; Stop applies to both.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{
	Stopped: "Stopped",
	Playing: "Playing",
	Paused:  "Paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsActive reports whether a stream is loaded.
func (s State) IsActive() bool { return s != Stopped }

func (s State) CanPause() bool { return s == Playing }

func (s State) CanResume() bool { return s == Paused }

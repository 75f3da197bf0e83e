// internal/playback/state.go
package playback

import (
	"fmt"
	"strings"
)

// State is the playback phase of a track.
type State int

const (
	StateStopped State = iota
	StateStoppedAtStart
	StateStoppedAtEnd
	StateStoppedAtError
	StateStopping
	StateStarting
	StatePlaying
	StatePausing
	StatePaused
	StatePausedAtEnd
	StateResuming
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStoppedAtStart:
		return "StoppedAtStart"
	case StateStoppedAtEnd:
		return "StoppedAtEnd"
	case StateStoppedAtError:
		return "StoppedAtError"
	case StateStopping:
		return "Stopping"
	case StateStarting:
		return "Starting"
	case StatePlaying:
		return "Playing"
	case StatePausing:
		return "Pausing"
	case StatePaused:
		return "Paused"
	case StatePausedAtEnd:
		return "PausedAtEnd"
	case StateResuming:
		return "Resuming"
	default:
		return "Unknown"
	}
}

// IsStopped reports a terminal stopped phase.
func IsStopped(s State) bool {
	switch s {
	case StateStopped, StateStoppedAtStart, StateStoppedAtEnd, StateStoppedAtError:
		return true
	}
	return false
}

// IsStoppedOrStopping reports a stopped phase or one about to stop.
func IsStoppedOrStopping(s State) bool {
	return IsStopped(s) || s == StateStopping
}

// IsPaused reports a paused phase.
func IsPaused(s State) bool {
	return s == StatePaused || s == StatePausedAtEnd
}

// IsPausedOrPausing reports a paused phase or one about to pause.
func IsPausedOrPausing(s State) bool {
	return IsPaused(s) || s == StatePausing
}

// AudioType is the queue a track belongs to.
type AudioType int

const (
	TypeSong AudioType = iota
	TypeVoice
)

// String returns the type name.
func (t AudioType) String() string {
	switch t {
	case TypeSong:
		return "song"
	case TypeVoice:
		return "voice"
	default:
		return "unknown"
	}
}

// ParseAudioType parses "song" or "voice", case-insensitively.
func ParseAudioType(s string) (AudioType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "song", "":
		return TypeSong, nil
	case "voice":
		return TypeVoice, nil
	}
	return TypeSong, fmt.Errorf("unknown audio type %q", s)
}

// audioTypes lists every type that owns a queue.
var audioTypes = []AudioType{TypeSong, TypeVoice}

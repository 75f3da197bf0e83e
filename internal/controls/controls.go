// Package controls exposes the desktop "now playing" surface (lock screen,
// media keys, shell widgets) behind a small imperative interface.
package controls

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/rx"
)

// PlaybackStatus is the status shown by the platform widget.
type PlaybackStatus int

const (
	StatusStopped PlaybackStatus = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Command is a user request originating from the platform widget.
type Command int

const (
	CommandPlayPause Command = iota
	CommandPlay
	CommandPause
	CommandNext
	CommandPrevious
	CommandStop
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandPlayPause:
		return "PlayPause"
	case CommandPlay:
		return "Play"
	case CommandPause:
		return "Pause"
	case CommandNext:
		return "Next"
	case CommandPrevious:
		return "Previous"
	case CommandStop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Host identifies the surface the widget is attached to.
type Host struct {
	Identity     string // human readable player name
	DesktopEntry string // bus name suffix and .desktop basename

	// Post runs fn on the host's event loop. Platform callbacks arrive on
	// foreign goroutines and are marshalled through it.
	Post func(fn func())
	// Quit, when set, lets the desktop close the application. It runs
	// through Post.
	Quit func()
}

func (h Host) post(fn func()) {
	if h.Post == nil {
		fn()
		return
	}
	h.Post(fn)
}

// Controls is the platform widget contract.
type Controls interface {
	Init(host Host) bool
	SeekingSupported() bool

	SetPlaybackStatus(status PlaybackStatus)
	SetPosition(position time.Duration)
	SetDuration(duration time.Duration)

	SetEnabled(enabled bool)
	SetIsNextEnabled(enabled bool)
	SetIsPreviousEnabled(enabled bool)
	SetIsPlayPauseEnabled(enabled bool)
	SetIsStopEnabled(enabled bool)
	UpdateDisplay()

	SetArtist(artist string)
	SetTitle(title string)
	SetThumbnail(img image.Image)
	ClearThumbnail()
	ClearMetadata()

	CommandRequests() *rx.Event[Command]
	SeekRequests() *rx.Event[float64]
}

// Options configures the platform implementation.
type Options struct {
	Seeking bool
	Logger  *logrus.Entry
}

func (o Options) logger() *logrus.Entry {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.WithField("component", "controls")
}

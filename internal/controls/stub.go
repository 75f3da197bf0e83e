//go:build !linux

package controls

import (
	"image"
	"time"

	"github.com/llehouerou/nowplaying/internal/rx"
)

var _ Controls = (*System)(nil)

// Supported reports whether the platform has a media controls surface.
func Supported() bool {
	return false
}

// System is a no-op widget on non-Linux platforms. Init always fails.
type System struct {
	commands rx.Event[Command]
	seeks    rx.Event[float64]
}

// New returns a widget that never initializes.
func New(_ Options) *System {
	return &System{}
}

func (s *System) Init(_ Host) bool { return false }

func (s *System) Close() error { return nil }

func (s *System) SeekingSupported() bool { return false }

func (s *System) SetPlaybackStatus(_ PlaybackStatus) {}

func (s *System) SetPosition(_ time.Duration) {}

func (s *System) SetDuration(_ time.Duration) {}

func (s *System) SetEnabled(_ bool) {}

func (s *System) SetIsNextEnabled(_ bool) {}

func (s *System) SetIsPreviousEnabled(_ bool) {}

func (s *System) SetIsPlayPauseEnabled(_ bool) {}

func (s *System) SetIsStopEnabled(_ bool) {}

func (s *System) UpdateDisplay() {}

func (s *System) SetArtist(_ string) {}

func (s *System) SetTitle(_ string) {}

func (s *System) SetThumbnail(_ image.Image) {}

func (s *System) ClearThumbnail() {}

func (s *System) ClearMetadata() {}

func (s *System) CommandRequests() *rx.Event[Command] { return &s.commands }

func (s *System) SeekRequests() *rx.Event[float64] { return &s.seeks }

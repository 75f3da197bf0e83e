package playback

import (
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/nowplaying/internal/playlist"
)

// Item is a queued document.
type Item = playlist.Item

// TrackID identifies what a TrackState is about.
type TrackID struct {
	Type       AudioType
	DocumentID uuid.UUID
	ContextID  int64
}

// TrackState is emitted on every playback update of a track.
type TrackState struct {
	ID       TrackID
	State    State
	Position time.Duration
	Length   time.Duration
}

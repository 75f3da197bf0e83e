package playback

import "github.com/llehouerou/nowplaying/internal/rx"

// Player is the playback contract consumed by observers such as the
// system media controls bridge. Every method and event runs on the main
// loop.
type Player interface {
	// Updated fires on every state or position change of any type.
	Updated() *rx.Event[TrackState]
	// StartsPlay fires when playback starts for t.
	StartsPlay(t AudioType) *rx.Event[struct{}]
	// Stops fires when playback stops for t.
	Stops(t AudioType) *rx.Event[struct{}]
	// TrackChanged fires with the type whose current track changed.
	TrackChanged() *rx.Event[AudioType]

	NextAvailable(t AudioType) bool
	PreviousAvailable(t AudioType) bool
	// Current returns the current item of t, invalid when none.
	Current(t AudioType) Item

	Play(t AudioType)
	Pause(t AudioType)
	PlayPause(t AudioType)
	Next(t AudioType)
	Previous(t AudioType)
	Stop(t AudioType)
	// FinishSeeking moves playback of t to progress in [0,1].
	FinishSeeking(t AudioType, progress float64)
}

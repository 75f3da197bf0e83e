package mediacontrols

import (
	"fmt"
	"image"
	"time"

	"github.com/llehouerou/nowplaying/internal/controls"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/rx"
)

// fakeControls records every widget call in order.
type fakeControls struct {
	initOK  bool
	seeking bool

	calls    []string
	thumbs   []image.Image
	commands rx.Event[controls.Command]
	seeks    rx.Event[float64]
}

func (f *fakeControls) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeControls) Init(controls.Host) bool {
	f.record("Init")
	return f.initOK
}

func (f *fakeControls) SeekingSupported() bool {
	f.record("SeekingSupported")
	return f.seeking
}

func (f *fakeControls) SetPlaybackStatus(s controls.PlaybackStatus) {
	f.record("SetPlaybackStatus(%s)", s)
}

func (f *fakeControls) SetPosition(d time.Duration) { f.record("SetPosition(%s)", d) }
func (f *fakeControls) SetDuration(d time.Duration) { f.record("SetDuration(%s)", d) }
func (f *fakeControls) SetEnabled(v bool) { f.record("SetEnabled(%t)", v) }
func (f *fakeControls) SetIsNextEnabled(v bool) { f.record("SetIsNextEnabled(%t)", v) }
func (f *fakeControls) SetIsPreviousEnabled(v bool) { f.record("SetIsPreviousEnabled(%t)", v) }
func (f *fakeControls) SetIsPlayPauseEnabled(v bool) {
	f.record("SetIsPlayPauseEnabled(%t)", v)
}
func (f *fakeControls) SetIsStopEnabled(v bool) { f.record("SetIsStopEnabled(%t)", v) }
func (f *fakeControls) UpdateDisplay() { f.record("UpdateDisplay") }
func (f *fakeControls) SetArtist(a string) { f.record("SetArtist(%s)", a) }
func (f *fakeControls) SetTitle(t string) { f.record("SetTitle(%s)", t) }

func (f *fakeControls) SetThumbnail(img image.Image) {
	f.thumbs = append(f.thumbs, img)
	f.record("SetThumbnail")
}

func (f *fakeControls) ClearThumbnail() { f.record("ClearThumbnail") }
func (f *fakeControls) ClearMetadata() { f.record("ClearMetadata") }

func (f *fakeControls) CommandRequests() *rx.Event[controls.Command] {
	f.record("CommandRequests")
	return &f.commands
}

func (f *fakeControls) SeekRequests() *rx.Event[float64] {
	f.record("SeekRequests")
	return &f.seeks
}

// reset forgets the calls made so far.
func (f *fakeControls) reset() { f.calls = nil }

// count returns how many recorded calls equal call.
func (f *fakeControls) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakePlayer exposes the player events and records player calls.
type fakePlayer struct {
	updated      rx.Event[playback.TrackState]
	starts       map[playback.AudioType]*rx.Event[struct{}]
	stops        map[playback.AudioType]*rx.Event[struct{}]
	trackChanged rx.Event[playback.AudioType]

	current  map[playback.AudioType]playback.Item
	next     bool
	previous bool

	calls []string
}

func newFakePlayer() *fakePlayer {
	p := &fakePlayer{
		starts:  make(map[playback.AudioType]*rx.Event[struct{}]),
		stops:   make(map[playback.AudioType]*rx.Event[struct{}]),
		current: make(map[playback.AudioType]playback.Item),
	}
	for _, t := range []playback.AudioType{playback.TypeSong, playback.TypeVoice} {
		p.starts[t] = &rx.Event[struct{}]{}
		p.stops[t] = &rx.Event[struct{}]{}
	}
	return p
}

func (p *fakePlayer) Updated() *rx.Event[playback.TrackState] { return &p.updated }
func (p *fakePlayer) StartsPlay(t playback.AudioType) *rx.Event[struct{}] { return p.starts[t] }
func (p *fakePlayer) Stops(t playback.AudioType) *rx.Event[struct{}] { return p.stops[t] }
func (p *fakePlayer) TrackChanged() *rx.Event[playback.AudioType] { return &p.trackChanged }

func (p *fakePlayer) NextAvailable(playback.AudioType) bool { return p.next }
func (p *fakePlayer) PreviousAvailable(playback.AudioType) bool { return p.previous }
func (p *fakePlayer) Current(t playback.AudioType) playback.Item {
	return p.current[t]
}

func (p *fakePlayer) Play(t playback.AudioType) { p.record("Play", t) }
func (p *fakePlayer) Pause(t playback.AudioType) { p.record("Pause", t) }
func (p *fakePlayer) PlayPause(t playback.AudioType) { p.record("PlayPause", t) }
func (p *fakePlayer) Next(t playback.AudioType) { p.record("Next", t) }
func (p *fakePlayer) Previous(t playback.AudioType) { p.record("Previous", t) }
func (p *fakePlayer) Stop(t playback.AudioType) { p.record("Stop", t) }

func (p *fakePlayer) FinishSeeking(t playback.AudioType, progress float64) {
	p.calls = append(p.calls, fmt.Sprintf("FinishSeeking(%s,%.2f)", t, progress))
}

func (p *fakePlayer) record(name string, t playback.AudioType) {
	p.calls = append(p.calls, fmt.Sprintf("%s(%s)", name, t))
}

func (p *fakePlayer) update(t playback.AudioType, state playback.State, pos, length time.Duration) {
	p.updated.Emit(playback.TrackState{
		ID:       playback.TrackID{Type: t},
		State:    state,
		Position: pos,
		Length:   length,
	})
}

// fakeApp holds the lock state.
type fakeApp struct {
	locked        *rx.Value[bool]
	activeSession bool
}

func newFakeApp(locked bool) *fakeApp {
	return &fakeApp{locked: rx.NewValue(locked), activeSession: true}
}

func (a *fakeApp) PasscodeLockChanges() *rx.Event[bool] { return a.locked.Changes() }
func (a *fakeApp) PasscodeLockValue() *rx.Value[bool] { return a.locked }
func (a *fakeApp) MaybeActiveSession() bool { return a.activeSession }

// fakeCovers serves one image for every path.
type fakeCovers struct{ img image.Image }

func (c fakeCovers) Cover(string) (image.Image, error) { return c.img, nil }

// taskQueue holds thumbnail downloads until the test runs them.
type taskQueue struct{ tasks []func() }

func (q *taskQueue) add(task func()) { q.tasks = append(q.tasks, task) }

func (q *taskQueue) runAll() {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
}

// Package mediacontrols mirrors the player on the system media controls
// and routes commands from those controls back into the player.
package mediacontrols

import (
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/controls"
	"github.com/llehouerou/nowplaying/internal/document"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/rx"
)

// App is the application state the manager reacts to.
type App interface {
	// PasscodeLockChanges fires when the lock state flips.
	PasscodeLockChanges() *rx.Event[bool]
	// PasscodeLockValue holds the current lock state.
	PasscodeLockValue() *rx.Value[bool]
	// MaybeActiveSession reports whether some session is open.
	MaybeActiveSession() bool
}

// Manager keeps the system media controls in sync with one audio type.
// All of its handlers run on the main loop.
type Manager struct {
	controls controls.Controls
	player   playback.Player
	app      App
	kind     playback.AudioType
	log      *logrus.Entry

	active  bool
	seeking bool

	status   rx.Distinct[controls.PlaybackStatus]
	position rx.Distinct[int64]
	length   rx.Distinct[int64]

	// views keep thumbnail requests alive until playback stops.
	views []*document.MediaView

	lifetime         rx.Lifetime
	lifetimeDownload rx.Lifetime
}

// Option configures a Manager.
type Option func(*Manager)

// WithAudioType selects the mirrored audio type. Songs by default.
func WithAudioType(t playback.AudioType) Option {
	return func(m *Manager) { m.kind = t }
}

// WithLogger sets the manager logger.
func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) { m.log = log }
}

// Supported reports whether the platform has system media controls.
func Supported() bool {
	return controls.Supported()
}

// New initializes c on host and wires it to player and app. When the
// controls fail to init the manager stays inert.
func New(
	c controls.Controls,
	host controls.Host,
	player playback.Player,
	app App,
	opts ...Option,
) *Manager {
	m := &Manager{
		controls: c,
		player:   player,
		app:      app,
		kind:     playback.TypeSong,
		log:      logrus.WithField("component", "mediacontrols"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if !c.Init(host) {
		m.log.Warn("system media controls failed to init")
		return m
	}
	m.active = true
	m.seeking = c.SeekingSupported()

	m.lifetime.Add(player.Updated().Subscribe(m.handleUpdate))

	m.lifetime.Add(player.Stops(m.kind).Subscribe(func(struct{}) { m.handleAudio(false) }))
	m.lifetime.Add(player.StartsPlay(m.kind).Subscribe(func(struct{}) { m.handleAudio(true) }))

	m.lifetime.Add(player.TrackChanged().Subscribe(func(t playback.AudioType) {
		if t == m.kind {
			m.refreshMetadata(t)
		}
	}))
	m.lifetime.Add(app.PasscodeLockChanges().Subscribe(m.handleLockChange))

	m.lifetime.Add(c.CommandRequests().Subscribe(m.handleCommand))
	if m.seeking {
		m.lifetime.Add(c.SeekRequests().Subscribe(func(progress float64) {
			m.player.FinishSeeking(m.kind, progress)
		}))
	}

	m.lifetime.Add(app.PasscodeLockValue().Watch(func(locked bool) {
		if locked && m.app.MaybeActiveSession() {
			m.controls.SetEnabled(false)
		}
	}))

	return m
}

// Active reports whether the controls initialized.
func (m *Manager) Active() bool { return m.active }

// Close releases every subscription. Pending thumbnail requests go first.
func (m *Manager) Close() {
	m.lifetimeDownload.Destroy()
	m.lifetime.Destroy()
	m.views = nil
}

func statusFor(s playback.State) controls.PlaybackStatus {
	switch {
	case playback.IsStoppedOrStopping(s):
		return controls.StatusStopped
	case playback.IsPausedOrPausing(s):
		return controls.StatusPaused
	default:
		return controls.StatusPlaying
	}
}

func (m *Manager) handleUpdate(st playback.TrackState) {
	if st.ID.Type != m.kind {
		return
	}
	if status := statusFor(st.State); m.status.Changed(status) {
		m.controls.SetPlaybackStatus(status)
	}
	if !m.seeking {
		return
	}
	// Deduplicated in whole milliseconds.
	if m.position.Changed(st.Position.Milliseconds()) {
		m.controls.SetPosition(st.Position)
	}
	if m.length.Changed(st.Length.Milliseconds()) {
		m.controls.SetDuration(st.Length)
	}
}

// handleAudio runs when playback of the managed type starts or stops.
func (m *Manager) handleAudio(playing bool) {
	m.controls.SetEnabled(playing)
	if playing {
		m.controls.SetIsNextEnabled(m.player.NextAvailable(m.kind))
		m.controls.SetIsPreviousEnabled(m.player.PreviousAvailable(m.kind))
		m.controls.SetIsPlayPauseEnabled(true)
		m.controls.SetIsStopEnabled(true)
		m.controls.SetPlaybackStatus(controls.StatusPlaying)
		m.controls.UpdateDisplay()
	} else {
		m.views = nil
		m.controls.ClearMetadata()
	}
	m.lifetimeDownload.Destroy()
}

func (m *Manager) handleLockChange(locked bool) {
	if locked || !m.player.Current(m.kind).Valid() {
		return
	}
	m.controls.SetEnabled(true)
	m.controls.UpdateDisplay()
	m.refreshMetadata(m.kind)
}

// refreshMetadata pushes the title, performer and cover of the current
// track of t.
func (m *Manager) refreshMetadata(t playback.AudioType) {
	m.lifetimeDownload.Destroy()

	current := m.player.Current(t)
	if !current.Valid() {
		return
	}
	doc := current.Document

	title, performer := doc.SongName().ComposedName()
	m.controls.SetArtist(performer)
	m.controls.SetTitle(title)

	if !doc.IsSongWithCover() {
		m.controls.ClearThumbnail()
		return
	}

	view := doc.CreateMediaView()
	view.ThumbnailWanted(current.ContextID)
	m.views = append(m.views, view)
	if img := view.Thumbnail(); img != nil {
		m.controls.SetThumbnail(img)
		return
	}

	m.log.WithField("document", doc.ID()).Debug("waiting for thumbnail")
	m.lifetimeDownload.Add(doc.Session().DownloaderTaskFinished().Subscribe(func(struct{}) {
		if img := view.Thumbnail(); img != nil {
			m.controls.SetThumbnail(img)
			m.lifetimeDownload.Destroy()
		}
	}))
	m.controls.ClearThumbnail()
}

func (m *Manager) handleCommand(cmd controls.Command) {
	switch cmd {
	case controls.CommandPlayPause:
		m.player.PlayPause(m.kind)
	case controls.CommandPlay:
		m.player.Play(m.kind)
	case controls.CommandPause:
		m.player.Pause(m.kind)
	case controls.CommandNext:
		m.player.Next(m.kind)
	case controls.CommandPrevious:
		m.player.Previous(m.kind)
	case controls.CommandStop:
		m.player.Stop(m.kind)
	default:
		m.log.WithField("command", cmd).Debug("ignoring unknown command")
	}
}

//go:build linux

package controls

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/rx"
)

const (
	busNamePrefix     = "org.mpris.MediaPlayer2."
	trackIDPrefix     = "/org/mpris/MediaPlayer2/Track/"
	noTrackObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"

	// Position updates that move further than this from the last
	// reported position are announced as a Seeked signal.
	seekJumpThreshold = 2 * time.Second
)

var (
	_ Controls                                = (*System)(nil)
	_ types.OrgMprisMediaPlayer2Adapter       = (*rootAdapter)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter = (*playerAdapter)(nil)
)

// Supported reports whether the platform has a media controls surface.
func Supported() bool {
	return true
}

// widgetState is what MPRIS clients see. Guarded by System.mu.
type widgetState struct {
	enabled  bool
	status   PlaybackStatus
	position time.Duration
	duration time.Duration

	canNext      bool
	canPrevious  bool
	canPlayPause bool
	canStop      bool

	title   string
	artist  string
	artPath string
	track   uint64 // bumped on every metadata change
}

// System publishes the widget over MPRIS on the D-Bus session bus.
type System struct {
	opts Options
	log  *logrus.Entry

	mu    sync.Mutex
	state widgetState
	host  Host

	server  *server.Server
	signals types.OrgMprisMediaPlayer2PlayerEventHandler
	art     *artCache

	commands rx.Event[Command]
	seeks    rx.Event[float64]
}

// New creates an uninitialized MPRIS widget.
func New(opts Options) *System {
	return &System{
		opts: opts,
		log:  opts.logger(),
	}
}

// Init connects to the session bus and starts serving MPRIS.
// It returns false when no session bus is available or another process
// owns the bus name.
func (s *System) Init(host Host) bool {
	conn, err := dbus.SessionBus()
	if err != nil {
		s.log.WithError(err).Warn("D-Bus session bus unavailable")
		return false
	}
	name := busNamePrefix + host.DesktopEntry
	owned, err := nameOwned(conn, name)
	if err != nil {
		s.log.WithError(err).Warn("D-Bus name lookup failed")
		return false
	}
	if owned {
		s.log.WithField("name", name).Warn("MPRIS name already taken")
		return false
	}

	art, err := newArtCache(host.DesktopEntry)
	if err != nil {
		s.log.WithError(err).Warn("album art cache unavailable")
	}

	s.mu.Lock()
	s.host = host
	s.art = art
	s.mu.Unlock()

	s.server = server.NewServer(host.DesktopEntry, &rootAdapter{s: s}, &playerAdapter{s: s})
	s.signals = events.NewEventHandler(s.server).Player

	go func() {
		if err := s.server.Listen(); err != nil {
			s.log.WithError(err).Error("MPRIS server stopped")
		}
	}()

	return true
}

// Close stops serving and removes cached art.
func (s *System) Close() error {
	s.mu.Lock()
	art := s.art
	s.art = nil
	s.mu.Unlock()

	if art != nil {
		art.clear()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Stop()
}

// SeekingSupported reports whether seek requests are forwarded.
func (s *System) SeekingSupported() bool {
	return s.opts.Seeking
}

func (s *System) SetPlaybackStatus(status PlaybackStatus) {
	s.update(func(st *widgetState) { st.status = status })
	s.emitPlayPause()
}

func (s *System) SetPosition(position time.Duration) {
	var jumped bool
	s.update(func(st *widgetState) {
		diff := position - st.position
		jumped = diff > seekJumpThreshold || diff < -seekJumpThreshold
		st.position = position
	})
	if jumped && s.signals != nil {
		_ = s.signals.OnSeek(types.Microseconds(position.Microseconds()))
	}
}

func (s *System) SetDuration(duration time.Duration) {
	s.update(func(st *widgetState) { st.duration = duration })
	s.emitTitle()
}

// SetEnabled announces every player property when the value changes,
// since a disabled widget reports no track and a stopped status.
func (s *System) SetEnabled(enabled bool) {
	var changed bool
	s.update(func(st *widgetState) {
		changed = st.enabled != enabled
		st.enabled = enabled
	})
	if changed && s.signals != nil {
		_ = s.signals.OnAll()
	}
}

func (s *System) SetIsNextEnabled(enabled bool) {
	s.update(func(st *widgetState) { st.canNext = enabled })
}

func (s *System) SetIsPreviousEnabled(enabled bool) {
	s.update(func(st *widgetState) { st.canPrevious = enabled })
}

func (s *System) SetIsPlayPauseEnabled(enabled bool) {
	s.update(func(st *widgetState) { st.canPlayPause = enabled })
}

func (s *System) SetIsStopEnabled(enabled bool) {
	s.update(func(st *widgetState) { st.canStop = enabled })
}

// UpdateDisplay announces every property to MPRIS clients.
func (s *System) UpdateDisplay() {
	s.emitTitle()
	s.emitPlayPause()
}

func (s *System) SetArtist(artist string) {
	s.update(func(st *widgetState) {
		if st.artist != artist {
			st.artist = artist
			st.track++
		}
	})
	s.emitTitle()
}

func (s *System) SetTitle(title string) {
	s.update(func(st *widgetState) {
		if st.title != title {
			st.title = title
			st.track++
		}
	})
	s.emitTitle()
}

// SetThumbnail stores img in the art cache and publishes its URL.
func (s *System) SetThumbnail(img image.Image) {
	s.mu.Lock()
	art := s.art
	s.mu.Unlock()
	if art == nil || img == nil {
		return
	}

	path, err := art.store(img)
	if err != nil {
		s.log.WithError(err).Warn("failed to store thumbnail")
		return
	}
	s.update(func(st *widgetState) { st.artPath = path })
	s.emitTitle()
}

func (s *System) ClearThumbnail() {
	s.update(func(st *widgetState) { st.artPath = "" })
	s.emitTitle()
}

func (s *System) ClearMetadata() {
	s.update(func(st *widgetState) {
		st.title = ""
		st.artist = ""
		st.artPath = ""
		st.position = 0
		st.duration = 0
		st.track++
	})
	s.emitTitle()
}

func (s *System) CommandRequests() *rx.Event[Command] {
	return &s.commands
}

func (s *System) SeekRequests() *rx.Event[float64] {
	return &s.seeks
}

func (s *System) update(fn func(st *widgetState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

func (s *System) snapshot() widgetState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *System) emitTitle() {
	if s.signals != nil {
		_ = s.signals.OnTitle()
	}
}

func (s *System) emitPlayPause() {
	if s.signals != nil {
		_ = s.signals.OnPlayPause()
	}
}

type busObjecter interface {
	BusObject() dbus.BusObject
}

// nameOwned asks the bus daemon whether name has an owner.
func nameOwned(bus busObjecter, name string) (bool, error) {
	var owned bool
	err := bus.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&owned)
	return owned, err
}

// request forwards a widget command onto the host loop.
func (s *System) request(cmd Command) error {
	st := s.snapshot()
	if !st.enabled {
		return nil
	}
	s.mu.Lock()
	host := s.host
	s.mu.Unlock()

	s.log.WithField("command", cmd).Debug("command requested")
	host.post(func() { s.commands.Emit(cmd) })
	return nil
}

// requestSeek converts an absolute position to a progress in [0,1].
// Positions past the end behave like Next, as MPRIS requires.
func (s *System) requestSeek(position time.Duration) error {
	if !s.opts.Seeking {
		return nil
	}
	st := s.snapshot()
	if !st.enabled || st.duration <= 0 {
		return nil
	}
	if position > st.duration {
		return s.request(CommandNext)
	}
	position = max(position, 0)
	progress := float64(position) / float64(st.duration)

	s.mu.Lock()
	host := s.host
	s.mu.Unlock()

	host.post(func() { s.seeks.Emit(progress) })
	return nil
}

func trackObjectPath(st widgetState) dbus.ObjectPath {
	if !st.enabled || (st.title == "" && st.artist == "") {
		return noTrackObjectPath
	}
	return dbus.ObjectPath(fmt.Sprintf("%s%d", trackIDPrefix, st.track))
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	s *System
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	r.s.mu.Lock()
	host := r.s.host
	r.s.mu.Unlock()
	if host.Quit != nil {
		host.post(host.Quit)
	}
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.host.Quit != nil, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.host.Identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	s *System
}

func (p *playerAdapter) Next() error {
	return p.s.request(CommandNext)
}

func (p *playerAdapter) Previous() error {
	return p.s.request(CommandPrevious)
}

func (p *playerAdapter) Pause() error {
	return p.s.request(CommandPause)
}

func (p *playerAdapter) PlayPause() error {
	return p.s.request(CommandPlayPause)
}

func (p *playerAdapter) Stop() error {
	return p.s.request(CommandStop)
}

func (p *playerAdapter) Play() error {
	return p.s.request(CommandPlay)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	st := p.s.snapshot()
	return p.s.requestSeek(st.position + time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	st := p.s.snapshot()
	if string(trackObjectPath(st)) != trackID {
		return nil // stale track, ignored per MPRIS
	}
	return p.s.requestSeek(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	st := p.s.snapshot()
	if !st.enabled {
		return types.PlaybackStatusStopped, nil
	}
	switch st.status {
	case StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case StatusPaused:
		return types.PlaybackStatusPaused, nil
	case StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.s.snapshot()
	path := trackObjectPath(st)
	if path == noTrackObjectPath {
		return types.Metadata{TrackId: path}, nil
	}

	meta := types.Metadata{
		TrackId: path,
		Length:  types.Microseconds(st.duration.Microseconds()),
		Title:   st.title,
	}
	if st.artist != "" {
		meta.Artist = []string{st.artist}
	}
	if st.artPath != "" {
		meta.ArtUrl = "file://" + st.artPath
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.s.snapshot().position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	st := p.s.snapshot()
	return st.enabled && st.canNext, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	st := p.s.snapshot()
	return st.enabled && st.canPrevious, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	st := p.s.snapshot()
	return st.enabled && st.canPlayPause, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	st := p.s.snapshot()
	return st.enabled && st.canPlayPause, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	st := p.s.snapshot()
	return st.enabled && p.s.opts.Seeking, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return p.s.snapshot().enabled, nil
}

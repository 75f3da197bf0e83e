// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/config"
	"github.com/llehouerou/nowplaying/internal/controls"
	"github.com/llehouerou/nowplaying/internal/document"
	"github.com/llehouerou/nowplaying/internal/errmsg"
	"github.com/llehouerou/nowplaying/internal/lock"
	"github.com/llehouerou/nowplaying/internal/logging"
	"github.com/llehouerou/nowplaying/internal/loop"
	"github.com/llehouerou/nowplaying/internal/mediacontrols"
	"github.com/llehouerou/nowplaying/internal/notify"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/player"
	"github.com/llehouerou/nowplaying/internal/playlist"
	"github.com/llehouerou/nowplaying/internal/rx"
	"github.com/llehouerou/nowplaying/internal/state"
)

var errPlaybackFailed = errors.New("the audio engine could not play it, see the log")

// App wires the player, the lock and the system media controls around a
// single main loop.
type App struct {
	cfg  *config.Config
	log  *logrus.Entry
	kind playback.AudioType

	loop     *loop.Loop
	lock     *lock.Manager
	docs     *document.Session
	engine   player.Interface
	playback *playback.Instance
	controls controls.Controls
	bridge   *mediacontrols.Manager
	tracks   *notify.Tracks
	store    state.Interface

	in          io.Reader
	out         io.Writer
	coverRunner func(task func())

	lifetime rx.Lifetime
	status   rx.Distinct[string]
	last     playback.TrackState
}

// Option configures an App.
type Option func(*App)

// WithEngine replaces the beep audio engine.
func WithEngine(e player.Interface) Option {
	return func(a *App) { a.engine = e }
}

// WithControls replaces the platform media controls.
func WithControls(c controls.Controls) Option {
	return func(a *App) { a.controls = c }
}

// WithNotifier enables track change notifications through n.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.tracks = notify.NewTracks(n) }
}

// WithStore enables session persistence through st.
func WithStore(st state.Interface) Option {
	return func(a *App) { a.store = st }
}

// WithIO sets the console streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) { a.in, a.out = in, out }
}

// WithCoverRunner sets how cover loads are started.
func WithCoverRunner(run func(task func())) Option {
	return func(a *App) { a.coverRunner = run }
}

// Verify App satisfies what the media controls bridge needs.
var _ mediacontrols.App = (*App)(nil)

// New builds the application from cfg. Nothing runs until Run.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	ctl := cfg.GetControlsConfig()
	kind, err := playback.ParseAudioType(ctl.ManagedType)
	if err != nil {
		return nil, fmt.Errorf("controls.managed_type: %w", err)
	}
	autoLock, err := cfg.AutoLockDuration()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:  cfg,
		log:  logging.For("app"),
		kind: kind,
		loop: loop.New(),
		in:   os.Stdin,
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	lockOpts := []lock.Option{lock.WithAutoLock(autoLock)}
	if cfg.Lock.StartLocked {
		lockOpts = append(lockOpts, lock.StartLocked())
	}
	a.lock = lock.New(cfg.Lock.Passcode, lockOpts...)

	docOpts := []document.Option{document.WithLogger(logging.For("document"))}
	if a.coverRunner != nil {
		docOpts = append(docOpts, document.WithRunner(a.coverRunner))
	}
	a.docs = document.NewSession(
		document.TagCovers{Size: uint(ctl.ThumbnailSize), Log: logging.For("covers")},
		a.loop.Post,
		docOpts...,
	)

	if a.engine == nil {
		a.engine = player.New()
	}
	a.playback = playback.NewInstance(a.engine, a.loop.Post,
		playback.WithLogger(logging.For("playback")))

	if a.controls == nil {
		a.controls = controls.New(controls.Options{
			Seeking: cfg.SeekingEnabled(),
			Logger:  logging.For("controls"),
		})
	}
	a.bridge = mediacontrols.New(a.controls, controls.Host{
		Identity:     ctl.Identity,
		DesktopEntry: ctl.DesktopEntry,
		Post:         a.loop.Post,
		Quit:         a.Quit,
	}, a.playback, a, mediacontrols.WithAudioType(kind), mediacontrols.WithLogger(logging.For("mediacontrols")))

	a.lifetime.Add(a.playback.Updated().Subscribe(a.handleUpdate))
	a.lifetime.Add(a.playback.TrackChanged().Subscribe(a.handleTrackChanged))
	a.lifetime.Add(a.lock.Changes().Subscribe(func(bool) { a.printStatus(false) }))

	return a, nil
}

func (a *App) PasscodeLockChanges() *rx.Event[bool] { return a.lock.Changes() }

func (a *App) PasscodeLockValue() *rx.Value[bool] { return a.lock.Value() }

func (a *App) MaybeActiveSession() bool { return a.docs.Active() }

// Playback exposes the player instance.
func (a *App) Playback() *playback.Instance { return a.playback }

// Lock exposes the passcode lock.
func (a *App) Lock() *lock.Manager { return a.lock }

// Post runs fn on the main loop.
func (a *App) Post(fn func()) { a.loop.Post(fn) }

// Quit stops the main loop. Run returns once pending work finished.
func (a *App) Quit() { a.loop.Stop() }

// Open registers the given files and queues them for the managed type.
// Unreadable files are reported and skipped.
func (a *App) Open(paths []string) int {
	items := make([]playback.Item, 0, len(paths))
	for i, path := range paths {
		doc, err := a.docs.Open(path)
		if err != nil {
			a.printError(errmsg.FormatWith(errmsg.OpFileOpen, path, err))
			continue
		}
		items = append(items, playlist.Item{Document: doc, ContextID: int64(i + 1)})
	}
	a.playback.Enqueue(a.kind, items...)
	return len(items)
}

// Run queues files, starts the console and processes events until ctx is
// cancelled or the user quits.
func (a *App) Run(ctx context.Context, files []string) error {
	defer a.shutdown()

	a.loop.Post(func() {
		a.start(files)
		a.printStatus(true)
	})

	stopTick := a.loop.Every(positionInterval, a.playback.Tick)
	defer stopTick()
	stopLock := a.loop.Every(autoLockInterval, func() { a.lock.CheckAutoLock() })
	defer stopLock()

	go a.readCommands()

	if err := a.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// start queues files, or restores the saved session when there are none.
func (a *App) start(files []string) {
	if len(files) == 0 && a.store != nil && a.cfg.ResumeEnabled() {
		a.restore()
		return
	}
	if a.Open(files) == 0 {
		return
	}
	a.saveQueue()
	if a.cfg.AutoplayEnabled() {
		a.playback.Play(a.kind)
	}
}

func (a *App) restore() {
	saved, err := a.store.GetQueue()
	if err != nil {
		a.log.WithError(err).Warn("could not read saved session")
		return
	}
	if len(saved.Paths) == 0 || a.Open(saved.Paths) != len(saved.Paths) {
		// Positions no longer line up with the saved index.
		a.saveQueue()
		return
	}
	if !a.playback.Select(a.kind, saved.CurrentIndex) || !a.cfg.AutoplayEnabled() {
		return
	}
	a.playback.Play(a.kind)
	if d := a.engine.Duration(); saved.Position > 0 && d > 0 {
		a.playback.FinishSeeking(a.kind, float64(saved.Position)/float64(d))
	}
}

func (a *App) saveQueue() {
	if a.store == nil {
		return
	}
	items := a.playback.Queue(a.kind)
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.Document.Path()
	}
	st := state.QueueState{CurrentIndex: a.playback.CurrentIndex(a.kind), Paths: paths}
	if err := a.store.SaveQueue(st); err != nil {
		a.log.WithError(err).Warn("could not save session")
	}
}

func (a *App) shutdown() {
	a.bridge.Close()
	a.lifetime.Destroy()
	a.playback.Close()
	if a.tracks != nil {
		if err := a.tracks.Dismiss(); err != nil {
			a.log.WithError(err).Debug("dismiss notification")
		}
	}
	if c, ok := a.controls.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.WithError(err).Warn("closing media controls")
		}
	}
	a.docs.Close()
}

func (a *App) handleUpdate(st playback.TrackState) {
	if st.ID.Type != a.kind {
		return
	}
	if st.State == playback.StateStoppedAtError && a.last.State != playback.StateStoppedAtError {
		a.reportPlaybackError()
	}
	a.last = st
	if a.store != nil {
		at := st.Position
		if playback.IsStopped(st.State) {
			at = 0
		}
		a.store.SavePosition(a.playback.CurrentIndex(a.kind), at)
	}
	a.printStatus(false)
}

func (a *App) reportPlaybackError() {
	name := "track"
	if current := a.playback.Current(a.kind); current.Valid() {
		name = current.Document.Path()
	}
	a.printError(errmsg.FormatWith(errmsg.OpPlaybackStart, name, errPlaybackFailed))
}

func (a *App) handleTrackChanged(t playback.AudioType) {
	if t != a.kind || a.tracks == nil || !a.cfg.Notify.TrackChange || a.lock.Locked() {
		return
	}
	current := a.playback.Current(t)
	if !current.Valid() {
		return
	}
	title, performer := current.Document.SongName().ComposedName()
	if err := a.tracks.Show(title, performer); err != nil {
		a.log.WithError(err).Debug("track notification failed")
	}
}

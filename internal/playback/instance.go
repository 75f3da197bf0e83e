package playback

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/player"
	"github.com/llehouerou/nowplaying/internal/playlist"
	"github.com/llehouerou/nowplaying/internal/rx"
)

// restartThreshold is how far into a track Previous restarts it instead
// of going back.
const restartThreshold = 3 * time.Second

// Verify Instance implements Player at compile time.
var _ Player = (*Instance)(nil)

// Instance drives one audio engine from one queue per AudioType.
// Only one type is audible at a time; starting a type stops the other.
//
// When playback of a type begins from a stopped phase the order of
// notifications is StartsPlay, TrackChanged, Updated. Moving to another
// track while already playing only fires TrackChanged and Updated. A stop
// fires Stops, then Updated.
type Instance struct {
	engine player.Interface
	log    *logrus.Entry

	queues map[AudioType]*playlist.PlayingQueue
	states map[AudioType]State
	// last item announced through TrackChanged, per type
	announced map[AudioType]TrackID

	active    AudioType
	hasActive bool
	// bumped on every start and stop; end-of-track notices carry the
	// value they were raised under and are dropped once it moved on
	generation atomic.Uint64

	updated      rx.Event[TrackState]
	starts       map[AudioType]*rx.Event[struct{}]
	stops        map[AudioType]*rx.Event[struct{}]
	trackChanged rx.Event[AudioType]
}

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the instance logger.
func WithLogger(log *logrus.Entry) Option {
	return func(i *Instance) { i.log = log }
}

// NewInstance creates a player over engine. post must run its argument on
// the main loop; it is used to deliver end-of-track from the audio side.
func NewInstance(engine player.Interface, post func(func()), opts ...Option) *Instance {
	i := &Instance{
		engine:    engine,
		log:       logrus.WithField("component", "playback"),
		queues:    make(map[AudioType]*playlist.PlayingQueue),
		states:    make(map[AudioType]State),
		announced: make(map[AudioType]TrackID),
		starts:    make(map[AudioType]*rx.Event[struct{}]),
		stops:     make(map[AudioType]*rx.Event[struct{}]),
	}
	for _, t := range audioTypes {
		i.queues[t] = playlist.NewQueue()
		i.states[t] = StateStopped
		i.starts[t] = &rx.Event[struct{}]{}
		i.stops[t] = &rx.Event[struct{}]{}
	}
	for _, opt := range opts {
		opt(i)
	}
	engine.OnFinished(func() {
		gen := i.generation.Load()
		post(func() { i.handleFinished(gen) })
	})
	return i
}

func (i *Instance) Updated() *rx.Event[TrackState] { return &i.updated }

func (i *Instance) StartsPlay(t AudioType) *rx.Event[struct{}] { return i.event(i.starts, t) }

func (i *Instance) Stops(t AudioType) *rx.Event[struct{}] { return i.event(i.stops, t) }

func (i *Instance) TrackChanged() *rx.Event[AudioType] { return &i.trackChanged }

func (i *Instance) event(m map[AudioType]*rx.Event[struct{}], t AudioType) *rx.Event[struct{}] {
	if e, ok := m[t]; ok {
		return e
	}
	// Unknown types never fire.
	return &rx.Event[struct{}]{}
}

func (i *Instance) queue(t AudioType) *playlist.PlayingQueue {
	if q, ok := i.queues[t]; ok {
		return q
	}
	return playlist.NewQueue()
}

// Enqueue appends items to the queue of t.
func (i *Instance) Enqueue(t AudioType, items ...Item) {
	i.queue(t).Add(items...)
}

// Replace stops t, replaces its queue and selects the first item.
func (i *Instance) Replace(t AudioType, items ...Item) {
	i.Stop(t)
	i.queue(t).Replace(items...)
	i.announce(t)
}

// Select makes the item at index current without starting it.
// It reports false for an index outside the queue.
func (i *Instance) Select(t AudioType, index int) bool {
	q := i.queue(t)
	if index < 0 || index >= q.Len() {
		return false
	}
	i.Stop(t)
	q.JumpTo(index)
	i.announce(t)
	return true
}

// CurrentIndex returns the queue position of the current item of t, or -1.
func (i *Instance) CurrentIndex(t AudioType) int {
	return i.queue(t).CurrentIndex()
}

// State returns the phase of t.
func (i *Instance) State(t AudioType) State {
	return i.states[t]
}

// Queue returns the items queued for t.
func (i *Instance) Queue(t AudioType) []Item {
	return i.queue(t).Items()
}

func (i *Instance) NextAvailable(t AudioType) bool {
	return i.queue(t).HasNext()
}

func (i *Instance) PreviousAvailable(t AudioType) bool {
	return i.queue(t).HasPrevious()
}

func (i *Instance) Current(t AudioType) Item {
	return i.queue(t).Current()
}

// Play resumes t when paused, otherwise starts its current item.
// With nothing selected the first queued item is used.
func (i *Instance) Play(t AudioType) {
	if i.isActive(t) && IsPaused(i.states[t]) {
		i.engine.Resume()
		i.states[t] = StatePlaying
		i.emitUpdate(t)
		return
	}
	if i.isActive(t) && i.states[t] == StatePlaying {
		return
	}

	q := i.queue(t)
	item := q.Current()
	if !item.Valid() {
		item = q.JumpTo(0)
	}
	if !item.Valid() {
		return
	}
	i.start(t, item)
}

func (i *Instance) Pause(t AudioType) {
	if !i.isActive(t) || i.states[t] != StatePlaying {
		return
	}
	i.engine.Pause()
	i.states[t] = StatePaused
	i.emitUpdate(t)
}

func (i *Instance) PlayPause(t AudioType) {
	if i.isActive(t) && i.states[t] == StatePlaying {
		i.Pause(t)
		return
	}
	i.Play(t)
}

func (i *Instance) Next(t AudioType) {
	item := i.queue(t).Next()
	if !item.Valid() {
		return
	}
	i.start(t, item)
}

// Previous restarts the current track once it has played for a few
// seconds, otherwise goes back one item.
func (i *Instance) Previous(t AudioType) {
	if i.isActive(t) && !IsStopped(i.states[t]) && i.engine.Position() > restartThreshold {
		i.engine.SeekTo(0)
		i.emitUpdate(t)
		return
	}
	item := i.queue(t).Previous()
	if !item.Valid() {
		return
	}
	i.start(t, item)
}

func (i *Instance) Stop(t AudioType) {
	if !i.isActive(t) || IsStopped(i.states[t]) {
		return
	}
	i.engine.Stop()
	i.finishStop(t, StateStopped)
}

func (i *Instance) FinishSeeking(t AudioType, progress float64) {
	if !i.isActive(t) || IsStopped(i.states[t]) {
		return
	}
	progress = min(max(progress, 0), 1)
	i.engine.SeekTo(time.Duration(progress * float64(i.engine.Duration())))
	i.emitUpdate(t)
}

// Tick publishes the current position while playing.
func (i *Instance) Tick() {
	if i.hasActive && i.states[i.active] == StatePlaying {
		i.emitUpdate(i.active)
	}
}

// Close stops playback of every type.
func (i *Instance) Close() {
	for _, t := range audioTypes {
		i.Stop(t)
	}
}

func (i *Instance) isActive(t AudioType) bool {
	return i.hasActive && i.active == t
}

func (i *Instance) start(t AudioType, item Item) {
	if i.hasActive && i.active != t {
		i.Stop(i.active)
	}
	wasStopped := !i.isActive(t) || IsStopped(i.states[t])
	i.generation.Add(1)

	if err := i.engine.Play(item.Document.Path()); err != nil {
		i.log.WithError(err).WithField("path", item.Document.Path()).Error("playback failed")
		if !wasStopped {
			i.finishStop(t, StateStoppedAtError)
			return
		}
		i.active, i.hasActive = t, true
		i.states[t] = StateStoppedAtError
		i.announce(t)
		i.emitUpdate(t)
		delete(i.announced, t)
		return
	}

	if d := i.engine.Duration(); d > 0 {
		item.Document.SetDuration(d)
	}
	i.active, i.hasActive = t, true
	i.states[t] = StatePlaying
	if wasStopped {
		i.starts[t].Emit(struct{}{})
	}
	i.announce(t)
	i.emitUpdate(t)
}

// finishStop forgets the announced track so the next start announces it
// again, even when it is the same item.
func (i *Instance) finishStop(t AudioType, state State) {
	i.generation.Add(1)
	i.states[t] = state
	delete(i.announced, t)
	i.stops[t].Emit(struct{}{})
	i.emitUpdate(t)
}

func (i *Instance) handleFinished(gen uint64) {
	if gen != i.generation.Load() || !i.hasActive {
		return
	}
	t := i.active
	if i.states[t] != StatePlaying {
		return
	}
	if item := i.queue(t).Next(); item.Valid() {
		i.start(t, item)
		return
	}
	i.finishStop(t, StateStoppedAtEnd)
}

// announce fires TrackChanged when the current item of t differs from
// the last one announced.
func (i *Instance) announce(t AudioType) {
	id := i.trackID(t)
	if prev, ok := i.announced[t]; ok && prev == id {
		return
	}
	i.announced[t] = id
	i.trackChanged.Emit(t)
}

func (i *Instance) trackID(t AudioType) TrackID {
	id := TrackID{Type: t}
	if item := i.queue(t).Current(); item.Valid() {
		id.DocumentID = item.Document.ID()
		id.ContextID = item.ContextID
	}
	return id
}

func (i *Instance) emitUpdate(t AudioType) {
	st := TrackState{ID: i.trackID(t), State: i.states[t]}
	if i.isActive(t) && !IsStopped(st.State) {
		st.Position = i.engine.Position()
		st.Length = i.engine.Duration()
	} else if item := i.queue(t).Current(); item.Valid() {
		st.Length = item.Document.Duration()
	}
	i.updated.Emit(st)
}

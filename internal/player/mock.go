package player

import "time"

// Mock is an in-memory engine. It never produces sound; tests drive the
// end of a stream with SimulateFinished.
type Mock struct {
	state    State
	position time.Duration
	duration time.Duration
	playErr  error
	finished func()

	plays []string
	seeks []time.Duration
}

var _ Interface = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

// Play records path. With SetPlayError it fails and stays stopped.
func (m *Mock) Play(path string) error {
	m.plays = append(m.plays, path)
	m.position = 0
	if m.playErr != nil {
		m.state = Stopped
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.state, m.position = Stopped, 0
}

func (m *Mock) Pause() {
	if m.state.CanPause() {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state.CanResume() {
		m.state = Playing
	}
}

func (m *Mock) State() State { return m.state }
func (m *Mock) Position() time.Duration { return m.position }
func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) SeekTo(d time.Duration) {
	m.seeks = append(m.seeks, d)
	m.position = d
}

func (m *Mock) OnFinished(fn func()) { m.finished = fn }

func (m *Mock) SetState(s State) { m.state = s }
func (m *Mock) SetPlayError(err error) { m.playErr = err }
func (m *Mock) SetDuration(d time.Duration) { m.duration = d }
func (m *Mock) SetPosition(d time.Duration) { m.position = d }

// PlayCalls returns every path passed to Play.
func (m *Mock) PlayCalls() []string { return m.plays }

// SeekCalls returns every position passed to SeekTo.
func (m *Mock) SeekCalls() []time.Duration { return m.seeks }

// SimulateFinished ends the stream as if it ran out.
func (m *Mock) SimulateFinished() {
	m.state = Stopped
	if m.finished != nil {
		m.finished()
	}
}

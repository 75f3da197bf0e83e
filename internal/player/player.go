// Package player decodes and plays audio files through the system speaker.
package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"

	speakerRate   = beep.SampleRate(44100)
	resampleLevel = 4
)

// ErrUnsupportedFormat is returned by Play for files it cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported format")

var speakerOnce struct {
	sync.Once
	err error
}

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerOnce.err
}

// Player plays one file at a time.
type Player struct {
	mu         sync.Mutex
	state      State
	ctrl       *beep.Ctrl
	streamer   beep.StreamSeekCloser
	format     beep.Format
	file       *os.File
	duration   time.Duration
	generation int // bumped on every Play/Stop to ignore stale callbacks
	onFinished func()
}

// New creates a stopped player. The speaker is opened on first Play.
func New() *Player {
	return &Player{state: Stopped}
}

// Play stops the current stream and starts path.
func (p *Player) Play(path string) error {
	p.Stop()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != extMP3 && ext != extFLAC {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if err := initSpeaker(); err != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("open speaker: %w", err)
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.file = f
	p.streamer = streamer
	p.format = format
	p.duration = format.SampleRate.D(streamer.Len())
	p.ctrl = &beep.Ctrl{Streamer: beep.Resample(resampleLevel, format.SampleRate, speakerRate, streamer)}
	p.state = Playing
	ctrl := p.ctrl
	p.mu.Unlock()

	// The callback runs with the speaker locked; finish off that goroutine.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() { go p.finished(gen) })))
	return nil
}

func (p *Player) finished(gen int) {
	p.mu.Lock()
	if gen != p.generation || p.state == Stopped {
		p.mu.Unlock()
		return
	}
	p.releaseLocked()
	fn := p.onFinished
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// OnFinished registers the end-of-stream callback.
func (p *Player) OnFinished(fn func()) {
	p.mu.Lock()
	p.onFinished = fn
	p.mu.Unlock()
}

// State returns the current engine state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Duration returns the length of the current stream.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// releaseLocked closes the current stream. Caller holds p.mu.
func (p *Player) releaseLocked() {
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.duration = 0
	p.state = Stopped
}

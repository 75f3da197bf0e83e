package app

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/nowplaying/internal/errmsg"
	"github.com/llehouerou/nowplaying/internal/playback"
	"github.com/llehouerou/nowplaying/internal/statusline"
)

const (
	positionInterval = 500 * time.Millisecond
	autoLockInterval = time.Second
	statusWidth      = 80
)

var (
	// ErrUnknownCommand is returned for unrecognized console input.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrLocked is returned for commands refused while locked.
	ErrLocked = errors.New("locked")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
	// ErrProgressRange is returned for a seek outside [0,1].
	ErrProgressRange = errors.New("progress must be within [0,1]")
)

// CommandKind is a console command.
type CommandKind int

const (
	CmdPlay CommandKind = iota
	CmdPause
	CmdToggle
	CmdNext
	CmdPrevious
	CmdStop
	CmdSeek
	CmdLock
	CmdUnlock
	CmdStatus
	CmdQuit
)

var commandNames = map[string]CommandKind{
	"play":     CmdPlay,
	"pause":    CmdPause,
	"toggle":   CmdToggle,
	"next":     CmdNext,
	"prev":     CmdPrevious,
	"previous": CmdPrevious,
	"stop":     CmdStop,
	"seek":     CmdSeek,
	"lock":     CmdLock,
	"unlock":   CmdUnlock,
	"status":   CmdStatus,
	"quit":     CmdQuit,
	"exit":     CmdQuit,
}

// Command is one parsed console line.
type Command struct {
	Kind     CommandKind
	Progress float64 // seek
	Code     string  // unlock
}

// ParseCommand parses a console line such as "seek 0.5" or "unlock 1234".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind, ok := commandNames[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	cmd := Command{Kind: kind}

	switch kind {
	case CmdSeek:
		if len(fields) < 2 {
			return Command{}, ErrMissingArgument
		}
		p, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Command{}, fmt.Errorf("seek: %w", err)
		}
		if p < 0 || p > 1 {
			return Command{}, ErrProgressRange
		}
		cmd.Progress = p
	case CmdUnlock:
		if len(fields) < 2 {
			return Command{}, ErrMissingArgument
		}
		cmd.Code = fields[1]
	}
	return cmd, nil
}

// allowedWhileLocked reports commands accepted while the lock is engaged.
func (c Command) allowedWhileLocked() bool {
	switch c.Kind {
	case CmdUnlock, CmdStatus, CmdQuit:
		return true
	}
	return false
}

// readCommands posts every stdin line to the loop until input ends.
func (a *App) readCommands() {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a.loop.Post(func() { a.HandleLine(line) })
	}
	if err := scanner.Err(); err != nil {
		a.log.WithError(err).Warn("reading console input")
	}
}

// HandleLine parses and runs one console line on the loop.
func (a *App) HandleLine(line string) {
	a.lock.Touch()

	cmd, err := ParseCommand(line)
	if err != nil {
		a.printError(errmsg.FormatWith(errmsg.OpCommand, line, err))
		return
	}
	if err := a.Execute(cmd); err != nil {
		a.printError(errmsg.FormatWith(cmd.op(), line, err))
	}
}

func (c Command) op() errmsg.Op {
	switch c.Kind {
	case CmdLock:
		return errmsg.OpLock
	case CmdUnlock:
		return errmsg.OpUnlock
	case CmdSeek:
		return errmsg.OpPlaybackSeek
	}
	return errmsg.OpCommand
}

// Execute runs cmd against the managed audio type.
func (a *App) Execute(cmd Command) error {
	if a.lock.Locked() && !cmd.allowedWhileLocked() {
		return ErrLocked
	}

	switch cmd.Kind {
	case CmdPlay:
		a.playback.Play(a.kind)
	case CmdPause:
		a.playback.Pause(a.kind)
	case CmdToggle:
		a.playback.PlayPause(a.kind)
	case CmdNext:
		a.playback.Next(a.kind)
	case CmdPrevious:
		a.playback.Previous(a.kind)
	case CmdStop:
		a.playback.Stop(a.kind)
	case CmdSeek:
		a.playback.FinishSeeking(a.kind, cmd.Progress)
	case CmdLock:
		return a.lock.Lock()
	case CmdUnlock:
		return a.lock.Unlock(cmd.Code)
	case CmdStatus:
		a.printStatus(true)
	case CmdQuit:
		a.Quit()
	}
	return nil
}

func (a *App) statusState() statusline.State {
	s := statusline.State{
		Position: a.last.Position,
		Duration: a.last.Length,
		Locked:   a.lock.Locked(),
		Controls: a.bridge.Active(),
	}
	switch st := a.playback.State(a.kind); {
	case playback.IsStoppedOrStopping(st):
		s.Status = statusline.StatusStopped
	case playback.IsPausedOrPausing(st):
		s.Status = statusline.StatusPaused
	default:
		s.Status = statusline.StatusPlaying
	}
	if current := a.playback.Current(a.kind); current.Valid() {
		s.Title, s.Performer = current.Document.SongName().ComposedName()
		if s.Duration == 0 {
			s.Duration = current.Document.Duration()
		}
	}
	return s
}

// printStatus writes the status line when what it shows changed, or
// unconditionally with force. Position alone never triggers a line.
func (a *App) printStatus(force bool) {
	s := a.statusState()
	key := fmt.Sprintf("%d|%s|%s|%t|%t", s.Status, s.Title, s.Performer, s.Locked, s.Controls)
	if !a.status.Changed(key) && !force {
		return
	}
	fmt.Fprintln(a.out, statusline.Render(s, statusWidth))
}

func (a *App) printError(msg string) {
	if msg == "" {
		return
	}
	a.log.Warn(msg)
	fmt.Fprintln(a.out, msg)
}

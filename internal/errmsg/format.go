// Package errmsg turns failures into the one-line messages shown on the
// console.
package errmsg

import "fmt"

// Op names what was being attempted, completing "Failed to ...".
type Op string

const (
	OpFileOpen    Op = "open file"
	OpFileCollect Op = "collect music files"

	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	OpLock   Op = "lock"
	OpUnlock Op = "unlock"

	OpCommand Op = "run command"

	OpConfigLoad Op = "load config"
	OpLogSetup   Op = "set up logging"
	OpInitialize Op = "initialize application"
)

// Error is a failed operation with optional context such as a path.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", e.Op, e.Context, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err.
func Wrap(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}

// Format returns the message for err, or "" when err is nil.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format with context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	return Wrap(op, context, err).Error()
}

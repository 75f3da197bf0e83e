//go:build !windows

// Package stderr captures output that C audio libraries (ALSA through the
// speaker backend) write directly to file descriptor 2, bypassing Go's
// os.Stderr. Captured lines are forwarded to the log so they do not
// corrupt the console status line.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr output into log.
// Must be called early in main(), before the speaker is initialized.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture.
func Start(log *logrus.Entry) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	// Save original stderr file descriptor
	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	err = syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go forward(pipeRead, log, done)

	return nil
}

func forward(r *os.File, log *logrus.Entry, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	if started && origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores the original stderr and waits for pending lines to be
// logged.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	pipeWrite.Close()
	<-done
	pipeRead.Close()

	started = false
}

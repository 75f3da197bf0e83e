// Package logging configures the process-wide logrus logger. Logs go to a
// file so the console status line stays readable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/config"
)

// DefaultPath returns the dated log file in the XDG state directory.
func DefaultPath() (string, error) {
	name := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))
	return xdg.StateFile(filepath.Join("nowplaying", name))
}

// Setup points the standard logger at the configured file, formatter and
// level. The returned closer releases the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	path := cfg.File
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, fmt.Errorf("log directory: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Configure(logrus.StandardLogger(), f, cfg)
	return f, nil
}

// Configure applies formatter and level to l and sends its output to w.
// Unknown levels fall back to info.
func Configure(l *logrus.Logger, w io.Writer, cfg config.LogConfig) {
	l.SetOutput(w)

	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
}

// For returns an entry tagged with component.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

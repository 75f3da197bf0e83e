package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Thumbnail bounds accepted for controls.thumbnail_size.
const (
	minThumbnailSize     = 32
	maxThumbnailSize     = 1024
	defaultThumbnailSize = 256
)

type Config struct {
	Controls ControlsConfig `koanf:"controls"`
	Lock     LockConfig     `koanf:"lock"`
	Log      LogConfig      `koanf:"log"`
	Playback PlaybackConfig `koanf:"playback"`
	Notify   NotifyConfig   `koanf:"notify"`
}

// ControlsConfig holds the system media controls settings.
type ControlsConfig struct {
	Identity      string `koanf:"identity"`       // name shown by the desktop (default: "Now Playing")
	DesktopEntry  string `koanf:"desktop_entry"`  // bus name suffix (default: "nowplaying")
	ManagedType   string `koanf:"managed_type"`   // "song" or "voice" (default: "song")
	Seeking       *bool  `koanf:"seeking"`        // expose position and seeking (default: true)
	ThumbnailSize int    `koanf:"thumbnail_size"` // cover bound in pixels (32-1024, default: 256)
}

// LockConfig holds the passcode lock settings.
type LockConfig struct {
	Passcode    string `koanf:"passcode"`     // empty disables locking
	AutoLock    string `koanf:"auto_lock"`    // Go duration, empty disables (e.g. "5m")
	StartLocked bool   `koanf:"start_locked"` // lock on startup when a passcode is set
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level (default: "info")
	File  string `koanf:"file"`  // log file (default: XDG state dir)
	JSON  bool   `koanf:"json"`  // JSON formatter instead of text
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	Autoplay *bool `koanf:"autoplay"` // start playing the given files (default: true)
	Resume   *bool `koanf:"resume"`   // restore the last queue when run without files (default: true)
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	TrackChange bool `koanf:"track_change"` // notify on every new track while unlocked
}

// Load reads the config files in priority order, last wins. A non-empty
// explicit path is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		explicit = expandPath(explicit)
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/nowplaying/config.toml
		filepath.Join(xdg.ConfigHome, "nowplaying", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetControlsConfig returns the controls configuration with defaults applied.
func (c *Config) GetControlsConfig() ControlsConfig {
	cfg := c.Controls

	if cfg.Identity == "" {
		cfg.Identity = "Now Playing"
	}
	if cfg.DesktopEntry == "" {
		cfg.DesktopEntry = "nowplaying"
	}
	if cfg.ManagedType == "" {
		cfg.ManagedType = "song"
	}
	if cfg.Seeking == nil {
		seeking := true
		cfg.Seeking = &seeking
	}
	switch {
	case cfg.ThumbnailSize == 0:
		cfg.ThumbnailSize = defaultThumbnailSize
	case cfg.ThumbnailSize < minThumbnailSize:
		cfg.ThumbnailSize = minThumbnailSize
	case cfg.ThumbnailSize > maxThumbnailSize:
		cfg.ThumbnailSize = maxThumbnailSize
	}

	return cfg
}

// SeekingEnabled reports whether seeking is exposed to the controls.
func (c *Config) SeekingEnabled() bool {
	return *c.GetControlsConfig().Seeking
}

// AutoLockDuration parses lock.auto_lock. Empty means disabled.
func (c *Config) AutoLockDuration() (time.Duration, error) {
	if c.Lock.AutoLock == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Lock.AutoLock)
	if err != nil {
		return 0, fmt.Errorf("lock.auto_lock: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("lock.auto_lock: negative duration %s", d)
	}
	return d, nil
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// AutoplayEnabled reports whether playback starts on launch.
func (c *Config) AutoplayEnabled() bool {
	return c.Playback.Autoplay == nil || *c.Playback.Autoplay
}

// ResumeEnabled reports whether the previous session is restored.
func (c *Config) ResumeEnabled() bool {
	return c.Playback.Resume == nil || *c.Playback.Resume
}

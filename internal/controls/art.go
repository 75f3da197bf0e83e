//go:build linux

package controls

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// artCache writes thumbnails to disk so MPRIS clients can load them by URL.
// Only the most recent file is kept.
type artCache struct {
	mu      sync.Mutex
	dir     string
	seq     int
	current string
}

func newArtCache(entry string) (*artCache, error) {
	if entry == "" {
		entry = "nowplaying"
	}
	// CacheFile creates the parent directories.
	probe, err := xdg.CacheFile(filepath.Join(entry, "art", ".keep"))
	if err != nil {
		return nil, err
	}
	return &artCache{dir: filepath.Dir(probe)}, nil
}

// store encodes img as PNG and returns its path.
func (c *artCache) store(img image.Image) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	path := filepath.Join(c.dir, fmt.Sprintf("cover-%d-%d.png", os.Getpid(), c.seq))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	if c.current != "" {
		os.Remove(c.current)
	}
	c.current = path
	return path, nil
}

func (c *artCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != "" {
		os.Remove(c.current)
		c.current = ""
	}
}

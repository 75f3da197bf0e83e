package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/nowplaying/internal/document"
)

func newItems(paths ...string) []Item {
	s := document.NewSession(nil, func(fn func()) { fn() })
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Document: s.Add(document.Info{Path: p}), ContextID: int64(i + 1)}
	}
	return items
}

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Item(0).Valid() {
		t.Error("Item(0) should be invalid for empty playlist")
	}
}

func TestPlaylist_AddRemove(t *testing.T) {
	p := NewPlaylist()
	p.Add(newItems("/a.mp3", "/b.mp3", "/c.mp3")...)

	if !p.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if p.Remove(5) || p.Remove(-1) {
		t.Error("Remove with invalid index should return false")
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if got := p.Item(1).Document.Path(); got != "/c.mp3" {
		t.Errorf("Item(1) = %q, want /c.mp3", got)
	}
}

func TestPlaylist_Items_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(newItems("/a.mp3")...)

	items := p.Items()
	items[0] = Item{}

	if !p.Item(0).Valid() {
		t.Error("modifying Items() result changed the playlist")
	}
}

func TestPlaylist_Clear(t *testing.T) {
	p := NewPlaylist()
	p.Add(newItems("/a.mp3", "/b.mp3")...)
	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", p.Len())
	}
}

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/a.mp3", true},
		{"/music/a.MP3", true},
		{"/music/a.flac", true},
		{"/music/a.ogg", false},
		{"/music/cover.jpg", false},
		{"/music/noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsMusicFile(tt.path); got != tt.want {
				t.Errorf("IsMusicFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCollectPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.flac", "cover.jpg", filepath.Join("sub", "c.mp3")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "b.mp3")

	got, err := CollectPaths([]string{single, dir})
	if err != nil {
		t.Fatalf("CollectPaths() error = %v", err)
	}

	want := []string{
		single,
		filepath.Join(dir, "a.flac"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "sub", "c.mp3"),
	}
	if len(got) != len(want) {
		t.Fatalf("CollectPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CollectPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectPaths_Errors(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(img, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := CollectPaths([]string{filepath.Join(dir, "missing.mp3")}); err == nil {
		t.Error("CollectPaths with missing file should fail")
	}
	if _, err := CollectPaths([]string{img}); err == nil {
		t.Error("CollectPaths with unsupported file should fail")
	}
}

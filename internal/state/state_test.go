package state

import (
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func openTest(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	return m
}

func TestGetQueue_Empty(t *testing.T) {
	m := openTest(t)
	defer m.Close()

	q, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}
	if q.CurrentIndex != -1 {
		t.Errorf("CurrentIndex = %d, want -1", q.CurrentIndex)
	}
	if len(q.Paths) != 0 {
		t.Errorf("expected no paths, got %v", q.Paths)
	}
}

func TestSaveAndGetQueue(t *testing.T) {
	m := openTest(t)
	defer m.Close()

	want := QueueState{
		CurrentIndex: 1,
		Position:     42 * time.Second,
		Paths:        []string{"/music/a.mp3", "/music/b.flac", "/music/c.mp3"},
	}
	if err := m.SaveQueue(want); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}

	got, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}
	if got.CurrentIndex != want.CurrentIndex {
		t.Errorf("CurrentIndex = %d, want %d", got.CurrentIndex, want.CurrentIndex)
	}
	if got.Position != want.Position {
		t.Errorf("Position = %v, want %v", got.Position, want.Position)
	}
	if !slices.Equal(got.Paths, want.Paths) {
		t.Errorf("Paths = %v, want %v", got.Paths, want.Paths)
	}
}

func TestSaveQueue_Replaces(t *testing.T) {
	m := openTest(t)
	defer m.Close()

	if err := m.SaveQueue(QueueState{CurrentIndex: 2, Paths: []string{"a", "b", "c"}}); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}
	if err := m.SaveQueue(QueueState{CurrentIndex: 0, Paths: []string{"z"}}); err != nil {
		t.Fatalf("SaveQueue (replace) failed: %v", err)
	}

	got, _ := m.GetQueue()
	if !slices.Equal(got.Paths, []string{"z"}) {
		t.Errorf("Paths = %v, want [z]", got.Paths)
	}
	if got.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", got.CurrentIndex)
	}
}

func TestClose_FlushesPendingPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := m.SaveQueue(QueueState{CurrentIndex: 0, Paths: []string{"a", "b"}}); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}

	m.SavePosition(1, 5*time.Second)
	m.SavePosition(1, 7*time.Second)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}
	if got.CurrentIndex != 1 || got.Position != 7*time.Second {
		t.Errorf("got index %d at %v, want 1 at 7s", got.CurrentIndex, got.Position)
	}
	if len(got.Paths) != 2 {
		t.Errorf("expected the queue to survive, got %v", got.Paths)
	}
}

func TestSaveQueue_DropsPendingPosition(t *testing.T) {
	m := openTest(t)

	m.SavePosition(5, time.Minute)
	if err := m.SaveQueue(QueueState{CurrentIndex: 0, Paths: []string{"a"}}); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}

	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		t.Errorf("expected pending position to be dropped, got %+v", *pending)
	}
	m.Close()
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := openTest(t)
	defer m.Close()

	if err := initSchema(m.db); err != nil {
		t.Errorf("second initSchema failed: %v", err)
	}
}

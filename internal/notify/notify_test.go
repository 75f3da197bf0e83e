package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestDiscard(t *testing.T) {
	var n Notifier = discard{}
	id, err := n.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v, want 0, nil", id, err)
	}
	if err := n.Close(7); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestTracks_ShowsTransientMusicNotice(t *testing.T) {
	r := &recorder{}
	if err := NewTracks(r).Show("Song", "Band"); err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	got := r.sent[0]
	if !got.Transient || got.Category != trackCategory || got.Icon != trackIcon {
		t.Errorf("notification = %+v", got)
	}
	if got.Timeout != trackTimeout {
		t.Errorf("Timeout = %d, want %d", got.Timeout, trackTimeout)
	}
}

// recorder is a Notifier that stores what it was asked to do.
type recorder struct {
	sent   []Notification
	closed []uint32
	nextID uint32
}

func (r *recorder) Notify(n Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recorder) Close(id uint32) error {
	r.closed = append(r.closed, id)
	return nil
}

func TestTracks_ReplacesPrevious(t *testing.T) {
	r := &recorder{}
	tracks := NewTracks(r)

	if err := tracks.Show("Song", "Band"); err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	if err := tracks.Show("Other", "Band"); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	if len(r.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(r.sent))
	}
	if r.sent[0].ReplacesID != 0 {
		t.Errorf("first ReplacesID = %d, want 0", r.sent[0].ReplacesID)
	}
	if r.sent[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", r.sent[1].ReplacesID)
	}
	if r.sent[1].Title != "Other" || r.sent[1].Body != "Band" {
		t.Errorf("second notification = %+v", r.sent[1])
	}
}

func TestTracks_Dismiss(t *testing.T) {
	r := &recorder{}
	tracks := NewTracks(r)

	if err := tracks.Dismiss(); err != nil {
		t.Fatalf("Dismiss() error: %v", err)
	}
	if len(r.closed) != 0 {
		t.Fatal("Dismiss() closed a notification that was never shown")
	}

	_ = tracks.Show("Song", "Band")
	_ = tracks.Dismiss()
	_ = tracks.Dismiss()

	if len(r.closed) != 1 || r.closed[0] != 1 {
		t.Errorf("closed = %v, want [1]", r.closed)
	}
}

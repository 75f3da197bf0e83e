// Package notify provides desktop notifications via D-Bus.
package notify

import "fmt"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	trackTimeout  = 4000 // ms
	trackIcon     = "media-playback-start"
	trackCategory = "x-gnome.music"
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
	Category   string  // freedesktop category hint (optional)
	Transient  bool    // skip the notification history
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// discard is used where no notification server is reachable.
type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }

func (discard) Close(uint32) error { return nil }

// Tracks shows one notification per track change, each replacing the
// previous one.
type Tracks struct {
	n    Notifier
	last uint32
}

// NewTracks wraps n.
func NewTracks(n Notifier) *Tracks {
	return &Tracks{n: n}
}

// Show announces title by performer.
func (t *Tracks) Show(title, performer string) error {
	id, err := t.n.Notify(Notification{
		Title:      title,
		Body:       performer,
		Icon:       trackIcon,
		Timeout:    trackTimeout,
		ReplacesID: t.last,
		Urgency:    UrgencyLow,
		Category:   trackCategory,
		Transient:  true,
	})
	if err != nil {
		return fmt.Errorf("track notification: %w", err)
	}
	t.last = id
	return nil
}

// Dismiss closes the last track notification, if any.
func (t *Tracks) Dismiss() error {
	if t.last == 0 {
		return nil
	}
	id := t.last
	t.last = 0
	return t.n.Close(id)
}

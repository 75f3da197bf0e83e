//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

type busNotifier struct {
	obj          dbus.BusObject
	appName      string
	desktopEntry string
}

// New returns a Notifier posting to the session bus on behalf of appName.
// Without a session bus it returns a notifier that drops everything.
func New(appName, desktopEntry string) (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return discard{}, nil //nolint:nilerr // notifications are optional
	}
	return &busNotifier{
		obj:          conn.Object(busName, busPath),
		appName:      appName,
		desktopEntry: desktopEntry,
	}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	err := b.obj.Call(busMethod, 0,
		b.appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints(n, b.desktopEntry),
		n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(busClose, 0, id).Err
}

func hints(n Notification, desktopEntry string) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.Urgency)),
	}
	if desktopEntry != "" {
		h["desktop-entry"] = dbus.MakeVariant(desktopEntry)
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	if n.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

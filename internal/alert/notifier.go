package alert

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// Freedesktop notification service.
const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	notifyCategory  = "x-countdown.finished"
	notifyIcon      = "alarm-symbolic"
	urgencyCritical = byte(2)
)

// caller is the subset of dbus.BusObject used to send notifications.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DesktopNotifier posts a desktop notification when a countdown finishes.
// The session bus is connected on first use.
type DesktopNotifier struct {
	mu      sync.Mutex
	logger  *slog.Logger
	appName string
	conn    *dbus.Conn
	obj     caller

	// replaces is the ID of the last notification, so repeated alarms
	// update one notification instead of stacking.
	replaces uint32
}

// NewDesktopNotifier creates a notifier that posts as appName.
func NewDesktopNotifier(appName string, logger *slog.Logger) *DesktopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DesktopNotifier{
		appName: appName,
		logger:  logger,
	}
}

// Notify posts a critical, transient notification.
func (n *DesktopNotifier) Notify(summary, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.obj == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		n.conn = conn
		n.obj = conn.Object(notifyDest, dbus.ObjectPath(notifyPath))
	}

	hints := map[string]dbus.Variant{
		"urgency":        dbus.MakeVariant(urgencyCritical),
		"category":       dbus.MakeVariant(notifyCategory),
		"transient":      dbus.MakeVariant(true),
		"suppress-sound": dbus.MakeVariant(true),
		"desktop-entry":  dbus.MakeVariant(n.appName),
	}

	call := n.obj.Call(notifyMethod, 0,
		n.appName,
		n.replaces,
		notifyIcon,
		summary,
		body,
		[]string{},
		hints,
		int32(-1),
	)
	if call.Err != nil {
		return fmt.Errorf("notify failed: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("failed to read notification id: %w", err)
	}
	n.replaces = id
	n.logger.Debug("desktop notification sent", "id", id, "summary", summary)
	return nil
}

// Close disconnects from the session bus.
func (n *DesktopNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.obj = nil
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

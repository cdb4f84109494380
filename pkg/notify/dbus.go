package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")

	urgencyCritical = byte(2)
	expiresDefault  = int32(-1)
)

// DBusSink talks to the desktop notification daemon on the session bus.
type DBusSink struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewDBusSink connects to the session bus.
func NewDBusSink() (*DBusSink, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &DBusSink{
		conn: conn,
		obj:  conn.Object(notificationsName, notificationsPath),
	}, nil
}

func (s *DBusSink) Show(label string) (*Handle, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyCritical),
	}

	var id uint32
	call := s.obj.Call(notificationsName+".Notify", 0,
		AppName, uint32(0), "", Title(label), Body, []string{}, hints, expiresDefault)
	if err := call.Store(&id); err != nil {
		return nil, fmt.Errorf("cannot display notification: %w", err)
	}
	return &Handle{ID: id, Label: label}, nil
}

func (s *DBusSink) Close(h *Handle) error {
	if err := s.obj.Call(notificationsName+".CloseNotification", 0, h.ID).Err; err != nil {
		return fmt.Errorf("closing %s notification: %w", h.Label, err)
	}
	return nil
}

func (s *DBusSink) Shutdown() error {
	return s.conn.Close()
}

// Package notify shows and withdraws user-visible pressure alerts.
package notify

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	AppName = "psi-notify"
	Body    = "Consider reducing demand on this resource."
)

// Handle refers to an alert currently on screen.
type Handle struct {
	ID    uint32
	Label string
}

// Sink presents alerts to the user.
type Sink interface {
	Show(label string) (*Handle, error)
	Close(h *Handle) error
	Shutdown() error
}

// Title is the alert summary for a resource label.
func Title(label string) string {
	return fmt.Sprintf("High %s pressure!", label)
}

// LogSink only logs alerts. It is used when no desktop session is reachable.
type LogSink struct {
	next uint32
}

func (s *LogSink) Show(label string) (*Handle, error) {
	s.next++
	glog.Warningf("%s %s", Title(label), Body)
	return &Handle{ID: s.next, Label: label}, nil
}

func (s *LogSink) Close(h *Handle) error {
	glog.Infof("%s pressure alert withdrawn", h.Label)
	return nil
}

func (s *LogSink) Shutdown() error {
	return nil
}

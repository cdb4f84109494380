package pressurenotify

import (
	"errors"
	"time"

	"github.com/werdnum/pressurenotify/pkg/config"
	"github.com/werdnum/pressurenotify/pkg/notify"
	"github.com/werdnum/pressurenotify/pkg/pressure"
)

type fakeReader struct {
	samples []pressure.Sample
	err     error
	visited int
	onVisit func()
}

func (f *fakeReader) Visit(fn func(pressure.Sample) bool) error {
	if f.onVisit != nil {
		f.onVisit()
	}
	for _, s := range f.samples {
		f.visited++
		if !fn(s) {
			return nil
		}
	}
	return f.err
}

type fakeSink struct {
	shown     int
	closed    int
	shutdowns int
	failShow  bool
	open      map[uint32]bool
	next      uint32
}

func newFakeSink() *fakeSink {
	return &fakeSink{open: map[uint32]bool{}}
}

func (s *fakeSink) Show(label string) (*notify.Handle, error) {
	s.shown++
	if s.failShow {
		return nil, errors.New("no notification daemon")
	}
	s.next++
	s.open[s.next] = true
	return &notify.Handle{ID: s.next, Label: label}, nil
}

func (s *fakeSink) Close(h *notify.Handle) error {
	s.closed++
	delete(s.open, h.ID)
	return nil
}

func (s *fakeSink) Shutdown() error {
	s.shutdowns++
	return nil
}

type fakeLoader struct {
	cfg   *config.Config
	err   error
	calls int
}

func (l *fakeLoader) Reload() (*config.Config, error) {
	l.calls++
	return l.cfg, l.err
}

type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
	onWait func()
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) after(d time.Duration) <-chan time.Time {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
	if c.onWait != nil {
		c.onWait()
	}
	ch := make(chan time.Time, 1)
	ch <- c.t
	return ch
}

func some(avg10, avg60, avg300 float64) pressure.Sample {
	return pressure.Sample{Class: pressure.Some, Avg10: avg10, Avg60: avg60, Avg300: avg300}
}

func full(avg10, avg60, avg300 float64) pressure.Sample {
	return pressure.Sample{Class: pressure.Full, Avg10: avg10, Avg60: avg60, Avg300: avg300}
}

func unsetThresholds() config.ResourceThresholds {
	return config.ResourceThresholds{Some: config.Unset(), Full: config.Unset()}
}

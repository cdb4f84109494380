package pressurenotify

import (
	"github.com/werdnum/pressurenotify/pkg/notify"
	"github.com/werdnum/pressurenotify/pkg/pressure"
)

// ExpirySeconds is how long pressure has to stay low before an alert clears.
const ExpirySeconds = 10

// AlertState tracks the alert of one resource across ticks.
type AlertState struct {
	kind      pressure.Kind
	last      Classification
	remaining int
	handle    *notify.Handle

	sink    notify.Sink
	metrics *Metrics
}

func NewAlertState(kind pressure.Kind, sink notify.Sink, metrics *Metrics) *AlertState {
	a := &AlertState{
		kind:    kind,
		last:    Inactive,
		sink:    sink,
		metrics: metrics,
	}
	metrics.setState(kind, Inactive)
	return a
}

// debounceTicks converts ExpirySeconds into a tick count for interval.
func debounceTicks(interval int) int {
	if interval < 1 {
		interval = 1
	}
	return max(1, (ExpirySeconds+interval-1)/interval)
}

package pressurenotify

import (
	"github.com/golang/glog"
)

// Update advances the alert with this tick's evaluation. interval is the
// current update interval in seconds.
func (a *AlertState) Update(e Classification, err error, interval int) {
	switch a.last {
	case Inactive, Active, Stabilising:
	default:
		glog.Fatalf("%s alert in impossible state %d", a.kind.Label(), int(a.last))
	}

	switch e {
	case Error:
		glog.Warningf("Error getting %s pressure: %v", a.kind.Label(), err)
		a.metrics.checkError(a.kind)
		return
	case Active:
		a.activate(interval)
	case Stabilising:
		a.stabilise()
	case Inactive:
		a.deactivate()
	default:
		glog.Fatalf("impossible %s evaluation %d", a.kind.Label(), int(e))
	}

	a.metrics.setState(a.kind, a.last)
}

func (a *AlertState) activate(interval int) {
	if a.last != Active {
		if a.handle == nil {
			h, err := a.sink.Show(a.kind.Label())
			if err != nil {
				glog.Errorf("error while showing %s alert: %s", a.kind.Label(), err.Error())
			} else {
				a.handle = h
			}
		}
		a.logTransition(Active)
	}

	a.remaining = debounceTicks(interval)
	a.last = Active
}

// stabilise only holds an alert that is already open.
func (a *AlertState) stabilise() {
	if a.last != Active {
		return
	}
	a.logTransition(Stabilising)
	a.last = Stabilising
}

func (a *AlertState) deactivate() {
	if a.last == Inactive {
		return
	}

	a.remaining--
	if a.remaining > 0 {
		a.stabilise()
		return
	}

	a.logTransition(Inactive)
	a.remaining = 0
	a.Release()
	a.last = Inactive
}

// Release withdraws the alert on screen, if any.
func (a *AlertState) Release() {
	if a.handle == nil {
		return
	}
	h := a.handle
	a.handle = nil
	if err := a.sink.Close(h); err != nil {
		glog.Errorf("error while closing %s alert: %s", a.kind.Label(), err.Error())
	}
}

func (a *AlertState) logTransition(to Classification) {
	glog.Infof("%s alert: %s", a.kind.Title(), to)
	a.metrics.transition(a.kind, to)
}

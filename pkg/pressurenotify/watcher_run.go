package pressurenotify

import (
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/werdnum/pressurenotify/pkg/pressure"
)

// Run polls until an exit is requested, then tears down.
func (w *Watcher) Run() {
	w.applyConfig()
	glog.Infof("Config:\n\n%s", w.cfg)

	for w.control.Running() {
		w.tick()
	}

	w.shutdown()
}

func (w *Watcher) tick() {
	start := w.now()
	w.control.drain()
	w.Liveness.checking()

	for _, k := range pressure.Kinds() {
		c, err := Evaluate(w.readers[k], w.cfg.Thresholds[k])
		w.alerts[k].Update(c, err, w.cfg.UpdateInterval)
	}
	w.metrics.flush()

	if w.control.takeReload() {
		w.reload()
	} else if w.control.Running() {
		w.Liveness.waiting()
		w.sleepRemaining(start)
	}

	w.iterations++
}

// sleepRemaining waits out the rest of the interval that began at start.
// It returns false if the interval had already elapsed.
func (w *Watcher) sleepRemaining(start time.Time) bool {
	interval := w.cfg.Interval()
	elapsed := w.now().Sub(start)

	if elapsed > interval {
		glog.Warningf("Timer elapsed %d seconds before we completed one event loop", w.cfg.UpdateInterval)
		w.metrics.missedDeadline()
		return false
	}
	if elapsed == interval {
		return true
	}

	// An early wakeup counts as the interval having elapsed.
	select {
	case <-w.after(interval - elapsed):
	case <-w.control.wake:
	}
	return true
}

func (w *Watcher) reload() {
	w.Liveness.reloading()

	cfg, err := w.loader.Reload()
	if err != nil {
		glog.Warningf("%s", err.Error())
		w.metrics.reload(false)
		return
	}

	w.cfg = cfg
	w.applyConfig()
	w.metrics.reload(true)
	glog.Infof("Config reloaded. New config after reload:\n\n%s", w.cfg)
}

func (w *Watcher) applyConfig() {
	w.metrics.setInterval(w.cfg.UpdateInterval)
	w.Liveness.watchdogInterval(w.cfg.UpdateInterval)
}

func (w *Watcher) observe(kind pressure.Kind, s pressure.Sample) {
	if w.cfg.LogPressures {
		glog.Infof("Current %s pressures: %s", kind.Label(), s)
	}
	w.metrics.observe(kind, s)
}

func (w *Watcher) shutdown() {
	w.teardown.Do(func() {
		glog.Infof("Terminating after %d intervals elapsed.", w.iterations)
		w.Liveness.stopping()

		for _, a := range w.alerts {
			a.Release()
		}
		if err := w.sink.Shutdown(); err != nil {
			glog.Errorf("error while shutting down notifier: %s", err.Error())
		}

		for _, r := range w.readers {
			if o, ok := r.(observedReader); ok {
				if c, ok := o.Reader.(io.Closer); ok {
					c.Close()
				}
			}
		}
		w.metrics.flush()
	})
}

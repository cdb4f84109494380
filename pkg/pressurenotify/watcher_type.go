package pressurenotify

import (
	"sync"
	"time"

	"github.com/werdnum/pressurenotify/pkg/config"
	"github.com/werdnum/pressurenotify/pkg/notify"
	"github.com/werdnum/pressurenotify/pkg/pressure"
)

// ConfigLoader rebuilds the config on a reload request.
type ConfigLoader interface {
	Reload() (*config.Config, error)
}

// Watcher owns all polling state: the config, one reader and one alert per
// resource, and the sink alerts are shown on. It is driven by Run.
type Watcher struct {
	Liveness *Liveness

	cfg     *config.Config
	loader  ConfigLoader
	readers [pressure.NumKinds]pressure.Reader
	alerts  [pressure.NumKinds]*AlertState
	sink    notify.Sink
	control *Control
	metrics *Metrics

	now   func() time.Time
	after func(time.Duration) <-chan time.Time

	iterations uint64
	teardown   sync.Once
}

// NewWatcher builds a watcher. A nil entry in readers is a resource without
// a pressure file.
func NewWatcher(cfg *config.Config, loader ConfigLoader, readers [pressure.NumKinds]pressure.Reader, sink notify.Sink, control *Control, metrics *Metrics) *Watcher {
	w := &Watcher{
		cfg:     cfg,
		loader:  loader,
		sink:    sink,
		control: control,
		metrics: metrics,
		now:     time.Now,
		after:   time.After,
	}

	for _, k := range pressure.Kinds() {
		if readers[k] != nil {
			w.readers[k] = observedReader{Reader: readers[k], kind: k, w: w}
		}
		w.alerts[k] = NewAlertState(k, sink, metrics)
	}
	return w
}

// observedReader logs and records every line read for a resource.
type observedReader struct {
	pressure.Reader
	kind pressure.Kind
	w    *Watcher
}

func (o observedReader) Visit(fn func(pressure.Sample) bool) error {
	return o.Reader.Visit(func(s pressure.Sample) bool {
		o.w.observe(o.kind, s)
		return fn(s)
	})
}

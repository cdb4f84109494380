package pressurenotify

import (
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/werdnum/pressurenotify/pkg/pressure"
)

const prometheusNamespace = "psi_notify"

// Metrics is written to a node_exporter textfile after every tick, if a
// path is configured.
type Metrics struct {
	registry *prometheus.Registry
	textfile string

	alertState      *prometheus.GaugeVec
	pressure        *prometheus.GaugeVec
	transitions     *prometheus.CounterVec
	checkErrors     *prometheus.CounterVec
	missedDeadlines prometheus.Counter
	reloads         *prometheus.CounterVec
	updateInterval  prometheus.Gauge
}

func NewMetrics(textfile string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
		alertState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      "alert_state",
			Help:      "alert state per resource: inactive (0), stabilising (1) or active (2)",
		}, []string{"resource"}),
		pressure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      "pressure_ratio",
			Help:      "last pressure reading per resource, class and averaging window",
		}, []string{"resource", "class", "window"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "alert_transitions_total",
			Help:      "number of alert state changes per resource and new state",
		}, []string{"resource", "state"}),
		checkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "check_errors_total",
			Help:      "number of ticks a resource could not be evaluated",
		}, []string{"resource"}),
		missedDeadlines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "missed_deadlines_total",
			Help:      "number of ticks that took longer than the update interval",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "config_reloads_total",
			Help:      "number of config reload attempts by result",
		}, []string{"result"}),
		updateInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      "update_interval_seconds",
			Help:      "configured polling interval",
		}),
	}

	m.registry.MustRegister(
		m.alertState,
		m.pressure,
		m.transitions,
		m.checkErrors,
		m.missedDeadlines,
		m.reloads,
		m.updateInterval,
	)
	return m
}

func (m *Metrics) setState(kind pressure.Kind, c Classification) {
	m.alertState.WithLabelValues(kind.Name()).Set(float64(c))
}

func (m *Metrics) transition(kind pressure.Kind, c Classification) {
	m.transitions.WithLabelValues(kind.Name(), c.String()).Inc()
}

func (m *Metrics) observe(kind pressure.Kind, s pressure.Sample) {
	for i, v := range s.Windows() {
		m.pressure.WithLabelValues(kind.Name(), string(s.Class), windowNames[i]).Set(v)
	}
}

func (m *Metrics) checkError(kind pressure.Kind) {
	m.checkErrors.WithLabelValues(kind.Name()).Inc()
}

func (m *Metrics) missedDeadline() {
	m.missedDeadlines.Inc()
}

func (m *Metrics) reload(ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.reloads.WithLabelValues(result).Inc()
}

func (m *Metrics) setInterval(seconds int) {
	m.updateInterval.Set(float64(seconds))
}

func (m *Metrics) flush() {
	if m.textfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		glog.Errorf("error while writing metrics to %s: %s", m.textfile, err.Error())
	}
}

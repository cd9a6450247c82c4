// Package metrics exposes the operational measurements of the scale as
// Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodscale"

// Outcome labels of a send attempt
const (
	OutcomeSuccess = "success"
	OutcomeStatus  = "bad_status"
	OutcomeError   = "error"
)

// Metrics denotes a Prometheus backed recorder
type Metrics struct {
	registry *prometheus.Registry

	edges        *prometheus.CounterVec
	renders      *prometheus.CounterVec
	weight       prometheus.Gauge
	sends        *prometheus.CounterVec
	sendDuration prometheus.Histogram
}

// Ensure Metrics implements scale.Recorder
var _ scale.Recorder = (*Metrics)(nil)

// New instantiates and registers all metrics on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		edges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "edges_total",
			Help:      "Button edges by action and debounce result.",
		}, []string{"action", "result"}),

		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "display",
			Name:      "row_renders_total",
			Help:      "Display row redraws.",
		}, []string{"row"}),

		weight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scale",
			Name:      "weight_grams",
			Help:      "Most recent weight reading.",
		}),

		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "sends_total",
			Help:      "Send attempts by outcome.",
		}, []string{"outcome"}),

		sendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "send_duration_seconds",
			Help:      "Duration of send attempts, including network association.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}

	m.registry.MustRegister(m.edges, m.renders, m.weight, m.sends, m.sendDuration)

	return m
}

// Handler returns an HTTP handler serving the metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// EdgeAccepted records an input edge that passed the debouncer
func (m *Metrics) EdgeAccepted(action scale.Action) {
	m.edges.WithLabelValues(action.String(), "accepted").Inc()
}

// EdgeRejected records an input edge that was suppressed as bounce
func (m *Metrics) EdgeRejected(action scale.Action) {
	m.edges.WithLabelValues(action.String(), "rejected").Inc()
}

// RowRendered records a redraw of a display row
func (m *Metrics) RowRendered(row int) {
	m.renders.WithLabelValues(strconv.Itoa(row)).Inc()
}

// WeightMeasured records the most recent weight reading
func (m *Metrics) WeightMeasured(grams int) {
	m.weight.Set(float64(grams))
}

// SendCompleted records the outcome of a send session
func (m *Metrics) SendCompleted(status int, err error, elapsed time.Duration) {
	m.sends.WithLabelValues(Outcome(status, err)).Inc()
	m.sendDuration.Observe(elapsed.Seconds())
}

// Outcome classifies the result of a send attempt
func Outcome(status int, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case status < 200 || status > 299:
		return OutcomeStatus
	default:
		return OutcomeSuccess
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"audiomatch/internal/crossref"
)

const namespace = "audiomatch"

// Run results recorded by audiomatch_match_runs_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder owns the collectors for one process.
type Recorder struct {
	registry *prometheus.Registry

	nativeDevices  prometheus.Gauge
	foreignDevices prometheus.Gauge
	matches        prometheus.Gauge
	unmatched      *prometheus.GaugeVec
	runs           *prometheus.CounterVec
	enumeration    *prometheus.HistogramVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		nativeDevices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "native_devices",
			Help:      "Native devices reported by the last enumeration",
		}),
		foreignDevices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "foreign_devices",
			Help:      "Foreign devices in the last loaded browser export",
		}),
		matches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matches",
			Help:      "Matched native/foreign pairs in the last report",
		}),
		unmatched: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unmatched_devices",
			Help:      "Unmatched devices in the last report",
		}, []string{"side"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_runs_total",
			Help:      "Total number of match runs",
		}, []string{"result"}),
		enumeration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enumeration_seconds",
			Help:      "Duration of native source invocations",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}
	r.registry.MustRegister(
		r.nativeDevices,
		r.foreignDevices,
		r.matches,
		r.unmatched,
		r.runs,
		r.enumeration,
	)
	return r
}

// ObserveReport updates the gauges from a finished report and counts a
// successful run.
func (r *Recorder) ObserveReport(report crossref.Report) {
	if r == nil {
		return
	}
	summary := report.Summary()
	r.nativeDevices.Set(float64(summary.NativeTotal))
	r.foreignDevices.Set(float64(summary.ForeignTotal))
	r.matches.Set(float64(summary.Matched))
	r.unmatched.WithLabelValues("native").Set(float64(summary.UnmatchedNative))
	r.unmatched.WithLabelValues("foreign").Set(float64(summary.UnmatchedForeign))
	r.runs.WithLabelValues(ResultOK).Inc()
}

// ObserveFailure counts a run that produced no report.
func (r *Recorder) ObserveFailure() {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(ResultError).Inc()
}

// ObserveEnumeration records one native source invocation. Its signature
// matches native.Observer.
func (r *Recorder) ObserveEnumeration(source string, elapsed time.Duration, _ error) {
	if r == nil {
		return
	}
	r.enumeration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Registry exposes the private registry for tests and embedding.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

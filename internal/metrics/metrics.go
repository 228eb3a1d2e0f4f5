// Package metrics exposes recorder observations as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
)

const namespace = "jupyterlab_log"

// Collector implements eventlog.MetricsHook on a private registry.
type Collector struct {
	registry *prometheus.Registry

	appended      prometheus.Counter
	appendedBytes prometheus.Counter
	rejected      *prometheus.CounterVec
	failures      prometheus.Counter
	appendLatency prometheus.Histogram
}

var _ eventlog.MetricsHook = (*Collector)(nil)

// New returns a Collector with its own registry, including the Go runtime
// and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "appended_total",
			Help:      "Events appended to a log file.",
		}),
		appendedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "appended_bytes_total",
			Help:      "Bytes appended to log files, newlines included.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "rejected_total",
			Help:      "Events refused because of the payload, by reason.",
		}, []string{"reason"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "io_failures_total",
			Help:      "Events that could not be written to disk.",
		}),
		appendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "append_duration_seconds",
			Help:      "Time from receiving a body to the line being on disk.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
	c.registry.MustRegister(
		c.appended,
		c.appendedBytes,
		c.rejected,
		c.failures,
		c.appendLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) ObserveAppend(elapsed time.Duration, bytes int) {
	c.appended.Inc()
	c.appendedBytes.Add(float64(bytes))
	c.appendLatency.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRejected(kind eventlog.Kind) {
	c.rejected.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) ObserveFailure() { c.failures.Inc() }

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

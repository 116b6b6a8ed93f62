package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements [PipelineHooks] and [CacheHooks] by recording
// Prometheus metrics.
//
// A CLI process is short-lived, so metrics are usually collected in a
// private registry and written with [WriteTextfile] for the node exporter's
// textfile collector.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	layers        prometheus.Counter
	steps         prometheus.Counter
	outputBytes   *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
	cacheWritten  *prometheus.CounterVec
}

// NewMetrics creates the slidie metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidie_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidie_stage_errors_total",
				Help: "Total number of failed pipeline stages",
			},
			[]string{"stage"},
		),
		layers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slidie_layers_loaded_total",
			Help: "Total number of layers loaded from decks",
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slidie_steps_resolved_total",
			Help: "Total number of slide steps resolved",
		}),
		outputBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidie_output_bytes_total",
				Help: "Total bytes of rendered output",
			},
			[]string{"format"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidie_cache_requests_total",
				Help: "Total number of output cache lookups",
			},
			[]string{"format", "result"},
		),
		cacheWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidie_cache_written_bytes_total",
				Help: "Total bytes written to the output cache",
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(m.stageDuration, m.stageErrors, m.layers, m.steps,
		m.outputBytes, m.cacheRequests, m.cacheWritten)
	return m
}

func (m *Metrics) stage(name string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, layers int, d time.Duration, err error) {
	m.stage("load", d, err)
	m.layers.Add(float64(layers))
}

func (m *Metrics) OnEvaluateComplete(_ context.Context, _ string, steps int, d time.Duration, err error) {
	m.stage("evaluate", d, err)
	m.steps.Add(float64(steps))
}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	m.stage("render", d, err)
	m.outputBytes.WithLabelValues(format).Add(float64(size))
}

func (m *Metrics) OnCacheHit(_ context.Context, format string) {
	m.cacheRequests.WithLabelValues(format, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, format string) {
	m.cacheRequests.WithLabelValues(format, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, format string, size int) {
	m.cacheWritten.WithLabelValues(format).Add(float64(size))
}

// WriteTextfile writes the metrics gathered by g to path in the Prometheus
// text format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

package metrics

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fraccalc/internal/sysmon"
)

// Namespace prefixes every metric name.
const Namespace = "fraccalc"

// Metrics owns a private Prometheus registry so several instances can coexist
// (one per Application, one per test).
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	operations     *prometheus.CounterVec
	errors         *prometheus.CounterVec
	batchDuration  prometheus.Histogram
	activeRequests prometheus.Gauge
	requests       *prometheus.CounterVec

	// Plain totals mirrored for Snapshot.
	totalOps    atomic.Uint64
	totalErrors atomic.Uint64

	mu      sync.Mutex
	perOp   map[string]uint64
	started time.Time
}

// New creates the collectors and registers them together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Number of evaluated expressions by operator.",
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operation_errors_total",
			Help:      "Number of expressions that failed to evaluate, by operator.",
		}, []string{"op"}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch evaluations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path.",
		}, []string{"path"}),
		perOp:   make(map[string]uint64),
		started: time.Now(),
	}
	m.registry.MustRegister(
		m.operations,
		m.errors,
		m.batchDuration,
		m.activeRequests,
		m.requests,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "system_cpu_percent",
			Help:      "System-wide CPU usage since the previous scrape.",
		}, sysmon.CPUPercent),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "system_memory_percent",
			Help:      "Share of system memory in use.",
		}, sysmon.MemPercent),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Observe counts one evaluation. It satisfies calc.Recorder.
func (m *Metrics) Observe(op string, err error) {
	m.operations.WithLabelValues(op).Inc()
	m.totalOps.Add(1)
	if err != nil {
		m.errors.WithLabelValues(op).Inc()
		m.totalErrors.Add(1)
	}
	m.mu.Lock()
	m.perOp[op]++
	m.mu.Unlock()
}

// ObserveBatch records the duration of one batch evaluation.
func (m *Metrics) ObserveBatch(d time.Duration) {
	m.batchDuration.Observe(d.Seconds())
}

// IncrementActiveRequests marks the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest counts a served HTTP request.
func (m *Metrics) CountRequest(path string) { m.requests.WithLabelValues(path).Inc() }

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler { return m.handler }

// WritePrometheus serves the current metrics on w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Snapshot is a point-in-time summary used by the REPL status command.
type Snapshot struct {
	Operations uint64
	Errors     uint64
	PerOp      map[string]uint64
	Uptime     time.Duration
	HeapAlloc  uint64 // bytes in use by the process
	NumGC      uint32
	System     sysmon.Stats
}

// Snapshot reads the counters and the current memory statistics.
func (m *Metrics) Snapshot() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.Lock()
	perOp := make(map[string]uint64, len(m.perOp))
	for op, n := range m.perOp {
		perOp[op] = n
	}
	m.mu.Unlock()

	return Snapshot{
		Operations: m.totalOps.Load(),
		Errors:     m.totalErrors.Load(),
		PerOp:      perOp,
		Uptime:     time.Since(m.started),
		HeapAlloc:  ms.HeapAlloc,
		NumGC:      ms.NumGC,
		System:     sysmon.Sample(context.Background()),
	}
}

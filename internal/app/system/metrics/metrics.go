// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard's Prometheus collectors. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Renders          *prometheus.CounterVec
	ChartRenders     *prometheus.CounterVec
	ChartCacheHits   prometheus.Counter
	SelectionChanges *prometheus.CounterVec
	ReportMissing    prometheus.Counter
	ReportDownloads  *prometheus.CounterVec
}

// New registers the dashboard collectors plus the Go and process
// collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "renders_total",
			Help:      "Dashboard recomputations by view (page, panels, api).",
		}, []string{"view"}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "chart_renders_total",
			Help:      "Chart PNGs rendered (cache misses) by chart name.",
		}, []string{"chart"}),
		ChartCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "chart_cache_hits_total",
			Help:      "Chart requests served from the PNG cache.",
		}),
		SelectionChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "selection_changes_total",
			Help:      "Selection updates by field (market, district).",
		}, []string{"field"}),
		ReportMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "report_missing_total",
			Help:      "Requests that found the PDF report absent.",
		}),
		ReportDownloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourismboard",
			Name:      "report_served_total",
			Help:      "PDF report responses by disposition (inline, attachment).",
		}, []string{"disposition"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Renders,
		m.ChartRenders,
		m.ChartCacheHits,
		m.SelectionChanges,
		m.ReportMissing,
		m.ReportDownloads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Nil-safe helpers so handlers built without metrics (tests, CLI) still work.

func (m *Metrics) Render(view string) {
	if m != nil {
		m.Renders.WithLabelValues(view).Inc()
	}
}

func (m *Metrics) ChartRendered(name string) {
	if m != nil {
		m.ChartRenders.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) ChartCacheHit() {
	if m != nil {
		m.ChartCacheHits.Inc()
	}
}

func (m *Metrics) SelectionChanged(field string) {
	if m != nil {
		m.SelectionChanges.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) ReportWasMissing() {
	if m != nil {
		m.ReportMissing.Inc()
	}
}

func (m *Metrics) ReportServed(disposition string) {
	if m != nil {
		m.ReportDownloads.WithLabelValues(disposition).Inc()
	}
}

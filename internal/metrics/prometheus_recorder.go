package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "glossarybuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	terms         *prom.GaugeVec
	pages         prom.Counter
	links         prom.Counter
}

// NewPrometheusRecorder constructs and registers the build metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		terms: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "terms",
			Help:      "Terms in the last glossary build",
		}, []string{"kind"}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Term pages written",
		}),
		links: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_rendered_total",
			Help:      "Cross-links rendered into term pages",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.terms, pr.pages, pr.links)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, replacing the file atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetTerms(total, distinct int) {
	if p == nil {
		return
	}
	p.terms.WithLabelValues("total").Set(float64(total))
	p.terms.WithLabelValues("distinct").Set(float64(distinct))
}

func (p *PrometheusRecorder) AddPagesWritten(n int) {
	if p == nil {
		return
	}
	p.pages.Add(float64(n))
}

func (p *PrometheusRecorder) AddLinksRendered(n int) {
	if p == nil {
		return
	}
	p.links.Add(float64(n))
}

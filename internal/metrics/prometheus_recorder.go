package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "how2use"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	documentDuration *prom.HistogramVec
	runDuration      prom.Histogram
	documentOutcome  *prom.CounterVec
	assertions       *prom.CounterVec
	codeBlocks       *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg, or
// with a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		documentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time spent running and finalizing one document",
			Buckets:   prom.DefBuckets,
		}, []string{"document"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total duration of a generation run",
			Buckets:   prom.DefBuckets,
		}),
		documentOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_outcomes_total",
			Help:      "Documents finalized by outcome",
		}, []string{"document", "outcome"}),
		assertions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assertion_failures_total",
			Help:      "Failed assertions per document",
		}, []string{"document"}),
		codeBlocks: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "code_blocks",
			Help:      "Sealed code blocks in the last run of a document",
		}, []string{"document"}),
	}
	reg.MustRegister(pr.documentDuration, pr.runDuration, pr.documentOutcome, pr.assertions, pr.codeBlocks)
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveDocumentDuration(document string, d time.Duration) {
	p.documentDuration.WithLabelValues(document).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentOutcome(document string, outcome OutcomeLabel) {
	p.documentOutcome.WithLabelValues(document, string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddAssertionFailures(document string, n int) {
	if n <= 0 {
		return
	}
	p.assertions.WithLabelValues(document).Add(float64(n))
}

func (p *PrometheusRecorder) SetCodeBlocks(document string, n int) {
	p.codeBlocks.WithLabelValues(document).Set(float64(n))
}

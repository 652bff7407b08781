package metrics

import "time"

// OutcomeLabel enumerates document outcomes for counters.
type OutcomeLabel string

const (
	OutcomePassed OutcomeLabel = "passed"
	OutcomeFailed OutcomeLabel = "failed"
)

// Recorder defines observability hooks for generation runs. NoopRecorder is the
// default so callers never need nil checks.
type Recorder interface {
	ObserveDocumentDuration(document string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncDocumentOutcome(document string, outcome OutcomeLabel)
	AddAssertionFailures(document string, n int)
	SetCodeBlocks(document string, n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) IncDocumentOutcome(string, OutcomeLabel)        {}
func (NoopRecorder) AddAssertionFailures(string, int)               {}
func (NoopRecorder) SetCodeBlocks(string, int)                      {}

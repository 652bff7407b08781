package registry

import (
	stderrors "errors"
	"time"

	"git.home.luguber.info/inful/how2use/document"
)

// Report collects the outcome of one run.
type Report struct {
	RunID    string
	Results  []document.Result
	Duration time.Duration
}

// Passed counts documents that were written.
func (r *Report) Passed() int { return r.count(document.Passed) }

// Failed counts documents that were discarded.
func (r *Report) Failed() int { return r.count(document.Failed) }

// Result returns the result of the named document.
func (r *Report) Result(name string) (document.Result, bool) {
	for _, res := range r.Results {
		if res.Document == name {
			return res, true
		}
	}
	return document.Result{}, false
}

// Err joins the failures of every failed document, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Outcome == document.Failed {
			errs = append(errs, res.Err())
		}
	}
	return stderrors.Join(errs...)
}

func (r *Report) count(o document.Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

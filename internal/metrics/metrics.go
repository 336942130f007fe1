// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the cleaning pipeline.
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data (histograms).
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - Concrete metric systems live in subpackages (prompush, datadog) so the
//     rest of the codebase depends only on this interface.
//
// The pipeline records one step metric per stage (read, concat, normalize,
// write) plus row and file counters.
package metrics

import "time"

// Metric names emitted by the Record helpers.
const (
	StepTotal           = "campaign_step_total"
	StepDurationSeconds = "campaign_step_duration_seconds"
	RowsTotal           = "campaign_rows_total"
	FilesTotal          = "campaign_files_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Reset restores the no-op backend.
func Reset() {
	backend = nopBackend{}
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one pipeline step.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows increments the row counter for the given job and kind.
//
// Kinds used by the pipeline:
//   - "read": rows parsed from archives
//   - "normalized": rows leaving the rule chain
//   - "written": rows per output file
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordFiles increments the file counter, e.g. kind "archive" for inputs
// read and "output" for files written.
func RecordFiles(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(FilesTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

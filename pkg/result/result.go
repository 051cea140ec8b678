// Package result defines the typed test outcome model: per-step results,
// whole-run results, and the builder that accumulates them during execution.
package result

import "time"

// Status is the outcome of a step or a whole test run.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// TestStep is one executed step within a test run.
// Screenshot holds a base64-encoded PNG when the agent captured one.
type TestStep struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	Duration     float64   `json:"duration"` // seconds
	Screenshot   string    `json:"screenshot,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// TestResult is the immutable outcome of one test case execution.
// Field names are a serialization contract: report files, the history
// scanner and external tooling all depend on them.
type TestResult struct {
	TestID          string     `json:"test_id"`
	TestName        string     `json:"test_name"`
	TestDescription string     `json:"test_description"`
	Status          Status     `json:"status"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Duration        float64    `json:"duration"` // seconds
	Steps           []TestStep `json:"steps"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	Tags            []string   `json:"tags"`
}

// StepCounts tallies steps by status.
func (r *TestResult) StepCounts() (passed, failed, skipped int) {
	for _, s := range r.Steps {
		switch s.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return
}

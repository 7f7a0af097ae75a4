// Package report records query resolutions as JSON and JUnit XML.
package report

import "time"

// Version is the report schema version.
const Version = "1.0.0"

// Status of a query resolution.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// IsTerminal reports whether the status is final.
func (s Status) IsTerminal() bool {
	return s == StatusPassed || s == StatusFailed
}

// Element is what a resolution found for one element.
type Element struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Result is the outcome of resolving one query.
type Result struct {
	Query       string    `json:"query,omitempty"`
	Description string    `json:"description"`
	Session     string    `json:"session,omitempty"`
	Status      Status    `json:"status"`
	Elements    []Element `json:"elements,omitempty"`
	Error       string    `json:"error,omitempty"`
	ErrorKind   string    `json:"errorKind,omitempty"`
	CauseKind   string    `json:"causeKind,omitempty"` // innermost kind when it differs from ErrorKind
	DurationMs  int64     `json:"durationMs"`
}

// Summary counts results by status.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Report is a complete run.
type Report struct {
	Version   string    `json:"version"`
	Status    Status    `json:"status"`
	Driver    string    `json:"driver"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Summary   Summary   `json:"summary"`
	Results   []Result  `json:"results"`
}

// New builds a report over results and computes its summary and status.
func New(driver string, start, end time.Time, results []Result) *Report {
	r := &Report{
		Version:   Version,
		Driver:    driver,
		StartTime: start,
		EndTime:   end,
		Results:   results,
		Status:    StatusPassed,
	}
	for _, res := range results {
		r.Summary.Total++
		switch res.Status {
		case StatusPassed:
			r.Summary.Passed++
		case StatusFailed:
			r.Summary.Failed++
		}
	}
	if r.Summary.Failed > 0 {
		r.Status = StatusFailed
	}
	return r
}

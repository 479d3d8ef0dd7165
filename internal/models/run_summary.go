package models

import "time"

// RunStatus is the terminal state of a pipeline run
type RunStatus string

const (
	RunStatusCompleted   RunStatus = "COMPLETED"
	RunStatusInterrupted RunStatus = "INTERRUPTED"
)

// RunSummary collects per-stage counts for narration and export metadata.
type RunSummary struct {
	Domain           string        `json:"domain"`
	Status           RunStatus     `json:"status"`
	SourcesQueried   int           `json:"sources_queried"`
	SourcesFailed    int           `json:"sources_failed"`
	Candidates       int           `json:"candidates"`
	Resolved         int           `json:"resolved"`
	Probed           int           `json:"probed"`
	Responsive       int           `json:"responsive"`
	WildcardDetected bool          `json:"wildcard_detected"`
	WildcardIP       string        `json:"wildcard_ip,omitempty"`
	Filtered         int           `json:"filtered"`
	Results          int           `json:"results"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
}

// Finish stamps the end time and duration
func (s *RunSummary) Finish(status RunStatus) {
	s.Status = status
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

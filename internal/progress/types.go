package progress

import "time"

// Stage names a pipeline phase
type Stage string

const (
	StageDiscovery Stage = "discovery"
	StageResolve   Stage = "dns"
	StageProbe     Stage = "http"
	StageFilter    Stage = "wildcard-filter"
)

// ProgressStatus is the state of a run
type ProgressStatus string

const (
	ProgressStatusIdle      ProgressStatus = "IDLE"
	ProgressStatusRunning   ProgressStatus = "RUNNING"
	ProgressStatusComplete  ProgressStatus = "COMPLETE"
	ProgressStatusCancelled ProgressStatus = "CANCELLED"
)

// ProgressInfo is a snapshot of the current stage
type ProgressInfo struct {
	Status         ProgressStatus `json:"status"`
	Stage          Stage          `json:"stage"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"`
	Message        string         `json:"message"`
	StartTime      time.Time      `json:"start_time"`
	StageStartTime time.Time      `json:"stage_start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
}

// UpdateETA estimates the time left in the current stage from its throughput
func (pi *ProgressInfo) UpdateETA() {
	pi.EstimatedETA = 0
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		return
	}

	elapsed := pi.LastUpdateTime.Sub(pi.StageStartTime)
	if elapsed <= 0 {
		return
	}

	remaining := float64(pi.Total - pi.Current)
	if remaining <= 0 {
		return
	}

	rate := float64(pi.Current) / elapsed.Seconds()
	pi.EstimatedETA = time.Duration(remaining / rate * float64(time.Second))
}

// GetPercentage returns completion of the current stage, capped at 100
func (pi *ProgressInfo) GetPercentage() float64 {
	if pi.Total <= 0 {
		return 0.0
	}
	percentage := float64(pi.Current) * 100 / float64(pi.Total)
	if percentage > 100 {
		return 100.0
	}
	return percentage
}

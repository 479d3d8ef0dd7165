package progress

import (
	"sync"
	"time"
)

// Progress tracks the pipeline stage by stage. Safe for concurrent use.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
}

// NewProgress creates an idle tracker
func NewProgress() *Progress {
	return &Progress{info: ProgressInfo{Status: ProgressStatusIdle}}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// StartStage switches to stage and resets its counters. It reports whether the stage changed.
func (p *Progress) StartStage(stage Stage, total int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.info.Status == ProgressStatusIdle {
		p.info.StartTime = now
		p.info.Status = ProgressStatusRunning
	}

	changed := p.info.Stage != stage
	p.info.Stage = stage
	p.info.Current = 0
	p.info.Total = total
	p.info.Message = ""
	p.info.StageStartTime = now
	p.info.LastUpdateTime = now
	p.info.EstimatedETA = 0
	return changed
}

// Update records progress within stage. Counts for another stage are ignored.
func (p *Progress) Update(stage Stage, current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info.Stage != stage || current < p.info.Current {
		return
	}
	p.info.Current = current
	p.info.Total = total
	p.info.LastUpdateTime = time.Now()
	p.info.UpdateETA()
}

// SetStatus sets the run status.
func (p *Progress) SetStatus(status ProgressStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.Message = message
	p.info.LastUpdateTime = time.Now()
	p.info.EstimatedETA = 0
}

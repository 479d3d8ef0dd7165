package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProgressDisplayConfig configures the display loop
type ProgressDisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
}

// ProgressDisplayManager logs the tracker periodically and on stage changes.
type ProgressDisplayManager struct {
	progress       *Progress
	mutex          sync.Mutex
	logger         zerolog.Logger
	config         ProgressDisplayConfig
	isRunning      bool
	stopChan       chan struct{}
	loopDone       chan struct{}
	triggerDisplay chan struct{}
	lastDisplayed  string
}

// NewProgressDisplayManager creates a display manager; a nil config means defaults.
func NewProgressDisplayManager(logger zerolog.Logger, config *ProgressDisplayConfig) *ProgressDisplayManager {
	if config == nil {
		config = &ProgressDisplayConfig{
			DisplayInterval:   3 * time.Second,
			EnableProgress:    true,
			ShowETAEstimation: true,
		}
	}
	if config.DisplayInterval <= 0 {
		config.DisplayInterval = 3 * time.Second
	}

	return &ProgressDisplayManager{
		progress:       NewProgress(),
		logger:         logger.With().Str("component", "Progress").Logger(),
		config:         *config,
		triggerDisplay: make(chan struct{}, 1),
	}
}

// Progress returns the underlying tracker
func (pdm *ProgressDisplayManager) Progress() *Progress {
	return pdm.progress
}

// Start launches the display loop. It is a no-op when disabled or already running.
func (pdm *ProgressDisplayManager) Start() {
	pdm.mutex.Lock()
	defer pdm.mutex.Unlock()

	if pdm.isRunning {
		return
	}
	if !pdm.config.EnableProgress {
		pdm.logger.Debug().Msg("Progress display disabled in configuration")
		return
	}

	pdm.isRunning = true
	pdm.stopChan = make(chan struct{})
	pdm.loopDone = make(chan struct{})
	go pdm.displayLoop(time.NewTicker(pdm.config.DisplayInterval))
}

// Stop ends the display loop and waits for it to exit.
func (pdm *ProgressDisplayManager) Stop() {
	pdm.mutex.Lock()
	if !pdm.isRunning {
		pdm.mutex.Unlock()
		return
	}
	pdm.isRunning = false
	close(pdm.stopChan)
	done := pdm.loopDone
	pdm.mutex.Unlock()

	<-done
}

// StartStage switches stages and forces a display line
func (pdm *ProgressDisplayManager) StartStage(stage Stage, total int64) {
	if pdm.progress.StartStage(stage, total) {
		pdm.trigger()
	}
}

// SetStatus sets the run status and forces a display line
func (pdm *ProgressDisplayManager) SetStatus(status ProgressStatus, message string) {
	pdm.progress.SetStatus(status, message)
	pdm.trigger()
}

// Reporter returns an Update(current, total) sink bound to stage
func (pdm *ProgressDisplayManager) Reporter(stage Stage) *StageReporter {
	return &StageReporter{progress: pdm.progress, stage: stage}
}

func (pdm *ProgressDisplayManager) trigger() {
	select {
	case pdm.triggerDisplay <- struct{}{}:
	default:
	}
}

func (pdm *ProgressDisplayManager) displayLoop(ticker *time.Ticker) {
	defer close(pdm.loopDone)
	defer ticker.Stop()

	for {
		select {
		case <-pdm.stopChan:
			pdm.displayProgress()
			return
		case <-ticker.C:
			pdm.displayProgress()
		case <-pdm.triggerDisplay:
			pdm.displayProgress()
		}
	}
}

func (pdm *ProgressDisplayManager) displayProgress() {
	output := pdm.format(pdm.progress.Info())
	if output == "" || output == pdm.lastDisplayed {
		return
	}
	pdm.lastDisplayed = output
	pdm.logger.Info().Msg(output)
}

func (pdm *ProgressDisplayManager) format(info ProgressInfo) string {
	if info.Status == ProgressStatusIdle {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s %s", statusIcon(info.Status), info.Stage))

	if info.Total > 0 {
		percentage := info.GetPercentage()
		builder.WriteString(fmt.Sprintf(" %s %.1f%% (%d/%d)", progressBar(percentage, 20), percentage, info.Current, info.Total))
	}

	if pdm.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		builder.WriteString(fmt.Sprintf(" | ETA: %s", formatDuration(info.EstimatedETA)))
	}

	if info.Message != "" {
		builder.WriteString(fmt.Sprintf(" | %s", info.Message))
	}
	return builder.String()
}

// StageReporter forwards item counts for one stage
type StageReporter struct {
	progress *Progress
	stage    Stage
}

// Update records current of total items done
func (r *StageReporter) Update(current, total int64) {
	r.progress.Update(r.stage, current, total)
}

func statusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusCancelled:
		return "🚫"
	default:
		return "💤"
	}
}

func progressBar(percentage float64, width int) string {
	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}

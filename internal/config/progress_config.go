package config

import "time"

// ProgressConfig represents progress display configuration
type ProgressConfig struct {
	DisplayInterval int  `json:"display_interval,omitempty" yaml:"display_interval,omitempty" validate:"min=1,max=60"`
	EnableProgress  bool `json:"enable_progress" yaml:"enable_progress"`
}

// NewDefaultProgressConfig creates default progress configuration
func NewDefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		DisplayInterval: DefaultProgressDisplayIntervalSecs,
		EnableProgress:  true,
	}
}

// GetDisplayIntervalDuration returns display interval as time.Duration
func (pc *ProgressConfig) GetDisplayIntervalDuration() time.Duration {
	return time.Duration(pc.DisplayInterval) * time.Second
}

package config

import "time"

// ResourceLimiterConfig holds configuration for the resource monitor
type ResourceLimiterConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"min=0"`
	MaxGoroutines      int     `json:"max_goroutines,omitempty" yaml:"max_goroutines,omitempty" validate:"min=0"`
	CheckIntervalSecs  int     `json:"check_interval_secs,omitempty" yaml:"check_interval_secs,omitempty" validate:"min=1"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"min=0,max=1"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:            true,
		MaxMemoryMB:        DefaultResourceMaxMemoryMB,
		MaxGoroutines:      DefaultResourceMaxGoroutines,
		CheckIntervalSecs:  DefaultResourceCheckIntervalSecs,
		SystemMemThreshold: DefaultResourceSystemMemThreshold,
	}
}

// GetCheckInterval returns the sampling interval
func (rc *ResourceLimiterConfig) GetCheckInterval() time.Duration {
	return time.Duration(rc.CheckIntervalSecs) * time.Second
}

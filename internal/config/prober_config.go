package config

import "time"

// ProberConfig controls HTTP fingerprinting.
type ProberConfig struct {
	Concurrency        int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=1,max=1000"`
	TimeoutSecs        int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	MaxRedirects       int      `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0,max=20"`
	MaxBodyBytes       int64    `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"min=1"`
	Schemes            []string `json:"schemes,omitempty" yaml:"schemes,omitempty" validate:"min=1,dive,oneof=https http"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	UserAgent          string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultProberConfig creates default prober configuration
func NewDefaultProberConfig() ProberConfig {
	return ProberConfig{
		Concurrency:        DefaultProberConcurrency,
		TimeoutSecs:        DefaultProberTimeoutSecs,
		MaxRedirects:       DefaultProberMaxRedirects,
		MaxBodyBytes:       DefaultProberMaxBodyBytes,
		Schemes:            append([]string(nil), DefaultProbeSchemes...),
		InsecureSkipVerify: true,
		UserAgent:          DefaultSourceUserAgent,
	}
}

// GetTimeout returns the per-request timeout
func (pc *ProberConfig) GetTimeout() time.Duration {
	return time.Duration(pc.TimeoutSecs) * time.Second
}

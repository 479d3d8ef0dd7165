package config

import "time"

// DiscoveryConfig controls the passive sources and the built-in wordlist.
type DiscoveryConfig struct {
	Sources           []string `json:"sources,omitempty" yaml:"sources,omitempty" validate:"dive,required"`
	Wordlist          []string `json:"wordlist,omitempty" yaml:"wordlist,omitempty" validate:"dive,required,excludesall=*"`
	SourceTimeoutSecs int      `json:"source_timeout_secs,omitempty" yaml:"source_timeout_secs,omitempty" validate:"min=1"`
	UserAgent         string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty" validate:"required"`
}

// NewDefaultDiscoveryConfig creates default discovery configuration
func NewDefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Sources:           append([]string(nil), DefaultSources...),
		Wordlist:          append([]string(nil), DefaultWordlist...),
		SourceTimeoutSecs: DefaultSourceTimeoutSecs,
		UserAgent:         DefaultSourceUserAgent,
	}
}

// GetSourceTimeout returns the per-source request timeout
func (dc *DiscoveryConfig) GetSourceTimeout() time.Duration {
	return time.Duration(dc.SourceTimeoutSecs) * time.Second
}

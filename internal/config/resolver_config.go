package config

import "time"

// ResolverConfig controls DNS verification.
type ResolverConfig struct {
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=1,max=5000"`
	TimeoutSecs int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	Nameservers []string `json:"nameservers,omitempty" yaml:"nameservers,omitempty" validate:"dive,nameserver"`

	// QueriesPerSecond caps the global query rate; 0 disables the cap.
	QueriesPerSecond float64 `json:"queries_per_second,omitempty" yaml:"queries_per_second,omitempty" validate:"min=0"`
}

// NewDefaultResolverConfig creates default resolver configuration
func NewDefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Concurrency:      DefaultResolverConcurrency,
		TimeoutSecs:      DefaultResolverTimeoutSecs,
		Nameservers:      append([]string(nil), DefaultNameservers...),
		QueriesPerSecond: DefaultResolverQueriesPerSecond,
	}
}

// GetTimeout returns the per-query timeout
func (rc *ResolverConfig) GetTimeout() time.Duration {
	return time.Duration(rc.TimeoutSecs) * time.Second
}

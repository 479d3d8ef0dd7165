package wildcard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/models"
	"github.com/sl4desec/subpeek/internal/resolver"
)

// HostProber fingerprints a single host; prober.Prober satisfies it.
type HostProber interface {
	ProbeHost(ctx context.Context, host, ip string) models.Fingerprint
}

// LabelFunc returns the probe label for a run
type LabelFunc func(prefix string) string

// UnixNanoLabel builds "<prefix>-<unix nanos>"
func UnixNanoLabel(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// Profiler fingerprints a hostname that should not exist under the domain.
type Profiler struct {
	resolver resolver.Resolver
	prober   HostProber
	prefix   string
	label    LabelFunc
	enabled  bool
	logger   zerolog.Logger
}

// NewProfiler creates an enabled profiler using UnixNanoLabel
func NewProfiler(r resolver.Resolver, p HostProber, prefix string, logger zerolog.Logger) *Profiler {
	return &Profiler{
		resolver: r,
		prober:   p,
		prefix:   prefix,
		label:    UnixNanoLabel,
		enabled:  true,
		logger:   logger.With().Str("component", "WildcardProfiler").Logger(),
	}
}

// WithLabelFunc replaces the label generator
func (p *Profiler) WithLabelFunc(fn LabelFunc) *Profiler {
	p.label = fn
	return p
}

// WithEnabled turns profiling on or off
func (p *Profiler) WithEnabled(enabled bool) *Profiler {
	p.enabled = enabled
	return p
}

// Profile returns nil when profiling is disabled or the probe name does not resolve.
func (p *Profiler) Profile(ctx context.Context, domain string) *models.BaselineProfile {
	if !p.enabled {
		p.logger.Debug().Msg("Wildcard profiling disabled")
		return nil
	}

	host := p.label(p.prefix) + "." + domain
	ip, ok := p.resolver.Resolve(ctx, host)
	if !ok {
		p.logger.Info().Str("host", host).Msg("No wildcard DNS detected")
		return nil
	}

	fp := p.prober.ProbeHost(ctx, host, ip)
	baseline := models.NewBaselineProfile(fp)

	event := p.logger.Warn().Str("host", host).Str("ip", ip)
	if fp.StatusCode != nil {
		event = event.Int("status_code", *fp.StatusCode)
	}
	if fp.Title != nil {
		event = event.Str("title", *fp.Title)
	}
	event.Msg("Wildcard DNS detected, filtering look-alike hosts")

	return baseline
}

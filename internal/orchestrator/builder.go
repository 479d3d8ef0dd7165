package orchestrator

import (
	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/common"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/discovery"
	"github.com/sl4desec/subpeek/internal/prober"
	"github.com/sl4desec/subpeek/internal/resolver"
	"github.com/sl4desec/subpeek/internal/sources"
	"github.com/sl4desec/subpeek/internal/wildcard"
)

// NewFromConfig builds every stage from a validated configuration.
func NewFromConfig(cfg *config.GlobalConfig, logger zerolog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, common.NewValidationError("config", cfg, "global config cannot be nil")
	}

	sourceClient, err := sources.NewHTTPClient(cfg.DiscoveryConfig, logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to create source HTTP client")
	}
	srcs, err := sources.New(cfg.DiscoveryConfig.Sources, sourceClient)
	if err != nil {
		return nil, common.WrapError(err, "failed to configure sources")
	}
	aggregator := discovery.NewAggregator(srcs, cfg.DiscoveryConfig.Wordlist, cfg.DiscoveryConfig.GetSourceTimeout(), logger)

	dnsResolver, err := resolver.NewDNSResolver(cfg.ResolverConfig, logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to create DNS resolver")
	}
	verifier := resolver.NewVerifier(dnsResolver, cfg.ResolverConfig.Concurrency, logger)

	fetcher, err := prober.NewFetcher(cfg.ProberConfig, logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to create probe HTTP client")
	}
	prb := prober.NewProber(fetcher, cfg.ProberConfig.Schemes, cfg.ProberConfig.Concurrency, logger)

	profiler := wildcard.NewProfiler(verifier, prb, cfg.WildcardConfig.LabelPrefix, logger).
		WithEnabled(cfg.WildcardConfig.Enabled)
	matcher := wildcard.Matcher{Tolerance: cfg.WildcardConfig.LengthTolerance}

	return NewOrchestrator(aggregator, verifier, prb, profiler, matcher, logger), nil
}

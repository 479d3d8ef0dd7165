package orchestrator

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/common"
	"github.com/sl4desec/subpeek/internal/discovery"
	"github.com/sl4desec/subpeek/internal/models"
	"github.com/sl4desec/subpeek/internal/progress"
	"github.com/sl4desec/subpeek/internal/prober"
	"github.com/sl4desec/subpeek/internal/resolver"
	"github.com/sl4desec/subpeek/internal/wildcard"
)

// Orchestrator runs discovery, DNS verification, HTTP probing and wildcard
// filtering as strict barriers. The wildcard profiler runs alongside them.
type Orchestrator struct {
	aggregator *discovery.Aggregator
	verifier   *resolver.Verifier
	prober     *prober.Prober
	profiler   *wildcard.Profiler
	matcher    wildcard.Matcher
	progress   *progress.ProgressDisplayManager
	logger     zerolog.Logger
}

// NewOrchestrator wires already-built stages.
func NewOrchestrator(
	aggregator *discovery.Aggregator,
	verifier *resolver.Verifier,
	prb *prober.Prober,
	profiler *wildcard.Profiler,
	matcher wildcard.Matcher,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		aggregator: aggregator,
		verifier:   verifier,
		prober:     prb,
		profiler:   profiler,
		matcher:    matcher,
		logger:     logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// WithProgress attaches a display manager and routes every stage's counts to it.
func (o *Orchestrator) WithProgress(pdm *progress.ProgressDisplayManager) *Orchestrator {
	o.progress = pdm
	if pdm == nil {
		return o
	}
	o.aggregator.WithReporter(pdm.Reporter(progress.StageDiscovery))
	o.verifier.WithReporter(pdm.Reporter(progress.StageResolve))
	o.prober.WithReporter(pdm.Reporter(progress.StageProbe))
	return o
}

// Run executes the pipeline for domain and returns the surviving fingerprints
// sorted by subdomain. The only error is cancellation of ctx, in which case
// no results are returned.
func (o *Orchestrator) Run(ctx context.Context, domain string) ([]models.Fingerprint, *models.RunSummary, error) {
	summary := &models.RunSummary{Domain: domain, StartTime: time.Now()}

	var baseline *models.BaselineProfile
	profileDone := make(chan struct{})
	go func() {
		defer close(profileDone)
		baseline = o.profiler.Profile(ctx, domain)
	}()

	o.logger.Info().Str("domain", domain).Msg("Starting subdomain discovery")

	o.startStage(progress.StageDiscovery, 0)
	candidates, sourceResults := o.aggregator.DiscoverWithStats(ctx, domain)
	summary.SourcesQueried = len(sourceResults)
	for _, r := range sourceResults {
		if r.Err != nil {
			summary.SourcesFailed++
		}
	}
	summary.Candidates = len(candidates)
	if err := o.checkCancelled(ctx, summary, profileDone, "discovery"); err != nil {
		return nil, summary, err
	}

	o.startStage(progress.StageResolve, int64(len(candidates)))
	resolved := o.verifier.Verify(ctx, candidates)
	summary.Resolved = len(resolved)
	if err := o.checkCancelled(ctx, summary, profileDone, "dns verification"); err != nil {
		return nil, summary, err
	}

	o.startStage(progress.StageProbe, int64(len(resolved)))
	fingerprints := o.prober.Probe(ctx, resolved)
	summary.Probed = len(fingerprints)
	for i := range fingerprints {
		if fingerprints[i].Responded() {
			summary.Responsive++
		}
	}

	<-profileDone
	if err := o.checkCancelled(ctx, summary, nil, "http probing"); err != nil {
		return nil, summary, err
	}

	o.startStage(progress.StageFilter, int64(len(fingerprints)))
	results, filtered := o.matcher.Filter(fingerprints, baseline)
	if baseline != nil {
		summary.WildcardDetected = true
		if baseline.IP != nil {
			summary.WildcardIP = *baseline.IP
		}
	}
	summary.Filtered = filtered

	sort.Slice(results, func(i, j int) bool {
		return results[i].Subdomain < results[j].Subdomain
	})
	summary.Results = len(results)
	summary.Finish(models.RunStatusCompleted)

	if o.progress != nil {
		o.progress.SetStatus(progress.ProgressStatusComplete, "pipeline finished")
	}

	o.logger.Info().
		Str("domain", domain).
		Int("candidates", summary.Candidates).
		Int("resolved", summary.Resolved).
		Int("filtered", summary.Filtered).
		Int("results", summary.Results).
		Dur("duration", summary.Duration).
		Msg("Pipeline finished")

	return results, summary, nil
}

func (o *Orchestrator) startStage(stage progress.Stage, total int64) {
	if o.progress != nil {
		o.progress.StartStage(stage, total)
	}
}

// checkCancelled waits for the profiler (when profileDone is non-nil) before
// reporting cancellation, so Run never leaves it running.
func (o *Orchestrator) checkCancelled(ctx context.Context, summary *models.RunSummary, profileDone <-chan struct{}, stage string) error {
	if ctx.Err() == nil {
		return nil
	}
	if profileDone != nil {
		<-profileDone
	}

	summary.Finish(models.RunStatusInterrupted)
	if o.progress != nil {
		o.progress.SetStatus(progress.ProgressStatusCancelled, "interrupted during "+stage)
	}
	o.logger.Warn().Str("stage", stage).Msg("Pipeline interrupted")
	return common.WrapError(ctx.Err(), "pipeline interrupted during "+stage)
}

package discovery

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/sources"
	"golang.org/x/sync/errgroup"
)

// StageReporter receives stage progress. The orchestrator wires it to the progress display.
type StageReporter interface {
	Update(current, total int64)
}

// SourceResult is what one source contributed to a run
type SourceResult struct {
	Source string
	Names  []string
	Err    error
}

// Aggregator queries passive sources and merges them with the wordlist.
type Aggregator struct {
	sources       []sources.Source
	wordlist      []string
	sourceTimeout time.Duration
	logger        zerolog.Logger
	reporter      StageReporter
}

// NewAggregator copies wordlist so later changes by the caller have no effect.
func NewAggregator(srcs []sources.Source, wordlist []string, sourceTimeout time.Duration, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		sources:       append([]sources.Source(nil), srcs...),
		wordlist:      append([]string(nil), wordlist...),
		sourceTimeout: sourceTimeout,
		logger:        logger.With().Str("component", "Aggregator").Logger(),
	}
}

// WithReporter attaches a progress reporter
func (a *Aggregator) WithReporter(r StageReporter) *Aggregator {
	a.reporter = r
	return a
}

// Discover returns the sorted candidate set for domain. Failing sources
// contribute nothing; Discover itself never fails.
func (a *Aggregator) Discover(ctx context.Context, domain string) []string {
	names, _ := a.DiscoverWithStats(ctx, domain)
	return names
}

// DiscoverWithStats is Discover plus the per-source outcome, in source order.
func (a *Aggregator) DiscoverWithStats(ctx context.Context, domain string) ([]string, []SourceResult) {
	results := a.fetchAll(ctx, domain)

	set := make(map[string]struct{})
	for _, r := range results {
		for _, name := range Normalize(domain, r.Names) {
			set[name] = struct{}{}
		}
	}
	for _, name := range Expand(domain, a.wordlist) {
		set[name] = struct{}{}
	}

	candidates := make([]string, 0, len(set))
	for name := range set {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	a.logger.Info().
		Str("domain", domain).
		Int("sources", len(a.sources)).
		Int("candidates", len(candidates)).
		Msg("Candidate discovery finished")

	return candidates, results
}

// fetchAll runs every source concurrently; each goroutine owns one slot of results.
func (a *Aggregator) fetchAll(ctx context.Context, domain string) []SourceResult {
	results := make([]SourceResult, len(a.sources))
	var g errgroup.Group
	var done atomic.Int64

	for i, src := range a.sources {
		g.Go(func() error {
			names, err := a.fetchOne(ctx, src, domain)
			results[i] = SourceResult{Source: src.Name(), Names: names, Err: err}
			if a.reporter != nil {
				a.reporter.Update(done.Add(1), int64(len(a.sources)))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *Aggregator) fetchOne(ctx context.Context, src sources.Source, domain string) ([]string, error) {
	fetchCtx := ctx
	if a.sourceTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, a.sourceTimeout)
		defer cancel()
	}

	start := time.Now()
	names, err := src.Fetch(fetchCtx, domain)
	if err != nil {
		srcErr := &sources.SourceError{Source: src.Name(), Err: err}
		a.logger.Warn().Err(srcErr).Str("source", src.Name()).Msg("Source failed, skipping")
		return nil, srcErr
	}

	a.logger.Debug().
		Str("source", src.Name()).
		Int("names", len(names)).
		Dur("took", time.Since(start)).
		Msg("Source returned")
	return names, nil
}

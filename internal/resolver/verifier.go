package resolver

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/models"
	"golang.org/x/sync/errgroup"
)

// StageReporter receives per-item progress
type StageReporter interface {
	Update(current, total int64)
}

// Verifier resolves candidates concurrently and keeps those with an address.
type Verifier struct {
	resolver    Resolver
	concurrency int
	slots       chan struct{}
	logger      zerolog.Logger
	reporter    StageReporter
}

// NewVerifier creates a verifier with at most concurrency lookups in flight.
func NewVerifier(r Resolver, concurrency int, logger zerolog.Logger) *Verifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Verifier{
		resolver:    r,
		concurrency: concurrency,
		slots:       make(chan struct{}, concurrency),
		logger:      logger.With().Str("component", "Verifier").Logger(),
	}
}

// WithReporter attaches a progress reporter
func (v *Verifier) WithReporter(r StageReporter) *Verifier {
	v.reporter = r
	return v
}

// Verify returns one ResolvedHost per candidate that resolved, in completion order.
// Each candidate is resolved exactly once.
func (v *Verifier) Verify(ctx context.Context, candidates []string) []models.ResolvedHost {
	var (
		mu       sync.Mutex
		resolved []models.ResolvedHost
		done     atomic.Int64
		g        errgroup.Group
	)
	total := int64(len(candidates))
	g.SetLimit(v.concurrency)

	for _, host := range candidates {
		g.Go(func() error {
			defer func() { v.report(done.Add(1), total) }()

			ip, ok := v.Resolve(ctx, host)
			if !ok {
				return nil
			}

			mu.Lock()
			resolved = append(resolved, models.ResolvedHost{Hostname: host, IP: ip})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	v.logger.Info().
		Int("candidates", len(candidates)).
		Int("resolved", len(resolved)).
		Msg("DNS verification finished")
	return resolved
}

// Resolve looks up one hostname while holding a concurrency slot, so lookups
// made outside Verify count against the same limit.
func (v *Verifier) Resolve(ctx context.Context, hostname string) (string, bool) {
	select {
	case v.slots <- struct{}{}:
		defer func() { <-v.slots }()
	case <-ctx.Done():
		return "", false
	}
	return v.resolver.Resolve(ctx, hostname)
}

func (v *Verifier) report(current, total int64) {
	if v.reporter != nil {
		v.reporter.Update(current, total)
	}
}

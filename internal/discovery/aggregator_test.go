package discovery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	names []string
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, domain string) ([]string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.names, s.err
}

type recordingReporter struct {
	mu    sync.Mutex
	calls [][2]int64
}

func (r *recordingReporter) Update(current, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]int64{current, total})
}

func TestAggregator_Discover(t *testing.T) {
	srcs := []sources.Source{
		&stubSource{name: "one", names: []string{"A.example.com", "b.example.com", "*.example.com"}},
		&stubSource{name: "two", names: []string{"a.example.com", "c.example.com", "unrelated.net"}},
	}
	agg := NewAggregator(srcs, []string{"www"}, time.Second, zerolog.Nop())

	got := agg.Discover(context.Background(), "example.com")

	assert.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com", "www.example.com"}, got)
}

func TestAggregator_Invariants(t *testing.T) {
	srcs := []sources.Source{
		&stubSource{name: "noisy", names: []string{"X.Example.COM", "x.example.com", "*.y.example.com", "example.com", "bad-example.com", "example.com.evil.org"}},
	}
	agg := NewAggregator(srcs, config.DefaultWordlist, time.Second, zerolog.Nop())

	got := agg.Discover(context.Background(), "example.com")

	seen := map[string]bool{}
	for _, c := range got {
		assert.True(t, c == "example.com" || strings.HasSuffix(c, ".example.com"), c)
		assert.NotContains(t, c, "*")
		assert.Equal(t, strings.ToLower(c), c)
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
	assert.True(t, seen["x.example.com"])
	assert.True(t, seen["example.com"])
	assert.True(t, seen["autoconfig.example.com"])
	assert.Len(t, got, len(config.DefaultWordlist)+2)
}

func TestAggregator_SourceFailureIsolation(t *testing.T) {
	srcs := []sources.Source{
		&stubSource{name: "broken", err: errors.New("connection refused")},
		&stubSource{name: "ok", names: []string{"api.example.com"}},
	}
	agg := NewAggregator(srcs, nil, time.Second, zerolog.Nop())

	got, stats := agg.DiscoverWithStats(context.Background(), "example.com")

	assert.Equal(t, []string{"api.example.com"}, got)
	require.Len(t, stats, 2)
	assert.Equal(t, "broken", stats[0].Source)

	var srcErr *sources.SourceError
	require.ErrorAs(t, stats[0].Err, &srcErr)
	assert.Equal(t, "broken", srcErr.Source)
	assert.NoError(t, stats[1].Err)
}

func TestAggregator_SourceTimeout(t *testing.T) {
	srcs := []sources.Source{
		&stubSource{name: "slow", names: []string{"slow.example.com"}, delay: time.Second},
		&stubSource{name: "fast", names: []string{"fast.example.com"}},
	}
	agg := NewAggregator(srcs, nil, 20*time.Millisecond, zerolog.Nop())

	got := agg.Discover(context.Background(), "example.com")

	assert.Equal(t, []string{"fast.example.com"}, got)
}

func TestAggregator_WordlistOnly(t *testing.T) {
	agg := NewAggregator(nil, config.DefaultWordlist, time.Second, zerolog.Nop())

	got := agg.Discover(context.Background(), "example.com")

	assert.Len(t, got, 30)
	assert.Contains(t, got, "www.example.com")
	assert.Contains(t, got, "autodiscover.example.com")
}

func TestAggregator_WordlistIsCopied(t *testing.T) {
	words := []string{"www"}
	agg := NewAggregator(nil, words, time.Second, zerolog.Nop())
	words[0] = "changed"

	assert.Equal(t, []string{"www.example.com"}, agg.Discover(context.Background(), "example.com"))
}

func TestAggregator_Reporter(t *testing.T) {
	srcs := []sources.Source{
		&stubSource{name: "one"},
		&stubSource{name: "two"},
	}
	reporter := &recordingReporter{}
	agg := NewAggregator(srcs, nil, time.Second, zerolog.Nop()).WithReporter(reporter)

	agg.Discover(context.Background(), "example.com")

	require.Len(t, reporter.calls, 2)
	for _, call := range reporter.calls {
		assert.Equal(t, int64(2), call[1])
	}
}

package prober

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/httpclient"
	"github.com/sl4desec/subpeek/internal/models"
	"golang.org/x/sync/errgroup"
)

// Fetcher performs one GET. Any received response, whatever its status,
// is a success; only failures before the headers arrive are errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*httpclient.HTTPResponse, error)
}

// StageReporter receives per-item progress
type StageReporter interface {
	Update(current, total int64)
}

// Prober fingerprints resolved hosts over HTTP.
type Prober struct {
	fetcher     Fetcher
	schemes     []string
	concurrency int
	slots       chan struct{}
	logger      zerolog.Logger
	reporter    StageReporter
}

// NewProber creates a prober trying schemes in order with at most concurrency hosts in flight.
func NewProber(fetcher Fetcher, schemes []string, concurrency int, logger zerolog.Logger) *Prober {
	if len(schemes) == 0 {
		schemes = config.DefaultProbeSchemes
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Prober{
		fetcher:     fetcher,
		schemes:     append([]string(nil), schemes...),
		concurrency: concurrency,
		slots:       make(chan struct{}, concurrency),
		logger:      logger.With().Str("component", "Prober").Logger(),
	}
}

// NewFetcher builds the HTTP client used for probing.
func NewFetcher(cfg config.ProberConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	return httpclient.NewHTTPClientBuilder(logger.With().Str("component", "ProberHTTPClient").Logger()).
		WithTimeout(cfg.GetTimeout()).
		WithFollowRedirects(true).
		WithMaxRedirects(cfg.MaxRedirects).
		WithInsecureSkipVerify(cfg.InsecureSkipVerify).
		WithMaxContentSize(cfg.MaxBodyBytes).
		WithUserAgent(cfg.UserAgent).
		WithConnectionPooling(cfg.Concurrency*2, 2).
		WithHTTP2(true).
		Build()
}

// WithReporter attaches a progress reporter
func (p *Prober) WithReporter(r StageReporter) *Prober {
	p.reporter = r
	return p
}

// Probe returns exactly one Fingerprint per input host, in completion order.
func (p *Prober) Probe(ctx context.Context, hosts []models.ResolvedHost) []models.Fingerprint {
	var (
		mu           sync.Mutex
		fingerprints = make([]models.Fingerprint, 0, len(hosts))
		done         atomic.Int64
		g            errgroup.Group
	)
	total := int64(len(hosts))
	g.SetLimit(p.concurrency)

	for _, host := range hosts {
		g.Go(func() error {
			fp := p.ProbeHost(ctx, host.Hostname, host.IP)

			mu.Lock()
			fingerprints = append(fingerprints, fp)
			mu.Unlock()

			if p.reporter != nil {
				p.reporter.Update(done.Add(1), total)
			}
			return nil
		})
	}
	_ = g.Wait()

	responsive := 0
	for i := range fingerprints {
		if fingerprints[i].Responded() {
			responsive++
		}
	}
	p.logger.Info().
		Int("probed", len(fingerprints)).
		Int("responsive", responsive).
		Msg("HTTP probing finished")
	return fingerprints
}

// ProbeHost tries each scheme in order. The first received response ends
// the sequence, even when its body could not be read; transport failures
// fall through to the next scheme. When every scheme fails the fingerprint
// carries only host and ip.
//
// Every call holds one of the prober's concurrency slots, so direct callers
// share the limit with Probe.
func (p *Prober) ProbeHost(ctx context.Context, host, ip string) models.Fingerprint {
	fp := models.Fingerprint{Subdomain: host, IP: ip}

	select {
	case p.slots <- struct{}{}:
		defer func() { <-p.slots }()
	case <-ctx.Done():
		return fp
	}

	for _, scheme := range p.schemes {
		if ctx.Err() != nil {
			break
		}
		url := scheme + "://" + host
		resp, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			p.logger.Debug().Err(err).Str("url", url).Msg("Probe attempt failed")
			continue
		}
		applyResponse(&fp, resp)
		break
	}
	return fp
}

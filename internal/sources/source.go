package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/httpclient"
)

// Source is a passive provider of hostnames for a domain.
// Returned names are raw; callers normalize them.
type Source interface {
	Name() string
	Fetch(ctx context.Context, domain string) ([]string, error)
}

// Getter is the HTTP capability sources need. Non-2xx responses must be errors.
type Getter interface {
	GetOK(ctx context.Context, url string) (*httpclient.HTTPResponse, error)
}

// SourceError attributes a failure to the source that produced it.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Constructor builds a source around a shared getter.
type Constructor func(getter Getter) Source

var registry = map[string]Constructor{
	"crtsh":        func(g Getter) Source { return &CrtSh{getter: g, baseURL: "https://crt.sh"} },
	"anubis":       func(g Getter) Source { return &Anubis{getter: g, baseURL: "https://jldc.me"} },
	"hackertarget": func(g Getter) Source { return &HackerTarget{getter: g, baseURL: "https://api.hackertarget.com"} },
	"sublist3r":    func(g Getter) Source { return &Sublist3r{getter: g, baseURL: "https://api.sublist3r.com"} },
	"alienvault":   func(g Getter) Source { return &AlienVault{getter: g, baseURL: "https://otx.alienvault.com"} },
	"certspotter":  func(g Getter) Source { return &CertSpotter{getter: g, baseURL: "https://api.certspotter.com"} },
	"rapiddns":     func(g Getter) Source { return &RapidDNS{getter: g, baseURL: "https://rapiddns.io"} },
}

// Register adds or replaces a named source constructor. Not safe for concurrent use with New.
func Register(name string, ctor Constructor) {
	registry[strings.ToLower(name)] = ctor
}

// Names lists the registered source names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New instantiates the named sources, skipping duplicates. An unknown name is an error.
func New(names []string, getter Getter) ([]Source, error) {
	seen := make(map[string]bool, len(names))
	result := make([]Source, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		ctor, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q (available: %s)", raw, strings.Join(Names(), ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, ctor(getter))
	}
	return result, nil
}

// NewHTTPClient builds the client shared by all sources.
// Unlike the probe client it verifies certificates.
func NewHTTPClient(cfg config.DiscoveryConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	return httpclient.NewHTTPClientBuilder(logger.With().Str("component", "SourcesHTTPClient").Logger()).
		WithTimeout(cfg.GetSourceTimeout()).
		WithUserAgent(cfg.UserAgent).
		WithInsecureSkipVerify(false).
		Build()
}

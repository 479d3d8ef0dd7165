package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/miekg/dns"
	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"golang.org/x/time/rate"
)

// ErrNoAddress is returned when a lookup succeeds without any A record.
var ErrNoAddress = errors.New("no A record")

// Resolver maps a hostname to one IPv4 address.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) (ip string, ok bool)
}

// DNSResolver sends one A query per lookup, rotating over nameservers.
type DNSResolver struct {
	client  *dns.Client
	servers []string
	next    atomic.Uint64
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// resolvConfPath is where nameservers come from when none are configured.
var resolvConfPath = "/etc/resolv.conf"

// NewDNSResolver builds a resolver from the resolver config section.
func NewDNSResolver(cfg config.ResolverConfig, logger zerolog.Logger) (*DNSResolver, error) {
	servers, err := nameservers(cfg.Nameservers)
	if err != nil {
		return nil, err
	}

	r := &DNSResolver{
		client: &dns.Client{
			Net:     "udp",
			Timeout: cfg.GetTimeout(),
		},
		servers: servers,
		logger:  logger.With().Str("component", "DNSResolver").Logger(),
	}
	if cfg.QueriesPerSecond > 0 {
		burst := int(cfg.QueriesPerSecond)
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), burst)
	}

	r.logger.Debug().Strs("nameservers", servers).Dur("timeout", r.client.Timeout).Msg("DNS resolver ready")
	return r, nil
}

func nameservers(configured []string) ([]string, error) {
	if len(configured) == 0 {
		cc, err := dns.ClientConfigFromFile(resolvConfPath)
		if err != nil {
			return nil, fmt.Errorf("no nameservers configured and %s unreadable: %w", resolvConfPath, err)
		}
		configured = make([]string, 0, len(cc.Servers))
		for _, s := range cc.Servers {
			configured = append(configured, net.JoinHostPort(s, cc.Port))
		}
	}

	servers := make([]string, 0, len(configured))
	for _, s := range configured {
		servers = append(servers, withDefaultPort(s))
	}
	if len(servers) == 0 {
		return nil, errors.New("no nameservers available")
	}
	return servers, nil
}

// withDefaultPort appends :53 when addr has no port.
func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, "53")
}

// Resolve implements Resolver. Any failure is reported as ok=false.
func (r *DNSResolver) Resolve(ctx context.Context, hostname string) (string, bool) {
	ip, err := r.Lookup(ctx, hostname)
	if err != nil {
		r.logger.Debug().Err(err).Str("host", hostname).Msg("Resolution failed")
		return "", false
	}
	return ip, true
}

// Lookup returns the first A record for hostname.
func (r *DNSResolver) Lookup(ctx context.Context, hostname string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(hostname), dns.TypeA)
	msg.RecursionDesired = true

	server := r.servers[int(r.next.Add(1)-1)%len(r.servers)]
	reply, _, err := r.client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return "", fmt.Errorf("query %s via %s: %w", hostname, server, err)
	}
	if reply.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("query %s via %s: %s", hostname, server, dns.RcodeToString[reply.Rcode])
	}

	for _, answer := range reply.Answer {
		if a, ok := answer.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", ErrNoAddress
}

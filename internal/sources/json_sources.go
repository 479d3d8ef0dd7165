package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sl4desec/subpeek/internal/common"
)

func getJSON(ctx context.Context, getter Getter, endpoint string, out any) error {
	resp, err := getter.GetOK(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return common.WrapError(err, "failed to decode response")
	}
	return nil
}

// CrtSh queries certificate transparency logs at crt.sh.
type CrtSh struct {
	getter  Getter
	baseURL string
}

func (s *CrtSh) Name() string { return "crtsh" }

func (s *CrtSh) Fetch(ctx context.Context, domain string) ([]string, error) {
	var entries []struct {
		NameValue string `json:"name_value"`
	}
	endpoint := fmt.Sprintf("%s/?q=%s&output=json", s.baseURL, url.QueryEscape("%."+domain))
	if err := getJSON(ctx, s.getter, endpoint, &entries); err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		// name_value holds every SAN of the certificate, one per line
		names = append(names, strings.Split(e.NameValue, "\n")...)
	}
	return names, nil
}

// Anubis queries the jldc.me Anubis database.
type Anubis struct {
	getter  Getter
	baseURL string
}

func (s *Anubis) Name() string { return "anubis" }

func (s *Anubis) Fetch(ctx context.Context, domain string) ([]string, error) {
	var names []string
	endpoint := fmt.Sprintf("%s/anubis/subdomains/%s", s.baseURL, url.PathEscape(domain))
	if err := getJSON(ctx, s.getter, endpoint, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Sublist3r queries the Sublist3r search API.
type Sublist3r struct {
	getter  Getter
	baseURL string
}

func (s *Sublist3r) Name() string { return "sublist3r" }

func (s *Sublist3r) Fetch(ctx context.Context, domain string) ([]string, error) {
	var names []string
	endpoint := fmt.Sprintf("%s/search.php?domain=%s", s.baseURL, url.QueryEscape(domain))
	if err := getJSON(ctx, s.getter, endpoint, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// AlienVault reads hostnames from the OTX URL list of a domain.
type AlienVault struct {
	getter  Getter
	baseURL string
}

func (s *AlienVault) Name() string { return "alienvault" }

func (s *AlienVault) Fetch(ctx context.Context, domain string) ([]string, error) {
	var resp struct {
		URLList []struct {
			Hostname string `json:"hostname"`
		} `json:"url_list"`
	}
	endpoint := fmt.Sprintf("%s/api/v1/indicators/domain/%s/url_list?limit=100&page=1", s.baseURL, url.PathEscape(domain))
	if err := getJSON(ctx, s.getter, endpoint, &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.URLList))
	for _, u := range resp.URLList {
		names = append(names, u.Hostname)
	}
	return names, nil
}

// CertSpotter queries SSLMate's issuance API.
type CertSpotter struct {
	getter  Getter
	baseURL string
}

func (s *CertSpotter) Name() string { return "certspotter" }

func (s *CertSpotter) Fetch(ctx context.Context, domain string) ([]string, error) {
	var issuances []struct {
		DNSNames []string `json:"dns_names"`
	}
	endpoint := fmt.Sprintf("%s/v1/issuances?domain=%s&include_subdomains=true&expand=dns_names", s.baseURL, url.QueryEscape(domain))
	if err := getJSON(ctx, s.getter, endpoint, &issuances); err != nil {
		return nil, err
	}

	var names []string
	for _, issuance := range issuances {
		names = append(names, issuance.DNSNames...)
	}
	return names, nil
}

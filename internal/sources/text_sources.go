package sources

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sl4desec/subpeek/internal/common"
)

// HackerTarget reads the host,ip lines of the hostsearch API.
type HackerTarget struct {
	getter  Getter
	baseURL string
}

func (s *HackerTarget) Name() string { return "hackertarget" }

func (s *HackerTarget) Fetch(ctx context.Context, domain string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/hostsearch/?q=%s", s.baseURL, url.QueryEscape(domain))
	resp, err := s.getter.GetOK(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(resp.Body))
	for scanner.Scan() {
		host, _, _ := strings.Cut(scanner.Text(), ",")
		if host = strings.TrimSpace(host); host != "" {
			names = append(names, host)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapError(err, "failed to read response")
	}
	return names, nil
}

// RapidDNS scrapes the subdomain table of rapiddns.io.
type RapidDNS struct {
	getter  Getter
	baseURL string
}

func (s *RapidDNS) Name() string { return "rapiddns" }

func (s *RapidDNS) Fetch(ctx context.Context, domain string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/subdomain/%s?full=1", s.baseURL, url.PathEscape(domain))
	resp, err := s.getter.GetOK(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, common.WrapError(err, "failed to parse HTML")
	}

	var names []string
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if name := strings.TrimSpace(row.Find("td").First().Text()); name != "" {
			names = append(names, name)
		}
	})
	return names, nil
}

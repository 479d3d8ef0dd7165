package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/common"
	"golang.org/x/net/http2"
)

var bodyBuffers = common.NewBufferPool(32 * 1024)

// ErrTooManyRedirects is returned when a redirect chain exceeds MaxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// HTTPClient wraps net/http.Client with the application's defaults
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	if config.Timeout <= 0 {
		return nil, NewError("timeout must be positive")
	}
	if config.MaxRedirects < 0 {
		return nil, NewError("max redirects must not be negative")
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: config.TLSHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify, //nolint:gosec // probing arbitrary hosts
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else {
		maxRedirects := config.MaxRedirects
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_redirects", config.MaxRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Do performs an HTTP request and reads the body, honouring MaxContentSize.
// Any received response is returned without error regardless of status code.
// A failed body read yields the partial response with Incomplete set.
func (c *HTTPClient) Do(ctx context.Context, req *HTTPRequest) (*HTTPResponse, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, req.Body)
	if err != nil {
		return nil, WrapError(err, "failed to create HTTP request")
	}

	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewNetworkError(req.URL, "request failed", err)
	}
	defer resp.Body.Close()

	body, truncated, err := c.readBody(resp.Body)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", req.URL).Int("read", len(body)).Msg("Response body read failed")
	}

	httpResp := &HTTPResponse{
		StatusCode:    resp.StatusCode,
		Headers:       make(map[string]string, len(resp.Header)),
		Body:          body,
		ContentLength: declaredLength(resp),
		FinalURL:      resp.Request.URL.String(),
		Truncated:     truncated,
		Incomplete:    err != nil,
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// Fetch issues a GET for url
func (c *HTTPClient) Fetch(ctx context.Context, url string) (*HTTPResponse, error) {
	return c.Do(ctx, &HTTPRequest{URL: url, Method: http.MethodGet})
}

// GetOK issues a GET and turns non-2xx statuses into an *HTTPError
func (c *HTTPClient) GetOK(ctx context.Context, url string) (*HTTPResponse, error) {
	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.Incomplete {
		return nil, NewNetworkError(url, "failed to read response body", io.ErrUnexpectedEOF)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := resp.Body
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return resp, NewHTTPErrorWithURL(resp.StatusCode, string(snippet), url)
	}
	return resp, nil
}

func (c *HTTPClient) readBody(r io.Reader) ([]byte, bool, error) {
	buf := bodyBuffers.Get()
	defer bodyBuffers.Put(buf)

	if c.config.MaxContentSize > 0 {
		r = io.LimitReader(r, c.config.MaxContentSize+1)
	}
	_, readErr := buf.ReadFrom(r)

	n := int64(buf.Len())
	truncated := c.config.MaxContentSize > 0 && n > c.config.MaxContentSize
	if truncated {
		n = c.config.MaxContentSize
	}

	// The buffer goes back to the pool, so the caller gets a copy.
	body := make([]byte, n)
	copy(body, buf.Bytes())
	return body, truncated, readErr
}

// declaredLength reports the Content-Length header, -1 when absent.
// Compressed responses decoded by the transport report -1 as well.
func declaredLength(resp *http.Response) int64 {
	if resp.ContentLength >= 0 {
		return resp.ContentLength
	}
	return -1
}

func canonicalHeaderKey(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}

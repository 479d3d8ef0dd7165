package httpclient

import (
	"io"
	"time"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout             time.Duration     // Request timeout
	InsecureSkipVerify  bool              // Skip TLS verification
	FollowRedirects     bool              // Whether to follow redirects
	MaxRedirects        int               // Maximum number of redirects to follow
	CustomHeaders       map[string]string // Custom headers to add to all requests
	UserAgent           string            // User-Agent header
	MaxContentSize      int64             // Body bytes kept per response, 0 for no limit
	MaxIdleConns        int               // Maximum idle connections
	MaxIdleConnsPerHost int               // Maximum idle connections per host
	IdleConnTimeout     time.Duration     // Idle connection timeout
	TLSHandshakeTimeout time.Duration     // TLS handshake timeout
	DialTimeout         time.Duration     // Connection dial timeout
	KeepAlive           time.Duration     // Keep-alive duration
	EnableHTTP2         bool              // Negotiate HTTP/2 over TLS
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             30 * time.Second,
		FollowRedirects:     true,
		MaxRedirects:        10,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         10 * time.Second,
		KeepAlive:           30 * time.Second,
		EnableHTTP2:         true,
		CustomHeaders: map[string]string{
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// HTTPRequest describes a single outgoing request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
}

// HTTPResponse is a fully read response.
// ContentLength is the declared Content-Length, or -1 when the server did not send one.
type HTTPResponse struct {
	StatusCode    int
	Headers       map[string]string
	Body          []byte
	ContentLength int64
	FinalURL      string
	Truncated     bool
	// Incomplete is set when the status line and headers arrived but the
	// body read failed; Body holds whatever was read before the failure.
	Incomplete bool
}

// Header returns the first value of a header, case-insensitively
func (r *HTTPResponse) Header(name string) (string, bool) {
	v, ok := r.Headers[canonicalHeaderKey(name)]
	return v, ok
}

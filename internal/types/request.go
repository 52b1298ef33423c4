package types

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request describes a single page to fetch.
type Request struct {
	// URL is the target URL to fetch.
	URL *url.URL

	// Headers are custom HTTP headers to send with the request.
	Headers http.Header

	// Timeout overrides the fetcher's readiness timeout for this request.
	Timeout time.Duration
}

// NewRequest parses rawURL and returns a GET request for it.
// Only absolute http and https URLs are accepted.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return &Request{
		URL:     u,
		Headers: make(http.Header),
	}, nil
}

// URLString returns the request URL as a string.
func (r *Request) URLString() string {
	return r.URL.String()
}

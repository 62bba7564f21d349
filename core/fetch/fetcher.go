// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET per call (no retries) and parses the body
// into a dom.Document, decoding the body's charset from its Content-Type.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/paperimport/core/dom"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paperimport/1.0 (https://github.com/gaurav-prasanna/paperimport)"
)

// NetworkError reports a failed retrieval: a transport error, a timeout, a
// cancelled context, or a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedDocumentError reports a body that could not be parsed as HTML.
type MalformedDocumentError struct {
	URL string
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.URL, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Options configures an HTTPFetcher. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{client: client, userAgent: ua}
}

// Fetch retrieves url and parses it into a document tree.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*dom.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("fetched page")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	decoded, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &MalformedDocumentError{URL: url, Err: fmt.Errorf("decoding charset: %w", err)}
	}

	root, err := html.Parse(decoded)
	if err != nil {
		return nil, &MalformedDocumentError{URL: url, Err: err}
	}
	return dom.FromNode(root), nil
}

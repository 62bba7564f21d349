// Package intake prepares the URLs handed to a batch import.
// It validates and normalizes each URL and keeps the first occurrence
// of every paper, in input order.
package intake

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// IsHTTPURL reports whether rawURL has an http(s) scheme and a host.
// Scheme-less input such as "arxiv.org/abs/2401.12345" is accepted.
func IsHTTPURL(rawURL string) bool {
	parsed, err := url.Parse(withScheme(strings.TrimSpace(rawURL)))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// NormalizeURL trims surrounding whitespace and strips the fragment.
// Query strings are kept: OpenReview identifies papers by one.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String()
}

// ReadList reads one URL per line. Blank lines and lines starting with
// '#' are skipped.
func ReadList(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return urls, nil
}

func withScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}

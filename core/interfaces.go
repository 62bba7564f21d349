// Package core defines the shared types and interfaces of paperimport.
// Each stage (fetch, site extraction, render) is a small, testable interface.
package core

import (
	"context"
	"regexp"
	"time"

	"github.com/gaurav-prasanna/paperimport/core/dom"
)

// Fetcher retrieves a page and parses it into a document tree.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*dom.Document, error)
}

// SiteParser extracts paper metadata from the pages of one hosting site.
// Implementations are stateless apart from their injected Fetcher.
type SiteParser interface {
	// Name is the human-readable site name, e.g. "arXiv".
	Name() string
	// Pattern is the URL pattern the registry matches against.
	Pattern() *regexp.Regexp
	// Canonicalize rewrites a matched URL into the form treated as the
	// paper's identity. It reports false when no canonical form exists.
	Canonicalize(rawURL string) (string, bool)
	// Extract fetches the page and returns the metadata, or an error
	// describing why the page did not yield a complete Result.
	Extract(ctx context.Context, rawURL string) (Result, error)
}

// Renderer turns a Result into the bytes of an output note.
type Renderer interface {
	// Render formats the result. importedAt is the caller's notion of "now".
	Render(result Result, importedAt time.Time) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

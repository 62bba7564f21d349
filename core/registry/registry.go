// Package registry dispatches a URL to the site parser that handles it.
//
// A Registry is built once at startup from an ordered list of parsers and
// is read-only afterwards, so it is safe to share between goroutines.
package registry

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/sites"
)

type binding struct {
	pattern *regexp.Regexp
	parser  core.SiteParser
}

// Registry is an ordered list of (pattern, parser) bindings.
type Registry struct {
	bindings []binding
}

// New registers parsers in the given order, each under its own Pattern.
func New(parsers ...core.SiteParser) *Registry {
	r := &Registry{}
	for _, p := range parsers {
		r.Register(p.Pattern(), p)
	}
	return r
}

// Default returns a registry holding every built-in site parser.
func Default(fetcher core.Fetcher) *Registry {
	return New(sites.All(fetcher)...)
}

// Register appends a binding. It is meant to be called during startup only;
// Registry does not guard against registration racing with Resolve.
func (r *Registry) Register(pattern *regexp.Regexp, parser core.SiteParser) {
	r.bindings = append(r.bindings, binding{pattern: pattern, parser: parser})
}

// Resolve returns the first registered parser whose pattern matches url.
func (r *Registry) Resolve(url string) (core.SiteParser, bool) {
	for _, b := range r.bindings {
		if b.pattern.MatchString(url) {
			log.Debug().Str("url", url).Str("site", b.parser.Name()).Msg("resolved site parser")
			return b.parser, true
		}
	}
	log.Debug().Str("url", url).Msg("no site parser matches")
	return nil, false
}

// Canonical returns the canonical URL of the paper at url, as defined by
// the parser that handles it.
func (r *Registry) Canonical(url string) (string, bool) {
	parser, ok := r.Resolve(url)
	if !ok {
		return "", false
	}
	return parser.Canonicalize(url)
}

// Parsers returns the registered parsers in registration order.
func (r *Registry) Parsers() []core.SiteParser {
	out := make([]core.SiteParser, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.parser
	}
	return out
}

// Import resolves and extracts in one step. The error distinguishes an
// unsupported site (core.ErrUnsupportedSite) from a matched site that gave
// no result (core.ErrExtractionFailed).
func (r *Registry) Import(ctx context.Context, url string) (core.Result, error) {
	parser, ok := r.Resolve(url)
	if !ok {
		return core.Result{}, fmt.Errorf("%w: %s", core.ErrUnsupportedSite, url)
	}
	result, ok := sites.TryExtract(ctx, parser, url)
	if !ok {
		return core.Result{}, fmt.Errorf("%w: %s page %s", core.ErrExtractionFailed, parser.Name(), url)
	}
	return result, nil
}

// TryImport is Import with every failure collapsed into "no result".
func (r *Registry) TryImport(ctx context.Context, url string) (core.Result, bool) {
	result, err := r.Import(ctx, url)
	return result, err == nil
}

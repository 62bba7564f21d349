// Package sites holds one SiteParser per supported paper-hosting website.
//
// Each parser encodes what one site's markup looked like when it was
// written: element ids, class names, field labels. When any of that is
// missing the parser yields no result rather than guessing a value.
package sites

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/dom"
	"github.com/gaurav-prasanna/paperimport/core/normalize"
)

// TryExtract runs p.Extract and collapses every failure into "no result".
// Callers that need the reason call Extract directly.
func TryExtract(ctx context.Context, p core.SiteParser, rawURL string) (core.Result, bool) {
	result, err := p.Extract(ctx, rawURL)
	if err != nil {
		log.Debug().Err(err).Str("site", p.Name()).Str("url", rawURL).Msg("no result")
		return core.Result{}, false
	}
	return result, true
}

// All returns the built-in parsers in registration order.
func All(fetcher core.Fetcher) []core.SiteParser {
	return []core.SiteParser{
		NewArxiv(fetcher),
		NewOpenReview(fetcher),
		NewACLAnthology(fetcher),
	}
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", core.ErrMissingField, field)
}

// text returns the element's text content, or a missing-field error when
// the element is absent.
func text(e *dom.Element, field string) (string, error) {
	if e == nil {
		return "", missing(field)
	}
	return e.Text(), nil
}

// cleanAbstract is the clean-up every site applies to abstract markup:
// line breaks become spaces, break tags become newlines, anchors become
// Markdown links.
func cleanAbstract(s string) string {
	return normalize.CleanString(s,
		normalize.CollapseWhitespace,
		normalize.BreakTagsToNewlines,
		normalize.HyperlinksToMarkdown,
	)
}

// build parses the date string and assembles the Result. An unparseable
// date counts as a missing publication date.
func build(title, author, abstract, url, date string) (core.Result, error) {
	published, err := normalize.ParseLooseDate(date)
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: date published: %w", core.ErrMissingField, err)
	}
	return core.NewResult(title, author, abstract, url, published)
}

// squash collapses every whitespace run to a single space.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

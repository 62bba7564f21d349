package sites

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/normalize"
)

// arxivPattern is kept exactly as the importer has always matched arXiv
// links. Alternation binds loosest, so it reads as
// "arxiv.org/abs" OR "pdf/NNNN.NNNNN", not "arxiv.org/(abs|pdf)/NNNN.NNNNN".
// TODO: tighten to the abs|pdf grouping once the wider match is confirmed unintended.
var arxivPattern = regexp.MustCompile(`(https?://)?arxiv\.org/(abs)|(pdf)/\d{4}\.\d{5}(.pdf)?`)

// Arxiv extracts metadata from arXiv abstract pages.
type Arxiv struct {
	fetcher core.Fetcher
}

// NewArxiv creates an arXiv parser.
func NewArxiv(fetcher core.Fetcher) *Arxiv {
	return &Arxiv{fetcher: fetcher}
}

func (*Arxiv) Name() string { return "arXiv" }

func (*Arxiv) Pattern() *regexp.Regexp { return arxivPattern }

// Canonicalize points PDF links at the abstract page and drops the query
// and fragment: https://arxiv.org/pdf/2401.12345v2.pdf?x=1 becomes
// https://arxiv.org/abs/2401.12345v2.
func (*Arxiv) Canonicalize(rawURL string) (string, bool) {
	u, ok := parseLenient(rawURL)
	if !ok {
		return "", false
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, ".pdf")
	u.Path = strings.Replace(u.Path, "/pdf/", "/abs/", 1)
	u.RawPath = ""
	return u.String(), true
}

// Extract fetches the abstract page and reads the metadata block.
func (a *Arxiv) Extract(ctx context.Context, rawURL string) (core.Result, error) {
	canonical, ok := a.Canonicalize(rawURL)
	if !ok {
		return core.Result{}, fmt.Errorf("%w: invalid arXiv URL %q", core.ErrExtractionFailed, rawURL)
	}

	doc, err := a.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	content := doc.ByID("content-inner")
	if content == nil {
		return core.Result{}, missing("content-inner")
	}

	title, err := text(content.FirstByClass("title"), "title")
	if err != nil {
		return core.Result{}, err
	}
	authors, err := text(content.FirstByClass("authors"), "authors")
	if err != nil {
		return core.Result{}, err
	}
	abstract, ok := content.FirstByClass("abstract").InnerHTML()
	if !ok {
		return core.Result{}, missing("abstract")
	}
	dateline, err := text(content.FirstByClass("dateline"), "dateline")
	if err != nil {
		return core.Result{}, err
	}

	title = normalize.CleanString(title, squash, normalize.RemovePrefix("Title:"))
	authors = normalize.CleanString(authors, squash, normalize.RemovePrefix("Authors:"))
	abstract = normalize.CleanString(abstract,
		strings.TrimSpace,
		cleanAbstract,
		normalize.StripTags,
		normalize.RemovePrefix("Abstract:"),
	)
	// e.g. "[Submitted on 5 Jan 2024 (v1), last revised 9 Feb 2024 (this version, v2)]"
	date := normalize.CleanString(dateline,
		strings.TrimSpace,
		func(s string) string { return strings.Trim(s, "[]") },
		normalize.RemovePrefix("Submitted on"),
		normalize.FirstWordsFunc(3),
	)

	return build(title, authors, abstract, canonical, date)
}

// parseLenient parses a URL that may lack its scheme.
func parseLenient(rawURL string) (*url.URL, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, false
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return u, true
}

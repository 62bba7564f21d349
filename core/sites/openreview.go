package sites

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/dom"
	"github.com/gaurav-prasanna/paperimport/core/normalize"
)

var openReviewPattern = regexp.MustCompile(`(https?://)?openreview\.net/forum\?id=([a-zA-Z0-9]{10})(&.*)?`)

// OpenReview extracts metadata from OpenReview forum pages.
type OpenReview struct {
	fetcher core.Fetcher
}

// NewOpenReview creates an OpenReview parser.
func NewOpenReview(fetcher core.Fetcher) *OpenReview {
	return &OpenReview{fetcher: fetcher}
}

func (*OpenReview) Name() string { return "OpenReview" }

func (*OpenReview) Pattern() *regexp.Regexp { return openReviewPattern }

// Canonicalize keeps only the forum id: any further query parameters
// (note ids, referrers) are dropped.
func (*OpenReview) Canonicalize(rawURL string) (string, bool) {
	m := openReviewPattern.FindStringSubmatch(rawURL)
	if m == nil || m[2] == "" {
		return "", false
	}
	return "https://openreview.net/forum?id=" + m[2], true
}

// Extract fetches the forum page and reads the submission note.
func (o *OpenReview) Extract(ctx context.Context, rawURL string) (core.Result, error) {
	canonical, ok := o.Canonicalize(rawURL)
	if !ok {
		return core.Result{}, fmt.Errorf("%w: no forum id in %q", core.ErrExtractionFailed, rawURL)
	}

	doc, err := o.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	content := doc.ByID("content")
	if content == nil {
		return core.Result{}, missing("content")
	}

	title, err := text(content.FirstByClass("note_content_title"), "title")
	if err != nil {
		return core.Result{}, err
	}
	authors, err := text(content.NthByClass("meta_row", 0), "authors")
	if err != nil {
		return core.Result{}, err
	}
	abstract, err := text(openReviewAbstract(content.FirstByClass("note-content")), "abstract")
	if err != nil {
		return core.Result{}, err
	}
	published, err := text(content.NthByClass("meta_row", 1), "published")
	if err != nil {
		return core.Result{}, err
	}

	title, authors = squash(title), squash(authors)
	abstract = normalize.CleanString(abstract, strings.TrimSpace, cleanAbstract, strings.TrimSpace)
	// e.g. "Published: 16 Jan 2024, Last Modified: 21 Mar 2024"
	date := normalize.CleanString(published,
		normalize.RemovePrefix("Published:"),
		normalize.FirstWordsFunc(3),
	)

	return build(title, authors, abstract, canonical, date)
}

// openReviewAbstract finds the note field labelled "Abstract:". Each field
// is a direct child of the note content holding a label element followed
// by a value element.
func openReviewAbstract(noteContent *dom.Element) *dom.Element {
	for _, field := range noteContent.Children() {
		if strings.TrimSpace(field.Child(0).Text()) == "Abstract:" {
			return field.Child(1)
		}
	}
	return nil
}

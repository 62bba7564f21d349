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

// aclPattern accepts both id schemes: "2023.acl-long.1" and "P19-1001".
var aclPattern = regexp.MustCompile(`(https?://)?aclanthology\.org/(\d{4}\.[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*\.\d+|[A-Z]\d{2}-\d{4})(\.pdf|/)?`)

// ACLAnthology extracts metadata from ACL Anthology paper pages.
type ACLAnthology struct {
	fetcher core.Fetcher
}

// NewACLAnthology creates an ACL Anthology parser.
func NewACLAnthology(fetcher core.Fetcher) *ACLAnthology {
	return &ACLAnthology{fetcher: fetcher}
}

func (*ACLAnthology) Name() string { return "ACL Anthology" }

func (*ACLAnthology) Pattern() *regexp.Regexp { return aclPattern }

// Canonicalize maps the PDF and the landing page of a paper to
// https://aclanthology.org/<id>/.
func (*ACLAnthology) Canonicalize(rawURL string) (string, bool) {
	m := aclPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return "https://aclanthology.org/" + m[2] + "/", true
}

// Extract fetches the landing page.
func (a *ACLAnthology) Extract(ctx context.Context, rawURL string) (core.Result, error) {
	canonical, ok := a.Canonicalize(rawURL)
	if !ok {
		return core.Result{}, fmt.Errorf("%w: no anthology id in %q", core.ErrExtractionFailed, rawURL)
	}

	doc, err := a.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	region := doc.ByID("main")
	if region == nil {
		return core.Result{}, missing("main")
	}

	title, err := text(doc.ByID("title"), "title")
	if err != nil {
		return core.Result{}, err
	}
	authors, err := text(region.FirstByClass("lead"), "authors")
	if err != nil {
		return core.Result{}, err
	}

	var abstractHTML string
	if spans := region.Find(".acl-abstract span"); len(spans) > 0 {
		abstractHTML, _ = spans[0].InnerHTML()
	}
	if strings.TrimSpace(abstractHTML) == "" {
		return core.Result{}, missing("abstract")
	}
	abstract, err := normalize.FragmentToMarkdown(abstractHTML)
	if err != nil {
		return core.Result{}, fmt.Errorf("%w: abstract: %w", core.ErrMissingField, err)
	}

	details := aclDetails(region)
	month, year := normalize.FirstWords(details["Month:"], 1), details["Year:"]
	if month == "" || year == "" {
		return core.Result{}, missing("month and year")
	}

	return build(squash(title), squash(authors), abstract, canonical, month+" "+year)
}

// aclDetails reads the first definition list of the page into a
// label -> value map, e.g. "Year:" -> "2023".
func aclDetails(region *dom.Element) map[string]string {
	details := make(map[string]string)
	lists := region.Find("dl")
	if len(lists) == 0 {
		return details
	}
	children := lists[0].Children()
	for i := 0; i+1 < len(children); i++ {
		label := strings.TrimSpace(children[i].Text())
		if strings.HasSuffix(label, ":") {
			details[label] = strings.TrimSpace(children[i+1].Text())
		}
	}
	return details
}

package sites

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/paperimport/core"
)

const arxivAbs = "https://arxiv.org/abs/2401.12345"

const arxivHead = `<!DOCTYPE html><html><body><div id="abs-outer"><div id="content-inner">
<div id="abs">
<h1 class="title mathjax"><span class="descriptor">Title:</span>Attention Is
  Still All You Need</h1>
<div class="authors"><span class="descriptor">Authors:</span><a href="/a/doe_j">Jane Doe</a>, <a href="/a/roe_r">Richard Roe</a></div>
<div class="dateline">[Submitted on 5 Jan 2024 (<a href="/abs/2401.12345v1">v1</a>), last revised 9 Feb 2024 (this version, v2)]</div>
`

const arxivAbstract = `<blockquote class="abstract mathjax">
<span class="descriptor">Abstract:</span>We revisit attention
in transformers.<br>Code is at <a href="https://github.com/doe/attn" rel="external noopener">this https URL</a> &amp; <a href="https://example.org/data">data</a>.
</blockquote>
`

const arxivTail = `</div></div></div></body></html>`

func arxivPage() string { return arxivHead + arxivAbstract + arxivTail }

func TestArxiv_Extract(t *testing.T) {
	f := serve(arxivAbs, arxivPage())
	result := requireResult(t, NewArxiv(f), "https://arxiv.org/pdf/2401.12345.pdf")

	assert.Equal(t, []string{arxivAbs}, f.requested, "the PDF link is fetched as the abstract page")
	assert.Equal(t, "Attention Is Still All You Need", result.Title)
	assert.Equal(t, "Jane Doe, Richard Roe", result.Author)
	assert.Equal(t, arxivAbs, result.URL)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), result.DatePublished)
	assert.Equal(t,
		"We revisit attention in transformers.\nCode is at [this https URL](https://github.com/doe/attn) & [data](https://example.org/data).",
		result.Abstract)
	assert.NotContains(t, result.Abstract, "<a")
}

func TestArxiv_MissingAbstractYieldsNoResult(t *testing.T) {
	f := serve(arxivAbs, arxivHead+arxivTail)

	_, err := NewArxiv(f).Extract(context.Background(), arxivAbs)
	assert.ErrorIs(t, err, core.ErrMissingField)

	_, ok := TryExtract(context.Background(), NewArxiv(f), arxivAbs)
	assert.False(t, ok)
}

func TestArxiv_MissingRegionYieldsNoResult(t *testing.T) {
	page := strings.Replace(arxivPage(), `id="content-inner"`, `id="content"`, 1)
	_, ok := TryExtract(context.Background(), NewArxiv(serve(arxivAbs, page)), arxivAbs)
	assert.False(t, ok)
}

func TestArxiv_BadDateYieldsNoResult(t *testing.T) {
	page := strings.Replace(arxivPage(), "5 Jan 2024", "sometime in 2024", 1)
	_, ok := TryExtract(context.Background(), NewArxiv(serve(arxivAbs, page)), arxivAbs)
	assert.False(t, ok)
}

func TestArxiv_Idempotent(t *testing.T) {
	p := NewArxiv(serve(arxivAbs, arxivPage()))

	first := requireResult(t, p, arxivAbs)
	second := requireResult(t, p, arxivAbs)
	assert.Equal(t, first, second)
}

func TestArxiv_Canonicalize(t *testing.T) {
	tts := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{"Abstract page", "https://arxiv.org/abs/2401.12345", "https://arxiv.org/abs/2401.12345"},
		{"PDF with extension", "https://arxiv.org/pdf/2401.12345.pdf", "https://arxiv.org/abs/2401.12345"},
		{"PDF without extension", "https://arxiv.org/pdf/2401.12345v2", "https://arxiv.org/abs/2401.12345v2"},
		{"Query and fragment", "https://arxiv.org/abs/2401.12345?context=cs#x", "https://arxiv.org/abs/2401.12345"},
		{"No scheme", "arxiv.org/pdf/2401.12345", "https://arxiv.org/abs/2401.12345"},
		{"Plain http kept", "http://arxiv.org/abs/2401.12345", "http://arxiv.org/abs/2401.12345"},
	}

	for _, tt := range tts {
		t.Run(tt.Name, func(t *testing.T) {
			got, ok := (&Arxiv{}).Canonicalize(tt.Input)
			require.True(t, ok)
			assert.Equal(t, tt.Expected, got)
		})
	}

	_, ok := (&Arxiv{}).Canonicalize("   ")
	assert.False(t, ok)
}

// The pattern keeps its historical, wider-than-intended alternation.
func TestArxiv_PatternAlternation(t *testing.T) {
	p := (&Arxiv{}).Pattern()

	assert.True(t, p.MatchString("https://arxiv.org/abs/2401.12345"))
	assert.True(t, p.MatchString("https://arxiv.org/pdf/2401.12345.pdf"))
	assert.True(t, p.MatchString("https://arxiv.org/abs"), "matches without an id")
	assert.True(t, p.MatchString("https://example.com/pdf/2401.12345"), "matches any host for pdf/ ids")
	assert.False(t, p.MatchString("https://arxiv.org/list/cs.LG/recent"))
	assert.False(t, p.MatchString("https://openreview.net/forum?id=abcdefghij"))
}

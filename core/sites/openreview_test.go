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

const openReviewForum = "https://openreview.net/forum?id=AbCdEfGh12"

const openReviewAbstractField = `<div><strong class="note-content-field">Abstract:</strong> <span class="note-content-value">We scale graph
networks.<br>See <a href="https://x.org">site</a>.</span></div>`

func openReviewPage(abstractField string) string {
	return `<html><body><div id="content"><div class="note">
<h2 class="note_content_title"><a href="#">Graph Nets
  at Scale</a></h2>
<div class="meta_row"><span class="signatures"><a href="/profile?id=~Ann_Lee1">Ann Lee</a>, <a href="/profile?id=~Bo_Chen1">Bo Chen</a></span></div>
<div class="meta_row"><span class="date item">Published: 16 Jan 2024, Last Modified: 21 Mar 2024</span></div>
<div class="note-content">
<div><strong class="note-content-field">Keywords:</strong> <span class="note-content-value">graphs</span></div>
` + abstractField + `
<div><strong class="note-content-field">Venue:</strong> <span class="note-content-value">ICLR 2024</span></div>
</div>
</div></div></body></html>`
}

func TestOpenReview_Extract(t *testing.T) {
	f := serve(openReviewForum, openReviewPage(openReviewAbstractField))
	result := requireResult(t, NewOpenReview(f), "openreview.net/forum?id=AbCdEfGh12&noteId=zzz")

	assert.Equal(t, []string{openReviewForum}, f.requested)
	assert.Equal(t, "Graph Nets at Scale", result.Title)
	assert.Equal(t, "Ann Lee, Bo Chen", result.Author)
	// The value's text content is used, so the link text stays and the target is gone.
	assert.Equal(t, "We scale graph networks.See site.", result.Abstract)
	assert.Equal(t, openReviewForum, result.URL)
	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), result.DatePublished)
}

func TestOpenReview_MissingAbstractYieldsNoResult(t *testing.T) {
	f := serve(openReviewForum, openReviewPage(""))

	_, err := NewOpenReview(f).Extract(context.Background(), openReviewForum)
	assert.ErrorIs(t, err, core.ErrMissingField)
}

func TestOpenReview_MissingPublishedRowYieldsNoResult(t *testing.T) {
	page := strings.Replace(openReviewPage(openReviewAbstractField),
		`<div class="meta_row"><span class="date item">Published: 16 Jan 2024, Last Modified: 21 Mar 2024</span></div>`, "", 1)

	_, ok := TryExtract(context.Background(), NewOpenReview(serve(openReviewForum, page)), openReviewForum)
	assert.False(t, ok)
}

func TestOpenReview_Canonicalize(t *testing.T) {
	p := &OpenReview{}

	got, ok := p.Canonicalize("https://openreview.net/forum?id=AbCdEfGh12&referrer=%5BAuthor%20Console%5D")
	require.True(t, ok)
	assert.Equal(t, openReviewForum, got)

	_, ok = p.Canonicalize("https://openreview.net/forum?id=short")
	assert.False(t, ok)

	_, ok = p.Canonicalize("https://openreview.net/group?id=ICLR.cc/2024/Conference")
	assert.False(t, ok)
}

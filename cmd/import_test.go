package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/paperimport/core"
	"github.com/gaurav-prasanna/paperimport/core/output"
	"github.com/gaurav-prasanna/paperimport/core/registry"
	"github.com/gaurav-prasanna/paperimport/core/render"
)

// paperSite serves results keyed by paper number; "/n.pdf" and "/n" are the
// same paper.
type paperSite struct {
	results   map[string]core.Result
	extracted []string
}

var paperPattern = regexp.MustCompile(`^https://papers\.test/(\d+)(\.pdf)?$`)

func (*paperSite) Name() string            { return "Papers" }
func (*paperSite) Pattern() *regexp.Regexp { return paperPattern }

func (*paperSite) Canonicalize(u string) (string, bool) {
	m := paperPattern.FindStringSubmatch(u)
	if m == nil {
		return "", false
	}
	return "https://papers.test/" + m[1], true
}

func (s *paperSite) Extract(_ context.Context, u string) (core.Result, error) {
	canonical, _ := s.Canonicalize(u)
	s.extracted = append(s.extracted, canonical)
	r, ok := s.results[canonical]
	if !ok {
		return core.Result{}, core.ErrMissingField
	}
	return r, nil
}

func newPaperSite(t *testing.T) *paperSite {
	t.Helper()
	r, err := core.NewResult("Graph Nets: at Scale", "Ann Lee", "We scale graph networks.",
		"https://papers.test/1", time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return &paperSite{results: map[string]core.Result{"https://papers.test/1": r}}
}

func newImporter(t *testing.T, site *paperSite, writer *output.Writer, out *bytes.Buffer) *importer {
	t.Helper()
	return &importer{
		registry: registry.New(site),
		renderer: render.NewTemplateRenderer("{{TITLE}} | {{DATEPUBLISHED}} | {{DATEREAD}}"),
		writer:   writer,
		out:      out,
		now:      func() time.Time { return time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC) },
	}
}

func TestImporter_WritesNotes(t *testing.T) {
	site := newPaperSite(t)
	writer, err := output.New(t.TempDir())
	require.NoError(t, err)
	var out bytes.Buffer

	err = newImporter(t, site, writer, &out).run(context.Background(), []string{
		"https://papers.test/1.pdf",
		"https://papers.test/1#abstract",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://papers.test/1"}, site.extracted)

	path := filepath.Join(writer.Folder, "Graph Nets_ at Scale.md")
	assert.Contains(t, out.String(), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Graph Nets: at Scale | 2024-01-16 | 2024-03-02", string(data))
}

func TestImporter_ExistingNoteIsNotAFailure(t *testing.T) {
	site := newPaperSite(t)
	writer, err := output.New(t.TempDir())
	require.NoError(t, err)
	path := filepath.Join(writer.Folder, "Graph Nets_ at Scale.md")
	require.NoError(t, os.WriteFile(path, []byte("my notes"), 0644))

	err = newImporter(t, site, writer, &bytes.Buffer{}).run(context.Background(), []string{"https://papers.test/1"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my notes", string(data))
}

func TestImporter_Stdout(t *testing.T) {
	var out bytes.Buffer

	err := newImporter(t, newPaperSite(t), nil, &out).run(context.Background(), []string{"https://papers.test/1"})
	require.NoError(t, err)
	assert.Equal(t, "Graph Nets: at Scale | 2024-01-16 | 2024-03-02\n", out.String())
}

func TestImporter_CountsFailures(t *testing.T) {
	site := newPaperSite(t)
	var out bytes.Buffer

	err := newImporter(t, site, nil, &out).run(context.Background(), []string{
		"https://papers.test/1",
		"https://papers.test/2",
		"https://example.com/paper",
		"not a url",
	})
	require.Error(t, err)
	assert.Equal(t, "3/4 imports failed", err.Error())
	assert.Equal(t, 1, strings.Count(out.String(), "Graph Nets"))
}

func TestImporter_CancelledContextWritesNothing(t *testing.T) {
	writer, err := output.New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = newImporter(t, newPaperSite(t), writer, &bytes.Buffer{}).run(ctx, []string{"https://papers.test/1"})
	assert.Error(t, err)

	entries, err := os.ReadDir(writer.Folder)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolve(t *testing.T) {
	reg := registry.New(newPaperSite(t))

	var out bytes.Buffer
	require.NoError(t, resolve(&out, reg, "https://papers.test/9.pdf"))
	assert.Equal(t, "Papers\n", out.String())

	out.Reset()
	err := resolve(&out, reg, "https://example.com/x")
	assert.ErrorIs(t, err, core.ErrUnsupportedSite)
	assert.Equal(t, "unsupported\n", out.String())
}

func TestListSites(t *testing.T) {
	var out bytes.Buffer
	listSites(&out, registry.New(newPaperSite(t)))
	assert.Equal(t, "Papers          ^https://papers\\.test/(\\d+)(\\.pdf)?$\n", out.String())
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://papers.test/1\n# later\n"), 0644))

	urls, err := readInput(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://papers.test/1"}, urls)

	urls, err = readInput(strings.NewReader("https://papers.test/2\n"), "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://papers.test/2"}, urls)
}

// Front-matter renderer.
// Writes a Markdown note whose metadata lives in a YAML header and whose
// body is the abstract.

package render

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/paperimport/core"
)

type frontMatter struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	URL           string `yaml:"url"`
	DatePublished string `yaml:"date_published"`
	DateRead      string `yaml:"date_read"`
}

// FrontMatterRenderer produces "---\n<yaml>---\n\n# Title\n\n<abstract>\n".
type FrontMatterRenderer struct{}

// NewFrontMatterRenderer creates a FrontMatterRenderer.
func NewFrontMatterRenderer() *FrontMatterRenderer {
	return &FrontMatterRenderer{}
}

// Render writes the YAML header followed by the note body.
func (r *FrontMatterRenderer) Render(result core.Result, importedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(frontMatter{
		Title:         result.Title,
		Author:        result.Author,
		URL:           result.URL,
		DatePublished: core.DateString(result.DatePublished),
		DateRead:      core.DateString(importedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	fmt.Fprintf(&buf, "---\n\n# %s\n\n%s\n", result.Title, result.Abstract)
	return buf.Bytes(), nil
}

// Extension returns the file extension for front-matter notes.
func (r *FrontMatterRenderer) Extension() string {
	return ".md"
}

// Package render provides output renderers for imported papers.
// This file implements the template renderer: literal placeholder
// substitution into a user-supplied note template.
package render

import (
	"strings"
	"time"

	"github.com/gaurav-prasanna/paperimport/core"
)

// Placeholders understood by TemplateRenderer.
const (
	PlaceholderTitle         = "{{TITLE}}"
	PlaceholderAuthor        = "{{AUTHOR}}"
	PlaceholderAbstract      = "{{ABSTRACT}}"
	PlaceholderDatePublished = "{{DATEPUBLISHED}}"
	PlaceholderDateRead      = "{{DATEREAD}}"
	PlaceholderURL           = "{{URL}}"
)

// DefaultTemplate is used when no template is configured.
const DefaultTemplate = "Title: {{TITLE}}\nAuthors: {{AUTHOR}}\nAbstract: {{ABSTRACT}}"

// TemplateRenderer fills a note template with a result's fields.
type TemplateRenderer struct {
	Template string
}

// NewTemplateRenderer creates a TemplateRenderer. An empty template selects
// DefaultTemplate.
func NewTemplateRenderer(template string) *TemplateRenderer {
	if template == "" {
		template = DefaultTemplate
	}
	return &TemplateRenderer{Template: template}
}

// Render replaces every occurrence of every placeholder. Substituted values
// are not themselves scanned for placeholders.
func (r *TemplateRenderer) Render(result core.Result, importedAt time.Time) ([]byte, error) {
	replacer := strings.NewReplacer(
		PlaceholderTitle, result.Title,
		PlaceholderAuthor, result.Author,
		PlaceholderAbstract, result.Abstract,
		PlaceholderDatePublished, core.DateString(result.DatePublished),
		PlaceholderDateRead, core.DateString(importedAt),
		PlaceholderURL, result.URL,
	)
	return []byte(replacer.Replace(r.Template)), nil
}

// Extension returns the file extension for template output.
func (r *TemplateRenderer) Extension() string {
	return ".md"
}

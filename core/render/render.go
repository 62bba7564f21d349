package render

import (
	"fmt"

	"github.com/gaurav-prasanna/paperimport/core"
)

// Format names accepted by New.
const (
	FormatTemplate    = "template"
	FormatJSON        = "json"
	FormatFrontMatter = "frontmatter"
	FormatPDF         = "pdf"
)

// Formats lists every format New accepts.
var Formats = []string{FormatTemplate, FormatJSON, FormatFrontMatter, FormatPDF}

// New selects a renderer by format name. template is only used by the
// template format.
func New(format, template string) (core.Renderer, error) {
	switch format {
	case FormatTemplate, "":
		return NewTemplateRenderer(template), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatFrontMatter:
		return NewFrontMatterRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

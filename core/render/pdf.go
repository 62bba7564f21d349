// PDF renderer.
// Lays a paper out as a one-page summary with gofpdf: title, authors,
// dates, source URL, then the abstract with Markdown links reduced to
// their text.

package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/paperimport/core"
)

// PDFRenderer renders a paper summary as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes.
func (r *PDFRenderer) Render(result core.Result, importedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// The core fonts are Latin-1; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(result.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5.5, tr(result.Author), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, fmt.Sprintf("Published %s, imported %s",
		core.DateString(result.DatePublished), core.DateString(importedAt)), "", "L", false)
	pdf.MultiCell(0, 5, "Source: "+result.URL, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "Abstract", "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range strings.Split(result.Abstract, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

var markdownLinkRegex = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)

// cleanInlineMarkdown keeps the text of Markdown links and drops their targets.
func cleanInlineMarkdown(text string) string {
	return strings.TrimSpace(markdownLinkRegex.ReplaceAllString(text, "$1"))
}

// JSON renderer.
// Emits the result as an indented JSON object for scripting.

package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/paperimport/core"
)

// paperJSON is the JSON shape of one imported paper.
type paperJSON struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Abstract      string `json:"abstract"`
	URL           string `json:"url"`
	DatePublished string `json:"date_published"`
	DateRead      string `json:"date_read"`
}

// JSONRenderer produces a JSON document per paper.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the result with dates as YYYY-MM-DD.
func (r *JSONRenderer) Render(result core.Result, importedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(paperJSON{
		Title:         result.Title,
		Author:        result.Author,
		Abstract:      result.Abstract,
		URL:           result.URL,
		DatePublished: core.DateString(result.DatePublished),
		DateRead:      core.DateString(importedAt),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

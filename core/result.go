package core

import (
	"fmt"
	"strings"
	"time"
)

// Result is the bibliographic metadata of one paper. It is a value type:
// copies are independent and nothing in this module mutates one after
// NewResult returns it.
type Result struct {
	Title         string    `json:"title" yaml:"title"`
	Author        string    `json:"author" yaml:"author"`
	Abstract      string    `json:"abstract" yaml:"abstract"`
	URL           string    `json:"url" yaml:"url"`
	DatePublished time.Time `json:"date_published" yaml:"date_published"`
}

// NewResult builds a Result, refusing to produce one with any empty field.
// The publication date is truncated to a calendar date in UTC.
func NewResult(title, author, abstract, url string, published time.Time) (Result, error) {
	fields := []struct{ name, value string }{
		{"title", title},
		{"author", author},
		{"abstract", abstract},
		{"url", url},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if published.IsZero() {
		return Result{}, fmt.Errorf("%w: date published", ErrMissingField)
	}

	y, m, d := published.Date()
	return Result{
		Title:         strings.TrimSpace(title),
		Author:        author,
		Abstract:      abstract,
		URL:           url,
		DatePublished: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}, nil
}

// DateString formats a calendar date the way notes display it.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

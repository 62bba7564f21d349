package core

import "errors"

var (
	// ErrUnsupportedSite means no registered site parser matches the URL.
	ErrUnsupportedSite = errors.New("unsupported paper website")

	// ErrExtractionFailed means a site parser matched but produced no result.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrMissingField means a required metadata field was not found on the page.
	ErrMissingField = errors.New("missing field")
)

package normalize

import (
	"fmt"
	"strings"
	"time"
)

// DateParseError reports a date string none of the known layouts accept.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unrecognized date %q", e.Input)
}

// looseDateLayouts are tried in order. Month-only layouts resolve to the
// first of the month.
var looseDateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"2006/01/02",
	"January 2006",
	"Jan 2006",
}

// ParseLooseDate interprets a human-written date such as "5 Jan 2024".
// Surrounding whitespace and trailing ",;." are ignored. The result is
// midnight UTC of that day.
func ParseLooseDate(s string) (time.Time, error) {
	cleaned := strings.Join(strings.Fields(s), " ")
	cleaned = strings.TrimRight(cleaned, ",;.")
	if cleaned == "" {
		return time.Time{}, &DateParseError{Input: s}
	}
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &DateParseError{Input: s}
}

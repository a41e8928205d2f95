package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aashish23092/statement-tax-analyzer/dto"
)

// Accepted statement date shapes, day-first formats before ISO, four-digit
// years before two-digit. Order matters: the first layout that parses wins.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"2006/01/02",
	"02-01-06",
	"02/01/06",
}

// ParseStatementDate parses raw date text against the accepted shapes.
func ParseStatementDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", raw)
}

// MonthBucket resolves raw date text to a month-year bucket label such as
// "Mar 2024". Malformed or out-of-range dates yield the Unknown sentinel
// and ok=false.
func MonthBucket(raw string) (string, bool) {
	t, err := ParseStatementDate(raw)
	if err != nil {
		return dto.UnknownDate, false
	}
	return t.Format("Jan 2006"), true
}

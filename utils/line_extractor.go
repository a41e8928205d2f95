package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/statement-tax-analyzer/dto"
)

// Table headers repeated across statement pages must not be mistaken for
// transactions.
var headerNoiseMarkers = []string{"date", "description", "balance"}

// Date shapes in precedence order, mirroring the accepted parse layouts.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{2}-\d{2}-\d{4}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}`),
	regexp.MustCompile(`\d{2}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{2}/\d{2}/\d{2}`),
}

// Amount shapes in precedence order: currency-marked figures first, a bare
// decimal next, a bare comma-grouped integer as the catch-all.
var lineAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:₹|RS\.?\s*|INR\.?\s*)-?\d+(?:,\d{3})*(?:\.\d{1,2})?`),
	regexp.MustCompile(`-?\d+(?:,\d{3})*\.\d{1,2}`),
	regexp.MustCompile(`-?\d+(?:,\d{3})*`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Descriptions shorter than this are stray punctuation or OCR debris.
const minDescriptionLen = 3

// IsHeaderNoise reports whether a line looks like a statement table header
// rather than a transaction.
func IsHeaderNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range headerNoiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// FirstDateToken returns the first date-shaped token in the text, or the
// Unknown sentinel when none is present.
func FirstDateToken(text string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return dto.UnknownDate
}

// ExtractCandidate segments one line of statement text into a transaction
// candidate. The first amount after the date is the transaction amount, a
// second one is the running balance, and the description is whatever sits
// between the date and the first amount. Returns ok=false for blank lines,
// header noise, lines without a date or amount, and descriptions too short
// to mean anything.
func ExtractCandidate(line string) (dto.RawTransactionCandidate, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || IsHeaderNoise(trimmed) {
		return dto.RawTransactionCandidate{}, false
	}

	var dateLoc []int
	for _, p := range datePatterns {
		if loc := p.FindStringIndex(trimmed); loc != nil {
			dateLoc = loc
			break
		}
	}
	if dateLoc == nil {
		return dto.RawTransactionCandidate{}, false
	}

	// Amounts are only searched after the date so that date digits never
	// satisfy the bare-number catch-all.
	rest := trimmed[dateLoc[1]:]
	var amountLocs [][]int
	for _, p := range lineAmountPatterns {
		if locs := p.FindAllStringIndex(rest, -1); len(locs) > 0 {
			amountLocs = locs
			break
		}
	}
	if amountLocs == nil {
		return dto.RawTransactionCandidate{}, false
	}

	description := rest[:amountLocs[0][0]]
	description = strings.TrimSpace(description)
	description = strings.TrimLeft(description, "-|")
	description = strings.TrimSpace(description)
	description = whitespaceRun.ReplaceAllString(description, " ")
	if len(description) < minDescriptionLen {
		return dto.RawTransactionCandidate{}, false
	}

	candidate := dto.RawTransactionCandidate{
		Date:        trimmed[dateLoc[0]:dateLoc[1]],
		Description: description,
		Amount:      rest[amountLocs[0][0]:amountLocs[0][1]],
		SourceLine:  trimmed,
	}
	if len(amountLocs) > 1 {
		candidate.Balance = rest[amountLocs[1][0]:amountLocs[1][1]]
	}
	return candidate, true
}

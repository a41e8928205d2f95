package utils

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var nonNumericChars = regexp.MustCompile(`[^0-9.]`)

// currencyMarkers must go before the numeric strip: the dot of "Rs."/"INR."
// would otherwise survive and turn "Rs. 500" into ".500".
var currencyMarkers = regexp.MustCompile(`(?i)₹|(?:RS|INR)\.?`)

// amountToken matches currency-shaped figures in free text: an optional
// INR/Rs/₹ marker followed by digits (optionally comma-grouped) and an
// optional fraction.
var amountToken = regexp.MustCompile(`(?i)(?:₹|RS\.?\s*|INR\.?\s*)?(\d+(?:,\d{3})*(?:\.\d{1,2})?)`)

// NormalizeAmount parses a currency token like "INR 1,234.50", "Rs.500" or
// "₹1,180" into a non-negative decimal magnitude. The sign is discarded
// because tax figures are always treated as positive; unparseable input
// yields zero, and callers treat zero as "no amount".
func NormalizeAmount(token string) decimal.Decimal {
	cleaned := currencyMarkers.ReplaceAllString(token, "")
	cleaned = nonNumericChars.ReplaceAllString(cleaned, "")
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount.Abs()
}

// ExtractGrossAmount scans free text for amount-shaped tokens and returns
// the largest one, on the assumption that the biggest figure on a statement
// line is the transaction total rather than a fee or a quantity. Date
// tokens are blanked out first so "2024" never poses as an amount. Returns
// zero when nothing amount-shaped appears.
func ExtractGrossAmount(text string) decimal.Decimal {
	for _, p := range datePatterns {
		text = p.ReplaceAllString(text, " ")
	}

	largest := decimal.Zero
	for _, m := range amountToken.FindAllStringSubmatch(text, -1) {
		v := NormalizeAmount(m[1])
		if v.GreaterThan(largest) {
			largest = v
		}
	}
	return largest
}

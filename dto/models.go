package dto

import "github.com/shopspring/decimal"

// TaxSource tells whether a tax amount was read off the statement directly
// or back-calculated from a category rate.
type TaxSource string

const (
	SourceExplicit TaxSource = "explicit"
	SourceInferred TaxSource = "inferred"
)

// UnknownDate is the sentinel used when a unit carries no parseable date.
// Events dated UnknownDate count towards totals but never towards by-month.
const UnknownDate = "Unknown"

// RawTransactionCandidate is one segmented statement entry before any
// normalization: date and amount are still the raw tokens found on the line.
type RawTransactionCandidate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Balance     string `json:"balance,omitempty"`
	SourceLine  string `json:"source_line,omitempty"`
}

// TaxEvent is one detected tax amount. Amount is the tax portion only,
// always positive. Category and GSTRate are set on inferred events.
type TaxEvent struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      TaxSource       `json:"source"`
	Category    string          `json:"category,omitempty"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	Date        string          `json:"date"`
}

// TypeSummary accumulates all events of one tax type, in input order.
type TypeSummary struct {
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
	Transactions []TaxEvent      `json:"transactions"`
}

// TaxReport is the result of one analysis run. TotalTax always equals the
// sum over ByType; the ByMonth sum can fall short of TotalTax because
// events with unknown dates are missing from ByMonth.
type TaxReport struct {
	TotalTax     decimal.Decimal            `json:"total_tax"`
	Count        int                        `json:"count"`
	ByType       map[string]*TypeSummary    `json:"by_type"`
	ByMonth      map[string]decimal.Decimal `json:"by_month"`
	Transactions []TaxEvent                 `json:"transactions"`
}

// TableRow is one decoded tabular row. Headers keeps the original column
// order, which column-hint resolution depends on; Values maps header to
// cell text.
type TableRow struct {
	Headers []string          `json:"headers"`
	Values  map[string]string `json:"values"`
}

// ExtractionQuality scores how trustworthy the extracted statement text is.
type ExtractionQuality struct {
	OcrConfidence float64  `json:"ocr_confidence"`
	TextScore     float64  `json:"text_score"`
	FinalScore    float64  `json:"final_score"`
	Issues        []string `json:"issues,omitempty"`
}

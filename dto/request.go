package dto

// AnalyzeLinesRequest carries raw statement text, one line per entry.
type AnalyzeLinesRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// Validate performs basic validation on the request
func (r *AnalyzeLinesRequest) Validate() error {
	if r.Lines == nil {
		return ErrNilInput
	}
	return nil
}

// AnalyzeTransactionsRequest carries pre-segmented transaction candidates.
type AnalyzeTransactionsRequest struct {
	Transactions []RawTransactionCandidate `json:"transactions" binding:"required"`
}

// Validate performs basic validation on the request
func (r *AnalyzeTransactionsRequest) Validate() error {
	if r.Transactions == nil {
		return ErrNilInput
	}
	return nil
}

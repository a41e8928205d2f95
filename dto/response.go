package dto

import "errors"

// Custom errors
var (
	ErrNilInput        = errors.New("input sequence is nil")
	ErrUnsupportedFile = errors.New("unsupported file type: expected .pdf, .csv or .txt")
	ErrEmptyCSV        = errors.New("csv file has no header row")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// TaxAnalysisResponse is the final response structure
type TaxAnalysisResponse struct {
	Report      *TaxReport         `json:"report"`
	Mode        string             `json:"mode"`
	SourceFile  string             `json:"source_file,omitempty"`
	Quality     *ExtractionQuality `json:"quality,omitempty"`
	ProcessedAt string             `json:"processed_at"`
}

package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/Aashish23092/statement-tax-analyzer/dto"
	"github.com/Aashish23092/statement-tax-analyzer/service"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	statementService *service.StatementService
	analyzer         *service.TaxAnalyzer
}

func NewTaxHandler(statementService *service.StatementService, analyzer *service.TaxAnalyzer) *TaxHandler {
	return &TaxHandler{
		statementService: statementService,
		analyzer:         analyzer,
	}
}

// AnalyzeStatement handles POST /tax/analyze: a multipart statement upload
// (.pdf, .csv or .txt), with an optional password for protected PDFs.
func (h *TaxHandler) AnalyzeStatement(c *gin.Context) {
	log.Println("Received statement analysis request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No statement file provided", err)
		return
	}
	password := c.PostForm("password")

	response, err := h.statementService.AnalyzeUpload(fileHeader, password)
	if err != nil {
		if err == dto.ErrUnsupportedFile || err == dto.ErrEmptyCSV {
			h.sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to analyze statement", err)
		return
	}

	log.Printf("Statement analysis completed: %d tax events", response.Report.Count)
	c.JSON(http.StatusOK, response)
}

// AnalyzeLines handles POST /tax/analyze-lines: raw statement text already
// split into lines by the caller.
func (h *TaxHandler) AnalyzeLines(c *gin.Context) {
	var request dto.AnalyzeLinesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	report, err := h.analyzer.AnalyzeLines(request.Lines)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, dto.TaxAnalysisResponse{
		Report:      report,
		Mode:        "lines",
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// AnalyzeTransactions handles POST /tax/analyze-transactions: transaction
// candidates a collaborator already segmented into date/description/amount.
func (h *TaxHandler) AnalyzeTransactions(c *gin.Context) {
	var request dto.AnalyzeTransactionsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	report, err := h.analyzer.AnalyzeStructured(request.Transactions)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, dto.TaxAnalysisResponse{
		Report:      report,
		Mode:        "structured",
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *TaxHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ANALYSIS_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}

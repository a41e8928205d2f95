package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/statement-tax-analyzer/client"
	"github.com/Aashish23092/statement-tax-analyzer/dto"
)

// StatementService turns uploaded statement files into tax reports: PDFs go
// through text extraction (with an OCR fallback for scanned documents), CSVs
// are decoded into ordered rows, and plain text is split into lines. The
// analyzer does the rest.
type StatementService struct {
	analyzer     *TaxAnalyzer
	pdfProcessor PDFProcessor
	ocrClient    *client.TesseractClient
}

func NewStatementService(
	analyzer *TaxAnalyzer,
	pdfProcessor PDFProcessor,
	ocrClient *client.TesseractClient,
) *StatementService {
	return &StatementService{
		analyzer:     analyzer,
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
	}
}

// AnalyzeUpload dispatches an uploaded statement file on its extension and
// returns the finished tax analysis.
func (s *StatementService) AnalyzeUpload(fileHeader *multipart.FileHeader, password string) (*dto.TaxAnalysisResponse, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}

	var report *dto.TaxReport
	var quality *dto.ExtractionQuality
	var mode string

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf":
		text, q := s.extractStatementText(fileBytes, password)
		report, err = s.analyzer.AnalyzeLines(strings.Split(text, "\n"))
		quality = q
		mode = "pdf"
	case ".csv":
		rows, rowErr := ParseStatementCSV(fileBytes)
		if rowErr != nil {
			return nil, rowErr
		}
		report, err = s.analyzer.AnalyzeRows(rows)
		mode = "csv"
	case ".txt":
		report, err = s.analyzer.AnalyzeLines(strings.Split(string(fileBytes), "\n"))
		mode = "text"
	default:
		return nil, dto.ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Analyzed %s: %d tax events, total %s", fileHeader.Filename, report.Count, report.TotalTax.StringFixed(2))

	return &dto.TaxAnalysisResponse{
		Report:      report,
		Mode:        mode,
		SourceFile:  fileHeader.Filename,
		Quality:     quality,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// extractStatementText reads the PDF's embedded text layer and, when that
// looks too weak to be a real statement, falls back to OCR over the page
// images. Extraction never fails hard: a statement that yields nothing just
// produces an empty report with the issues recorded in the quality score.
func (s *StatementService) extractStatementText(pdfData []byte, password string) (string, *dto.ExtractionQuality) {
	quality := &dto.ExtractionQuality{}

	text, err := s.pdfProcessor.ExtractText(pdfData, password)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
		quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
	}

	quality.TextScore = statementTextQuality(text)
	if quality.TextScore >= 50 {
		quality.OcrConfidence = 100.0
		quality.FinalScore = 100.0
		return text, quality
	}

	log.Println("PDF text is weak, attempting image-based OCR")

	images, imgErr := s.pdfProcessor.ExtractImages(pdfData, password)
	if imgErr != nil || len(images) == 0 {
		log.Printf("Failed to extract images from PDF: %v", imgErr)
		quality.Issues = append(quality.Issues, "pdf_image_extraction_failed")
		return text, quality
	}

	var combinedText strings.Builder
	var totalConfidence float64
	var pageCount int

	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, pageConf, ocrErr := s.ocrClient.ExtractTextAndQuality(tempImgFile)
		os.Remove(tempImgFile)
		if ocrErr != nil {
			log.Printf("OCR failed for a statement page: %v", ocrErr)
			continue
		}

		combinedText.WriteString(pageText)
		combinedText.WriteString("\n") // Page break
		totalConfidence += pageConf
		pageCount++
	}

	if pageCount == 0 {
		quality.Issues = append(quality.Issues, "scanned_pdf_ocr_failed")
		return text, quality
	}

	ocrText := combinedText.String()
	quality.OcrConfidence = totalConfidence / float64(pageCount)
	quality.TextScore = statementTextQuality(ocrText)
	quality.FinalScore = (quality.OcrConfidence + quality.TextScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}
	return ocrText, quality
}

// ParseStatementCSV decodes header-row CSV bytes into ordered table rows.
// Ragged records are tolerated; cells beyond the header width are dropped.
func ParseStatementCSV(data []byte) ([]dto.TableRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, dto.ErrEmptyCSV
	}

	rows := []dto.TableRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed records, the row just contributes nothing.
			continue
		}

		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				values[header] = record[i]
			}
		}
		rows = append(rows, dto.TableRow{Headers: headers, Values: values})
	}

	return rows, nil
}

// statementTextQuality scores extracted text 0-100 on length and the
// presence of bank-statement vocabulary, deciding whether the embedded PDF
// text is usable or the scanned-page OCR path should run.
func statementTextQuality(text string) float64 {
	if text == "" {
		return 0.0
	}

	score := 0.0

	// Length score (max 40 points)
	textLen := len(strings.TrimSpace(text))
	if textLen > 500 {
		score += 40.0
	} else if textLen > 100 {
		score += 20.0
	} else if textLen > 20 {
		score += 10.0
	}

	// Keyword presence score (max 60 points)
	keywords := []string{
		"date", "balance", "withdrawal", "deposit", "account",
		"statement", "upi", "neft", "gst",
	}

	textLower := strings.ToLower(text)
	keywordCount := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}

	score += float64(keywordCount) * 6.67

	if score > 100.0 {
		score = 100.0
	}

	return score
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "stmt-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}

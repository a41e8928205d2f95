package main

import (
	"log"
	"os"

	"github.com/Aashish23092/statement-tax-analyzer/client"
	"github.com/Aashish23092/statement-tax-analyzer/config"
	"github.com/Aashish23092/statement-tax-analyzer/handler"
	"github.com/Aashish23092/statement-tax-analyzer/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Tesseract v5 needs TESSDATA_PREFIX before the first client is created
	if os.Getenv("TESSDATA_PREFIX") == "" {
		os.Setenv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize OCR client for scanned statement PDFs
	ocrClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer ocrClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize the tax analysis engine with the production rule sets
	analyzer := service.NewDefaultTaxAnalyzer()

	// Initialize service layer
	statementService := service.NewStatementService(analyzer, pdfProcessor, ocrClient)

	// Initialize handler layer
	taxHandler := handler.NewTaxHandler(statementService, analyzer)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Statement Tax Analyzer",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		tax := api.Group("/tax")
		{
			tax.POST("/analyze", taxHandler.AnalyzeStatement)
			tax.POST("/analyze-lines", taxHandler.AnalyzeLines)
			tax.POST("/analyze-transactions", taxHandler.AnalyzeTransactions)
		}
	}

	// Start server
	log.Printf("Starting Statement Tax Analyzer on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/akshaydev2089/payslip-vault/client"
	"github.com/akshaydev2089/payslip-vault/config"
	"github.com/akshaydev2089/payslip-vault/handler"
	"github.com/akshaydev2089/payslip-vault/parser"
	"github.com/akshaydev2089/payslip-vault/parser/corporate"
	"github.com/akshaydev2089/payslip-vault/parser/generic"
	"github.com/akshaydev2089/payslip-vault/parser/pcda"
	"github.com/akshaydev2089/payslip-vault/service"
	"github.com/akshaydev2089/payslip-vault/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadConfig()
	if cfg.EncryptionPassphrase == "" {
		logger.Error("ENCRYPTION_PASSPHRASE is required")
		os.Exit(1)
	}

	// Collaborators
	encryption := service.NewAESEncryptionService(cfg.EncryptionPassphrase, []byte(cfg.EncryptionSalt))
	payslipStore := store.NewSQLiteStore(cfg.DatabasePath, logger)
	defer payslipStore.Close()

	// Strategies are tried in this order; first valid result wins.
	registry := parser.NewRegistry(logger,
		pcda.New(),
		corporate.New(),
		generic.New(),
	)

	var ocr *client.TesseractClient
	if cfg.OCREnabled {
		ocr = client.NewTesseractClient(cfg.TesseractDataPath)
	}

	// Pipeline
	pdfService := service.NewPDFService(encryption, logger)
	extractor := service.NewTextExtractor(encryption, registry, ocr, logger)
	normalizer := parser.NewNormalizer()
	processor := service.NewPayslipProcessor(pdfService, extractor, normalizer, payslipStore, logger)
	exporter := service.NewExportService(payslipStore, logger)

	payslipHandler := handler.NewPayslipHandler(processor, extractor, exporter, payslipStore, cfg.MaxFileSize, logger)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Payslip Vault",
		})
	})

	api := router.Group("/api/v1")
	{
		payslips := api.Group("/payslips")
		{
			payslips.POST("", payslipHandler.Upload)
			payslips.GET("", payslipHandler.List)
			payslips.GET("/export", payslipHandler.Export)
			payslips.GET("/:id", payslipHandler.Get)
			payslips.DELETE("/:id", payslipHandler.Delete)
		}
		api.GET("/strategies", payslipHandler.Strategies)
	}

	logger.Info("starting payslip vault", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

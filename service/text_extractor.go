package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/akshaydev2089/payslip-vault/client"
	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/parser"
)

// minEmbeddedText is the signal threshold below which a PDF is treated as
// scanned and handed to the OCR fallback.
const minEmbeddedText = 20

// TextExtractor reverses at-rest encryption and flattens a payslip PDF into
// a single text stream with explicit page boundaries, then runs the parser
// registry over it.
type TextExtractor struct {
	encryption EncryptionService
	registry   *parser.Registry
	ocr        *client.TesseractClient // nil disables the scanned-PDF fallback
	logger     *slog.Logger
}

func NewTextExtractor(encryption EncryptionService, registry *parser.Registry, ocr *client.TesseractClient, logger *slog.Logger) *TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractor{
		encryption: encryption,
		registry:   registry,
		ocr:        ocr,
		logger:     logger,
	}
}

// StrategyNames reports the registered parsing strategies in priority order.
func (e *TextExtractor) StrategyNames() []string {
	return e.registry.Names()
}

// ExtractText decrypts an encrypted payslip blob and returns its pages
// joined with "--- Page N ---" separators. Pages without text contribute an
// empty segment, not an error.
func (e *TextExtractor) ExtractText(encrypted []byte) (string, error) {
	data, err := e.encryption.Decrypt(encrypted)
	if err != nil {
		return "", &dto.ExtractionError{Cause: err}
	}
	return e.extractFromPDF(data)
}

// ExtractParsedData decrypts, extracts text and runs the strategy registry,
// returning the intermediate parse and the name of the winning strategy.
func (e *TextExtractor) ExtractParsedData(encrypted []byte) (*dto.ParsedPayslipData, string, error) {
	text, err := e.ExtractText(encrypted)
	if err != nil {
		return nil, "", err
	}
	return e.registry.Parse(text)
}

func (e *TextExtractor) extractFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", dto.ErrInvalidPDF
	}

	var builder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		if pageIndex > 1 {
			builder.WriteString(fmt.Sprintf("\n--- Page %d ---\n", pageIndex))
		}

		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		rows, _ := p.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
	}

	text := builder.String()
	if len(strings.TrimSpace(text)) < minEmbeddedText && e.ocr != nil {
		e.logger.Info("embedded text too weak, attempting OCR fallback", "bytes", len(text))
		if ocrText, err := e.ocrPages(data); err == nil && strings.TrimSpace(ocrText) != "" {
			return ocrText, nil
		} else if err != nil {
			e.logger.Warn("OCR fallback failed", "error", err)
		}
	}

	return text, nil
}

// ocrPages extracts page images with pdfcpu and runs each through
// Tesseract, joining pages with the same separator embedded text uses.
func (e *TextExtractor) ocrPages(data []byte) (string, error) {
	tempDir, err := os.MkdirTemp("", "payslip_pages")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "payslip-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract page images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}

	var builder strings.Builder
	page := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		page++
		if page > 1 {
			builder.WriteString(fmt.Sprintf("\n--- Page %d ---\n", page))
		}

		text, confidence, err := e.ocr.ExtractTextAndConfidence(filepath.Join(tempDir, entry.Name()))
		if err != nil {
			e.logger.Warn("OCR failed for page image", "image", entry.Name(), "error", err)
			continue
		}
		e.logger.Debug("OCR page done", "image", entry.Name(), "confidence", confidence)
		builder.WriteString(text)
	}

	return builder.String(), nil
}

package service

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/akshaydev2089/payslip-vault/dto"
)

// pdfSignature is the only wire-format contract the gate enforces.
var pdfSignature = []byte("%PDF")

// PDFService is the validation and encryption gate. A candidate payslip
// passes an ordered series of checks, each with its own error kind, before
// its serialized bytes are handed to the encryption collaborator.
type PDFService struct {
	encryption EncryptionService
	logger     *slog.Logger
}

func NewPDFService(encryption EncryptionService, logger *slog.Logger) *PDFService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFService{encryption: encryption, logger: logger}
}

// ProcessFile validates the payslip at path and returns its encrypted bytes.
func (s *PDFService) ProcessFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dto.ErrFileNotFound
		}
		return nil, &dto.FileReadError{Cause: err}
	}
	if info.Size() == 0 {
		return nil, dto.ErrEmptyFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &dto.FileReadError{Cause: err}
	}

	return s.ProcessBytes(data)
}

// ProcessBytes validates candidate payslip bytes and returns the encrypted
// blob. Checks run in a fixed order: emptiness, %PDF signature, structural
// validity, page count, re-serialization. Only after all checks pass do the
// bytes reach the encryption collaborator.
func (s *PDFService) ProcessBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, dto.ErrEmptyFile
	}
	if len(data) < len(pdfSignature) || !bytes.HasPrefix(data, pdfSignature) {
		return nil, dto.ErrInvalidPDFFormat
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		s.logger.Warn("rejected structurally invalid PDF", "error", err)
		return nil, dto.ErrInvalidPDF
	}
	if err := api.ValidateContext(ctx); err != nil {
		s.logger.Warn("rejected invalid PDF", "error", err)
		return nil, dto.ErrInvalidPDF
	}
	if ctx.PageCount < 1 {
		return nil, dto.ErrEmptyPDF
	}

	var serialized bytes.Buffer
	if err := api.WriteContext(ctx, &serialized); err != nil {
		s.logger.Error("failed to re-serialize PDF", "error", err)
		return nil, dto.ErrConversionFailed
	}

	encrypted, err := s.encryption.Encrypt(serialized.Bytes())
	if err != nil {
		return nil, &dto.ProcessingError{Cause: err}
	}

	s.logger.Info("payslip validated and encrypted",
		"pages", ctx.PageCount, "plaintext_bytes", serialized.Len(), "encrypted_bytes", len(encrypted))
	return encrypted, nil
}

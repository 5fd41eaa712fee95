package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/service"
	"github.com/akshaydev2089/payslip-vault/store"
)

type PayslipHandler struct {
	processor   *service.PayslipProcessor
	extractor   *service.TextExtractor
	exporter    *service.ExportService
	store       store.PayslipStore
	maxFileSize int64 // 0 disables the size check
	logger      *slog.Logger
}

func NewPayslipHandler(
	processor *service.PayslipProcessor,
	extractor *service.TextExtractor,
	exporter *service.ExportService,
	st store.PayslipStore,
	maxFileSize int64,
	logger *slog.Logger,
) *PayslipHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayslipHandler{
		processor:   processor,
		extractor:   extractor,
		exporter:    exporter,
		store:       st,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Upload handles POST /payslips: runs an uploaded PDF through the full
// pipeline and returns the stored record.
func (h *PayslipHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, codeInvalidRequest, "PDF file is required", err)
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusRequestEntityTooLarge, codeFileTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", h.maxFileSize), nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, codeInvalidRequest, "failed to open uploaded file", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, codeInvalidRequest, "failed to read uploaded file", err)
		return
	}

	result, err := h.processor.Process(c.Request.Context(), data)
	if err != nil {
		h.sendError(c, statusFor(err), codeFor(err), "failed to process payslip", err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Payslip:     result.Payslip,
		Strategy:    result.Strategy,
		Breakdown:   result.Breakdown,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// List handles GET /payslips, newest first.
func (h *PayslipHandler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, codeFor(err), "failed to list payslips", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Payslips: items, Count: len(items)})
}

// Get handles GET /payslips/:id.
func (h *PayslipHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid payslip id", err)
		return
	}

	item, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.sendError(c, http.StatusNotFound, codeNotFound, "payslip not found", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, codeFor(err), "failed to load payslip", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /payslips/:id.
func (h *PayslipHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, codeInvalidRequest, "invalid payslip id", err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.sendError(c, http.StatusNotFound, codeNotFound, "payslip not found", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, codeFor(err), "failed to delete payslip", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /payslips/export with an XLSX workbook. The workbook is
// assembled in memory first so a store failure yields a clean error response
// instead of a half-written attachment.
func (h *PayslipHandler) Export(c *gin.Context) {
	var workbook bytes.Buffer
	if err := h.exporter.WriteXLSX(c.Request.Context(), &workbook); err != nil {
		h.sendError(c, http.StatusInternalServerError, codeFor(err), "failed to export payslips", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payslips.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook.Bytes())
}

// Strategies handles GET /strategies for diagnostics.
func (h *PayslipHandler) Strategies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StrategiesResponse{Strategies: h.extractor.StrategyNames()})
}

// Machine-readable error classes for API consumers.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeFileTooLarge   = "FILE_TOO_LARGE"
	codeInvalidFile    = "INVALID_PAYSLIP_FILE"
	codeParsingFailed  = "PAYSLIP_PARSING_FAILED"
	codeNotFound       = "PAYSLIP_NOT_FOUND"
	codeProcessing     = "PAYSLIP_PROCESSING_FAILED"
)

// statusFor maps pipeline error kinds onto HTTP status codes.
func statusFor(err error) int {
	var parsingErr *dto.ParsingError
	switch {
	case errors.Is(err, dto.ErrFileNotFound),
		errors.Is(err, dto.ErrEmptyFile),
		errors.Is(err, dto.ErrInvalidPDFFormat),
		errors.Is(err, dto.ErrInvalidPDF),
		errors.Is(err, dto.ErrEmptyPDF):
		return http.StatusBadRequest
	case errors.As(err, &parsingErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// codeFor maps pipeline error kinds onto error classes.
func codeFor(err error) string {
	var parsingErr *dto.ParsingError
	switch {
	case errors.Is(err, dto.ErrFileNotFound),
		errors.Is(err, dto.ErrEmptyFile),
		errors.Is(err, dto.ErrInvalidPDFFormat),
		errors.Is(err, dto.ErrInvalidPDF),
		errors.Is(err, dto.ErrEmptyPDF):
		return codeInvalidFile
	case errors.As(err, &parsingErr):
		return codeParsingFailed
	case errors.Is(err, store.ErrNotFound):
		return codeNotFound
	default:
		return codeProcessing
	}
}

// sendError sends a structured error response
func (h *PayslipHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Error(message, "error", err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

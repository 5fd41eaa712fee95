package dto

import (
	"errors"
	"fmt"
)

// Ingestion errors, one per validation gate check.
var (
	ErrFileNotFound     = errors.New("payslip file not found")
	ErrEmptyFile        = errors.New("payslip file is empty")
	ErrInvalidPDFFormat = errors.New("file does not start with a %PDF signature")
	ErrInvalidPDF       = errors.New("bytes do not form a valid PDF document")
	ErrEmptyPDF         = errors.New("PDF document contains no pages")
	ErrConversionFailed = errors.New("PDF document could not be re-serialized")
)

// Extraction and store errors.
var (
	ErrNotInitialized  = errors.New("service used before initialization")
	ErrUnsupportedType = errors.New("store only accepts payslip items")
)

// FileReadError wraps an I/O failure while reading a candidate payslip.
type FileReadError struct {
	Cause error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read payslip file: %v", e.Cause)
}

func (e *FileReadError) Unwrap() error { return e.Cause }

// ProcessingError is the catch-all wrapper for anything else raised during
// ingestion, including encryption failures.
type ProcessingError struct {
	Cause error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("payslip processing failed: %v", e.Cause)
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

// ExtractionError wraps a failure to decrypt or read back a stored payslip
// during text extraction.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("payslip extraction failed: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// ParsingError is the coordinator-level failure raised when no registered
// strategy produced a valid parse. Strategy names the last one attempted.
type ParsingError struct {
	Strategy string
	Reason   string
}

func (e *ParsingError) Error() string {
	if e.Strategy == "" {
		return fmt.Sprintf("payslip parsing failed: %s", e.Reason)
	}
	return fmt.Sprintf("payslip parsing failed: strategy %q: %s", e.Strategy, e.Reason)
}

package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/akshaydev2089/payslip-vault/dto"
)

// ErrNoMatch signals that a strategy cannot parse the given text. It is
// non-fatal: the registry moves on to the next strategy.
var ErrNoMatch = errors.New("text does not match this payslip format")

// PayslipParser is one interchangeable strategy for turning extracted text
// into structured payslip data. Implementations must return ErrNoMatch (or
// nil data) rather than guess when the text is not in their format.
type PayslipParser interface {
	Name() string
	Parse(text string) (*dto.ParsedPayslipData, error)
}

// Registry holds a prioritized list of parsing strategies and selects the
// first one that yields a valid result. Selection is deterministic for a
// fixed strategy list and input.
type Registry struct {
	parsers []PayslipParser
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger, parsers ...PayslipParser) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{parsers: parsers, logger: logger}
}

// Names returns the registered strategy names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		names[i] = p.Name()
	}
	return names
}

// Parse tries each strategy in registration order and returns the first
// result that passes the validity check, along with the winning strategy's
// name. When every strategy rejects the text, the returned error names the
// last attempted strategy and its rejection cause.
func (r *Registry) Parse(text string) (*dto.ParsedPayslipData, string, error) {
	lastStrategy := ""
	lastReason := "no strategies registered"

	for _, p := range r.parsers {
		lastStrategy = p.Name()

		data, err := p.Parse(text)
		if err != nil {
			lastReason = err.Error()
			r.logger.Debug("strategy rejected text", "strategy", p.Name(), "reason", err)
			continue
		}
		if data == nil {
			lastReason = "strategy returned no data"
			continue
		}
		if !isValidParse(data) {
			lastReason = "result failed minimal validity check"
			r.logger.Debug("strategy result invalid", "strategy", p.Name())
			continue
		}

		r.logger.Info("payslip parsed", "strategy", p.Name(),
			"earnings", len(data.Earnings), "deductions", len(data.Deductions))
		return data, p.Name(), nil
	}

	return nil, "", &dto.ParsingError{Strategy: lastStrategy, Reason: lastReason}
}

// isValidParse is the minimal validity predicate: at least one non-empty
// monetary map, and something identifying the statement or its owner.
func isValidParse(d *dto.ParsedPayslipData) bool {
	if len(d.Earnings) == 0 && len(d.Deductions) == 0 {
		return false
	}
	return len(d.PersonalInfo) > 0 || len(d.Metadata) > 0
}

// String implements fmt.Stringer for diagnostics.
func (r *Registry) String() string {
	return fmt.Sprintf("parser.Registry%v", r.Names())
}

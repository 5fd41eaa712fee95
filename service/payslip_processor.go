package service

import (
	"context"
	"log/slog"

	"github.com/akshaydev2089/payslip-vault/dto"
	"github.com/akshaydev2089/payslip-vault/parser"
	"github.com/akshaydev2089/payslip-vault/store"
)

// DocumentGate validates raw payslip bytes and returns the encrypted blob.
type DocumentGate interface {
	ProcessBytes(data []byte) ([]byte, error)
}

// ParsedDataExtractor turns an encrypted blob into a strategy's intermediate
// parse, reporting which strategy won.
type ParsedDataExtractor interface {
	ExtractParsedData(encrypted []byte) (*dto.ParsedPayslipData, string, error)
}

// PayslipProcessor drives one payslip through the whole pipeline:
// validation → encryption → extraction → strategy selection → normalization
// → persistence. Each document is processed sequentially; a record is either
// fully constructed and stored, or not produced at all.
type PayslipProcessor struct {
	pdf        DocumentGate
	extractor  ParsedDataExtractor
	normalizer *parser.Normalizer
	store      store.PayslipStore
	logger     *slog.Logger
}

func NewPayslipProcessor(
	pdf DocumentGate,
	extractor ParsedDataExtractor,
	normalizer *parser.Normalizer,
	st store.PayslipStore,
	logger *slog.Logger,
) *PayslipProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayslipProcessor{
		pdf:        pdf,
		extractor:  extractor,
		normalizer: normalizer,
		store:      st,
		logger:     logger,
	}
}

// Result carries everything a successful pipeline run produced.
type Result struct {
	Payslip  *dto.PayslipItem
	Strategy string
	// Breakdown is presentation-only tax/DSOP detail, not part of the
	// record's invariants.
	Breakdown map[string]string
}

// Process runs the full pipeline over raw payslip bytes and persists the
// resulting record.
func (p *PayslipProcessor) Process(ctx context.Context, data []byte) (*Result, error) {
	encrypted, err := p.pdf.ProcessBytes(data)
	if err != nil {
		return nil, err
	}

	parsed, strategy, err := p.extractor.ExtractParsedData(encrypted)
	if err != nil {
		return nil, err
	}

	item := p.normalizer.Normalize(parsed, encrypted)
	p.normalizer.NormalizeKeys(item)

	if err := p.store.Save(ctx, item); err != nil {
		return nil, err
	}

	p.logger.Info("payslip processed",
		"id", item.ID, "strategy", strategy,
		"month", item.Month, "year", item.Year,
		"credits", item.Credits, "debits", item.Debits,
		"tax", item.Tax, "dsop", item.DSOP)

	return &Result{
		Payslip:   item,
		Strategy:  strategy,
		Breakdown: parser.DisplayMetadata(parsed),
	}, nil
}

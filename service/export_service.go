package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/akshaydev2089/payslip-vault/store"
)

// ExportService streams stored payslips into an XLSX workbook.
type ExportService struct {
	store  store.PayslipStore
	logger *slog.Logger
}

func NewExportService(st store.PayslipStore, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{store: st, logger: logger}
}

var exportHeader = []string{
	"Month", "Year", "Name", "Credits", "Debits", "DSOP", "Income Tax", "Net Remittance",
}

// WriteXLSX writes all stored payslips, newest first, to w.
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	items, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for row, item := range items {
		values := []any{
			item.Month, item.Year, item.Name,
			item.Credits, item.Debits, item.DSOP, item.Tax, item.NetRemittance(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("payslips exported", "count", len(items))
	return nil
}

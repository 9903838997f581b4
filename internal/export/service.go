// Package export flattens stored records into tabular reports.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/willowhq/invoice-vault/constants"
	"github.com/willowhq/invoice-vault/internal/entity"
	"github.com/willowhq/invoice-vault/internal/repository"
)

// Headers are the fixed human-readable export columns, in order.
var Headers = []string{
	"Filename",
	"Invoice No",
	"Invoice Date",
	"Vendor Name",
	"Vendor GSTIN",
	"Buyer Name",
	"CGST",
	"SGST",
	"Grand Total",
	"Currency",
	"Status",
	"Processed On",
}

// Row maps a column header to its string value.
type Row map[string]string

// Service reads plaintext summary columns and renders them as rows or an
// XLSX workbook. The encrypted payload is never touched here.
type Service struct {
	repo   repository.InvoiceRepository
	logger *slog.Logger
}

func NewService(repo repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Rows returns one row per stored record, in store-iteration order. An empty
// store yields zero rows.
func (s *Service) Rows(ctx context.Context) ([]Row, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, recordRow(rec))
	}
	return rows, nil
}

func recordRow(rec entity.InvoiceRecord) Row {
	f := rec.Fields
	row := Row{
		"Filename":     rec.Filename,
		"Invoice No":   f.InvoiceNumber,
		"Invoice Date": f.InvoiceDate,
		"Vendor Name":  f.VendorName,
		"Vendor GSTIN": f.VendorGSTIN,
		"Buyer Name":   f.BuyerName,
		"CGST":         f.CGST,
		"SGST":         f.SGST,
		"Grand Total":  f.GrandTotal,
		"Currency":     f.Currency,
		"Status":       string(rec.Status),
		"Processed On": rec.UploadedAt.UTC().Format(constants.UploadTimeLayout),
	}
	for k, v := range row {
		row[k] = sanitizeCell(v)
	}
	return row
}

// WriteXLSX renders all rows as an XLSX workbook and returns its bytes.
func (s *Service) WriteXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, row := range rows {
		for colIdx, h := range Headers {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, row[h])
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // filename
	_ = f.SetColWidth(sheet, "B", "C", 16) // invoice no / date
	_ = f.SetColWidth(sheet, "D", "F", 28) // vendor / gstin / buyer
	_ = f.SetColWidth(sheet, "G", "I", 12) // amounts
	_ = f.SetColWidth(sheet, "L", "L", 18) // processed on

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// sanitizeCell neutralizes spreadsheet formula injection: a leading '=', '+',
// '-', or '@' is quoted so consumers render the value as text.
func sanitizeCell(v string) string {
	if v == "" {
		return v
	}
	if strings.ContainsRune("=+-@", rune(v[0])) {
		return "'" + v
	}
	return v
}

// Package export renders payment-request entries as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
)

// Service is a tiny façade producing workbook/CSV bytes for exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

var exportHeaders = []string{
	"伝票タイトル",
	"相手先",
	"請求書番号",
	"取引年月日",
	"支払日",
	"担当者",
	"支払方法",
	"金額",
	"消費税額",
	"合計金額",
	"ステータス",
	"登録日時",
}

func entryRow(e *entity.Entry) []any {
	return []any{
		e.SlipTitle,
		e.PayeeName,
		e.InvoiceNumber,
		e.TransactionDate,
		e.PaymentDate,
		e.StaffName,
		e.PaymentMethod,
		e.Amount,
		e.TaxAmount,
		e.TotalAmount,
		string(e.Status),
		e.CreatedAt.Format(time.RFC3339),
	}
}

// EntriesXLSX returns an XLSX workbook with one row per entry.
func (s *Service) EntriesXLSX(entries []*entity.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "支払依頼"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, e := range entries {
		for col, v := range entryRow(e) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok", "entries", len(entries), "bytes", buf.Len(), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

// EntriesCSV returns a UTF-8 CSV with the same columns as the workbook.
func (s *Service) EntriesCSV(entries []*entity.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		row := entryRow(e)
		strs := make([]string, len(row))
		for i, v := range row {
			strs[i] = fmt.Sprint(v)
		}
		if err := w.Write(strs); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info("export.csv.ok", "entries", len(entries), "bytes", buf.Len())
	return buf.Bytes(), nil
}

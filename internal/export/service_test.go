package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Masanori-Bessho/kaikei-poc-repo/constants"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
)

func testService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleEntries() []*entity.Entry {
	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	return []*entity.Entry{
		{
			SlipTitle:       "7月分請求書",
			PayeeName:       "ACME Corp",
			InvoiceNumber:   "INV-1",
			TransactionDate: "2025-07-01",
			PaymentDate:     "2025-08-31",
			StaffName:       "山田太郎",
			PaymentMethod:   "銀行振込",
			Amount:          1000,
			TaxAmount:       100,
			TotalAmount:     1100,
			Status:          constants.EntryStatusSubmitted,
			CreatedAt:       created,
		},
	}
}

func TestEntriesCSV(t *testing.T) {
	out, err := testService().EntriesCSV(sampleEntries())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, exportHeaders, records[0])
	require.Equal(t, "ACME Corp", records[1][1])
	require.Equal(t, "1100", records[1][9])
	require.Equal(t, "SUBMITTED", records[1][10])
}

func TestEntriesCSVEmpty(t *testing.T) {
	out, err := testService().EntriesCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestEntriesXLSX(t *testing.T) {
	out, err := testService().EntriesXLSX(sampleEntries())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("支払依頼")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "伝票タイトル", rows[0][0])
	require.Equal(t, "ACME Corp", rows[1][1])
}

package ocrscan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

func TestExtractDirectKeys(t *testing.T) {
	raw := decodeTree(t, `{
		"json1": "請求書",
		"json2": "INV-2025-001",
		"json3": "ACME Corp",
		"json4": "2025-07-01",
		"json5": "2025-06",
		"json6": "2025-07",
		"json7": "2025-08-31",
		"json8": "山田太郎",
		"json9": "銀行振込",
		"confidence": 92
	}`)

	data := newTestExtractor().Extract(raw)
	require.Equal(t, "請求書", data.SlipTitleCandidate)
	require.Equal(t, "INV-2025-001", data.InvoiceNumber)
	require.Equal(t, "ACME Corp", data.PayeeName)
	require.Equal(t, "2025-07-01", data.IssueDate)
	require.Equal(t, "2025-06", data.OccurrenceMonthStart)
	require.Equal(t, "2025-07", data.OccurrenceMonthEnd)
	require.Equal(t, "2025-08-31", data.PaymentDate)
	require.Equal(t, "山田太郎", data.StaffName)
	require.Equal(t, "銀行振込", data.PaymentMethod)
	require.Equal(t, 92.0, data.Confidence)
}

func TestExtractEmptyObjectYieldsCompleteEmptyRecord(t *testing.T) {
	data := newTestExtractor().Extract(decodeTree(t, `{}`))

	require.Equal(t, ExtractedData{}, data)
}

func TestExtractNeverPanicsOnHostileShapes(t *testing.T) {
	cases := []string{
		`{}`,
		`null`,
		`[]`,
		`"just a string"`,
		`{"json10": "not an array"}`,
		`{"json10": [null, "x", 5]}`,
		`{"amount": null, "description": null}`,
		`{"a": {"b": {"c": {"d": {"e": {"amount": {"valueText": null}}}}}}}`,
		`{"responsev2": {"predictionOutput": null}}`,
		`{"vendorAddressRecipient": {"valueText": null}}`,
	}
	e := newTestExtractor("テレビ朝日")
	for _, src := range cases {
		require.NotPanics(t, func() {
			_ = e.Extract(decodeTree(t, src))
		}, "input: %s", src)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	raw := decodeTree(t, `{
		"json2": "INV-9",
		"json10": [{"タイトル": "W", "数量": "1", "単価": "10", "金額": "10"}],
		"a": {"amount": {"valueText": "1,000"}},
		"b": {"vendorAddressRecipient": {"valueText": "Gamma KK"}}
	}`)

	e := newTestExtractor()
	first := e.Extract(raw)
	second := e.Extract(raw)
	require.Equal(t, first, second)
}

func TestExtractRecipientOverridesDirectPayee(t *testing.T) {
	raw := decodeTree(t, `{
		"json3": "Guessed Name",
		"x": {"vendorAddressRecipient": {"valueText": "Actual Vendor"}}
	}`)

	data := newTestExtractor().Extract(raw)
	require.Equal(t, "Actual Vendor", data.PayeeName)
}

func TestExtractKeepsDirectPayeeWhenRecipientsExcluded(t *testing.T) {
	raw := decodeTree(t, `{
		"json3": "Guessed Name",
		"x": {"vendorAddressRecipient": {"valueText": "テレビ朝日総務部"}}
	}`)

	data := newTestExtractor("テレビ朝日").Extract(raw)
	require.Equal(t, "Guessed Name", data.PayeeName)
}

func TestExtractAmountAggregation(t *testing.T) {
	raw := decodeTree(t, `{
		"a": {"amount": {"valueText": "1,000"}},
		"b": {"amount": {"valueText": " 2,500 "}},
		"c": {"amount": {"valueText": "500"}}
	}`)

	data := newTestExtractor().Extract(raw)
	require.Equal(t, []string{"4000"}, data.AmountValues)
}

func TestExtractScalarRootYieldsEmptyRecord(t *testing.T) {
	var nilTree *ocrjson.Value
	e := newTestExtractor()
	require.Equal(t, ExtractedData{}, e.Extract(nilTree))
	require.Equal(t, ExtractedData{}, e.Extract(decodeTree(t, `[1,2,3]`)))
}

func TestTransactionDate(t *testing.T) {
	require.Equal(t, "2025-01-02", TransactionDate("2025-01-02", "2025-01-01"))
	require.Equal(t, "2025-01-01", TransactionDate("", "2025-01-01"))
	require.Equal(t, "", TransactionDate("", ""))
}

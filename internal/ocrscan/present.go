package ocrscan

import (
	"fmt"
	"strings"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

// Summary renders the extracted record as the plain-text table shown in the
// scan-result view. Absent fields are shown as 未設定 so the reviewer can see
// at a glance what the scan failed to find.
func Summary(data ExtractedData) string {
	var b strings.Builder

	b.WriteString("読み取り結果\n")
	writeRow(&b, "伝票タイトル", data.SlipTitleCandidate)
	writeRow(&b, "相手先", data.PayeeName)
	writeRow(&b, "請求書番号", data.InvoiceNumber)
	writeRow(&b, "発行日", data.IssueDate)
	writeRow(&b, "発生月（開始）", data.OccurrenceMonthStart)
	writeRow(&b, "発生月（終了）", data.OccurrenceMonthEnd)
	writeRow(&b, "支払日", data.PaymentDate)
	writeRow(&b, "担当者", data.StaffName)
	writeRow(&b, "支払方法", data.PaymentMethod)
	if len(data.AmountValues) > 0 {
		writeRow(&b, "合計金額", strings.Join(data.AmountValues, ", "))
	} else {
		writeRow(&b, "合計金額", "")
	}

	if len(data.LineItems) == 0 {
		b.WriteString("\n明細行が見つかりませんでした。\n")
	} else {
		fmt.Fprintf(&b, "\n明細行 (%d件)\n", len(data.LineItems))
		for i, item := range data.LineItems {
			desc := item.Description
			if desc == "" {
				desc = "未設定"
			}
			fmt.Fprintf(&b, "  %d. %s  数量:%d  単価:%s  金額:%s\n",
				i+1, desc, item.Quantity, FormatAmount(item.UnitPrice), FormatAmount(item.Amount))
		}
	}

	fmt.Fprintf(&b, "\n信頼度: %s%%\n", FormatAmount(data.Confidence))
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	if value == "" {
		value = "未設定"
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

// RawDump pretty-prints the raw OCR response for the audit section of the
// result view. The payload is shown verbatim, key order untouched.
func RawDump(raw *ocrjson.Value) string {
	if raw == nil {
		return "null"
	}
	return raw.Indent()
}

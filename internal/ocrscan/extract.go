// Package ocrscan normalizes the schema-less JSON returned by the invoice-OCR
// vendor into a flat, typed record the payment-request form can consume.
//
// Every rule here degrades locally: a missing key, an unparsable number or an
// excluded candidate becomes an absent or zero value, never an error. The
// form must stay fillable (even if empty) when the OCR output is garbage.
package ocrscan

import (
	"log/slog"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

// Config controls extraction behavior.
type Config struct {
	// ExcludedRecipients lists substrings that disqualify an
	// address-recipient candidate. The operating company's own name goes
	// here so that the "bill to" block is never mistaken for the payee.
	ExcludedRecipients []string
}

// Extractor runs the full set of field extraction rules over one raw OCR
// response. It holds no per-scan state; one Extractor may serve concurrent
// scans.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// ExtractedData is the flat output record of one scan. Every field is
// optional: absent string fields are "", absent numbers are 0, absent lists
// are empty.
type ExtractedData struct {
	SlipTitleCandidate   string     `json:"slip_title_candidate,omitempty"`
	PayeeName            string     `json:"payee_name,omitempty"`
	InvoiceNumber        string     `json:"invoice_number,omitempty"`
	IssueDate            string     `json:"issue_date,omitempty"`
	OccurrenceMonthStart string     `json:"occurrence_month_start,omitempty"`
	OccurrenceMonthEnd   string     `json:"occurrence_month_end,omitempty"`
	PaymentDate          string     `json:"payment_date,omitempty"`
	StaffName            string     `json:"staff_name,omitempty"`
	PaymentMethod        string     `json:"payment_method,omitempty"`
	Confidence           float64    `json:"confidence"`
	AmountValues         []string   `json:"amount_values,omitempty"`
	ItemNames            []string   `json:"item_names,omitempty"`
	Descriptions         []string   `json:"descriptions,omitempty"`
	LineItems            []LineItem `json:"line_items,omitempty"`
}

// Extract runs every extraction rule against the same immutable tree and
// assembles the flat record. It never fails for well-formed JSON: a nil tree,
// a scalar, or an empty object all produce a complete, empty-valued record.
// Calling Extract twice on the same tree returns identical output.
func (e *Extractor) Extract(raw *ocrjson.Value) ExtractedData {
	data := ExtractedData{}
	if raw == nil || raw.Kind != ocrjson.KindObject {
		return data
	}

	data.SlipTitleCandidate = directString(raw, keySlipTitle)
	data.InvoiceNumber = directString(raw, keyInvoiceNumber)
	data.PayeeName = directString(raw, keyPayeeName)
	data.IssueDate = directString(raw, keyIssueDate)
	data.OccurrenceMonthStart = directString(raw, keyOccurrenceStart)
	data.OccurrenceMonthEnd = directString(raw, keyOccurrenceEnd)
	data.PaymentDate = directString(raw, keyPaymentDate)
	data.StaffName = directString(raw, keyStaffName)
	data.PaymentMethod = directString(raw, keyPaymentMethod)
	data.Confidence = directConfidence(raw)

	// An address-recipient match anywhere in the tree overrides the json3
	// candidate: the recipient block is what the document actually says,
	// json3 is the vendor's guess.
	if payee := extractPayeeRecipient(raw, e.cfg.ExcludedRecipients, e.logger); payee != "" {
		data.PayeeName = payee
	}

	data.AmountValues = collectAmountTotal(raw, e.logger)
	data.ItemNames = collectValueText(raw, "itemName", e.logger)
	data.Descriptions = collectValueText(raw, "description", e.logger)
	data.LineItems = extractLineItems(raw, e.logger)

	e.logger.Info("ocrscan.extract.ok",
		"payee", data.PayeeName,
		"invoice_number", data.InvoiceNumber,
		"line_items", len(data.LineItems),
		"confidence", data.Confidence,
	)
	return data
}

// TransactionDate picks the date the form shows as the transaction date: an
// explicit invoice date wins over the extracted issue date; both absent
// yields absent.
func TransactionDate(invoiceDate, issueDate string) string {
	if invoiceDate != "" {
		return invoiceDate
	}
	return issueDate
}

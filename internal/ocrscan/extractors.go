package ocrscan

import (
	"log/slog"
	"strings"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

// Direct top-level keys of the vendor payload. The vendor flattens its own
// prompt outputs into json1..json10; these are read without any tree search.
const (
	keySlipTitle       = "json1"
	keyInvoiceNumber   = "json2"
	keyPayeeName       = "json3"
	keyIssueDate       = "json4"
	keyOccurrenceStart = "json5"
	keyOccurrenceEnd   = "json6"
	keyPaymentDate     = "json7"
	keyStaffName       = "json8"
	keyPaymentMethod   = "json9"
	keyLineItems       = "json10"
	keyConfidence      = "confidence"
)

// directString reads a single top-level key. A missing key or a non-string
// value yields "", not an error.
func directString(raw *ocrjson.Value, key string) string {
	s, ok := raw.Field(key).StringVal()
	if !ok {
		return ""
	}
	trimmed, _ := acceptText(s)
	return trimmed
}

// directConfidence reads the vendor confidence score, which arrives as either
// a number or a numeric string depending on the document.
func directConfidence(raw *ocrjson.Value) float64 {
	v := raw.Field(keyConfidence)
	if n, ok := v.NumberVal(); ok {
		return n
	}
	if s, ok := v.StringVal(); ok {
		return ParseAmount(s)
	}
	return 0
}

// collectValueText finds every node anywhere in the tree whose container key
// matches targetKey and whose value carries a non-empty valueText string.
// Values are trimmed and deduplicated, first occurrence wins.
func collectValueText(raw *ocrjson.Value, targetKey string, logger *slog.Logger) []string {
	var found []string
	ocrjson.Walk(raw, func(key string, value *ocrjson.Value, path string) {
		if key != targetKey {
			return
		}
		s, ok := value.Field("valueText").StringVal()
		if !ok {
			return
		}
		trimmed, ok := acceptText(s)
		if !ok {
			return
		}
		logger.Debug("ocrscan.value_text.found", "key", targetKey, "path", path, "value", trimmed)
		found = appendUnique(found, trimmed)
	})
	return found
}

// collectAmountTotal gathers every amount.valueText in the tree, cleans each
// of whitespace and thousands separators, dedups the cleaned strings, and
// sums them into one aggregate total. The result is a single-element list
// holding the total — the form shows one figure, not the raw matches.
func collectAmountTotal(raw *ocrjson.Value, logger *slog.Logger) []string {
	var cleaned []string
	ocrjson.Walk(raw, func(key string, value *ocrjson.Value, path string) {
		if key != "amount" {
			return
		}
		s, ok := value.Field("valueText").StringVal()
		if !ok {
			return
		}
		trimmed, ok := acceptText(s)
		if !ok {
			return
		}
		c := CleanNumeric(trimmed)
		if c == "" {
			return
		}
		logger.Debug("ocrscan.amount.found", "path", path, "value", c)
		cleaned = appendUnique(cleaned, c)
	})
	if len(cleaned) == 0 {
		return nil
	}
	var total float64
	for _, c := range cleaned {
		total += ParseAmount(c)
	}
	return []string{FormatAmount(total)}
}

// extractPayeeRecipient resolves the payee from address-recipient fields
// scattered through the tree. vendorAddressRecipient beats
// customerAddressRecipient regardless of where either appears; candidates
// containing any excluded substring (the operating company's own name) are
// skipped entirely, even if nothing else is found at that node. Among
// multiple candidates of the same kind the last one encountered is kept,
// matching the behavior the form was built against.
func extractPayeeRecipient(raw *ocrjson.Value, excluded []string, logger *slog.Logger) string {
	var vendor, customer string
	ocrjson.Walk(raw, func(key string, value *ocrjson.Value, path string) {
		if key != "vendorAddressRecipient" && key != "customerAddressRecipient" {
			return
		}
		s, ok := value.Field("valueText").StringVal()
		if !ok {
			return
		}
		trimmed, ok := acceptText(s)
		if !ok {
			return
		}
		if containsAny(trimmed, excluded) {
			logger.Debug("ocrscan.recipient.excluded", "path", path, "value", trimmed)
			return
		}
		if key == "vendorAddressRecipient" {
			vendor = trimmed
		} else {
			customer = trimmed
		}
	})
	if vendor != "" {
		return vendor
	}
	return customer
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

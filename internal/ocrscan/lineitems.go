package ocrscan

import (
	"log/slog"
	"sort"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

// LineItem is one row of an invoice's itemized charges. Quantities and
// amounts are always non-negative-safe: unparsable input coerces to zero.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Keys of the flat json10 line-item shape (vendor emits Japanese headers).
const (
	itemKeyTitle     = "タイトル"
	itemKeyQuantity  = "数量"
	itemKeyUnitPrice = "単価"
	itemKeyAmount    = "金額"
)

// extractLineItems returns the invoice rows. The flat json10 shape is checked
// first; the nested responsev2 shape is only consulted when json10 yields
// nothing.
func extractLineItems(raw *ocrjson.Value, logger *slog.Logger) []LineItem {
	if items := extractFlatLineItems(raw, logger); len(items) > 0 {
		return items
	}
	return extractNestedLineItems(raw, logger)
}

// extractFlatLineItems reads the designated top-level json10 array. Rows keep
// their array order; missing or unparsable cells coerce to their zero value
// rather than dropping the row.
func extractFlatLineItems(raw *ocrjson.Value, logger *slog.Logger) []LineItem {
	arr := raw.Field(keyLineItems)
	if arr == nil || arr.Kind != ocrjson.KindArray {
		return nil
	}
	items := make([]LineItem, 0, len(arr.Elems))
	for i, elem := range arr.Elems {
		item := LineItem{
			Description: itemText(elem.Field(itemKeyTitle)),
			Quantity:    itemQuantity(elem.Field(itemKeyQuantity)),
			UnitPrice:   itemNumber(elem.Field(itemKeyUnitPrice)),
			Amount:      itemNumber(elem.Field(itemKeyAmount)),
		}
		logger.Debug("ocrscan.lineitem.flat", "index", i, "description", item.Description, "amount", item.Amount)
		items = append(items, item)
	}
	return items
}

func itemText(v *ocrjson.Value) string {
	s, ok := v.StringVal()
	if !ok {
		return ""
	}
	trimmed, _ := acceptText(s)
	return trimmed
}

func itemQuantity(v *ocrjson.Value) int {
	if n, ok := v.NumberVal(); ok {
		return clampInt(int(n))
	}
	if s, ok := v.StringVal(); ok {
		return clampInt(ParseQuantity(s))
	}
	return 0
}

func itemNumber(v *ocrjson.Value) float64 {
	if n, ok := v.NumberVal(); ok {
		return clampFloat(n)
	}
	if s, ok := v.StringVal(); ok {
		return clampFloat(ParseUnitAmount(s))
	}
	return 0
}

// Line-item cells are invariantly non-negative; OCR misreads that parse as
// negative collapse to zero like any other unusable cell.
func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampFloat(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

// nestedItem pairs a row with its optional bounding box for spatial ordering.
type nestedItem struct {
	item   LineItem
	hasBox bool
	top    float64
}

// extractNestedLineItems supports the richer vendor shape at
// responsev2.predictionOutput.result.items[].fields, where each field carries
// a valueNumber and a valueText plus an optional bounding-box location. Rows
// with boxes are ordered top-to-bottom (reading order); rows without keep
// their encountered order relative to each other.
func extractNestedLineItems(raw *ocrjson.Value, logger *slog.Logger) []LineItem {
	arr := raw.Lookup("responsev2", "predictionOutput", "result", "items")
	if arr == nil || arr.Kind != ocrjson.KindArray {
		return nil
	}

	rows := make([]nestedItem, 0, len(arr.Elems))
	for i, elem := range arr.Elems {
		fields := elem.Field("fields")
		if fields == nil {
			continue
		}
		row := nestedItem{}
		if desc := fields.Field("description"); desc != nil {
			row.item.Description = itemText(desc.Field("valueText"))
			if box := desc.Lookup("location", "boundingBox"); box != nil {
				if top, ok := box.Field("top").NumberVal(); ok {
					row.hasBox = true
					row.top = top
				}
			}
		}
		row.item.Quantity = fieldQuantity(fields.Field("quantity"))
		row.item.UnitPrice = fieldNumber(fields.Field("unitPrice"))
		row.item.Amount = fieldNumber(fields.Field("amount"))

		// Skip rows where nothing was recognized at all.
		if row.item.Description == "" && row.item.Quantity == 0 && row.item.UnitPrice == 0 && row.item.Amount == 0 {
			continue
		}
		logger.Debug("ocrscan.lineitem.nested", "index", i, "description", row.item.Description, "has_box", row.hasBox)
		rows = append(rows, row)
	}

	// Stable: pairs without two boxes compare equal, preserving their
	// encountered order.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].hasBox && rows[j].hasBox {
			return rows[i].top < rows[j].top
		}
		return false
	})

	items := make([]LineItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item)
	}
	return items
}

// fieldQuantity prefers valueNumber, falling back to the integer parse of
// valueText.
func fieldQuantity(f *ocrjson.Value) int {
	if f == nil {
		return 0
	}
	if n, ok := f.Field("valueNumber").NumberVal(); ok && n != 0 {
		return clampInt(int(n))
	}
	if s, ok := f.Field("valueText").StringVal(); ok {
		return clampInt(ParseQuantity(s))
	}
	return 0
}

// fieldNumber prefers valueNumber, falling back to the currency parse of
// valueText.
func fieldNumber(f *ocrjson.Value) float64 {
	if f == nil {
		return 0
	}
	if n, ok := f.Field("valueNumber").NumberVal(); ok && n != 0 {
		return clampFloat(n)
	}
	if s, ok := f.Field("valueText").StringVal(); ok {
		return clampFloat(ParseUnitAmount(s))
	}
	return 0
}

package ocrscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatLineItemCoercion(t *testing.T) {
	raw := decodeTree(t, `{"json10": [
		{"タイトル": "Widget", "数量": "3", "単価": "1,200", "金額": "3,600"}
	]}`)

	items := extractLineItems(raw, testLogger())
	require.Equal(t, []LineItem{
		{Description: "Widget", Quantity: 3, UnitPrice: 1200, Amount: 3600},
	}, items)
}

func TestFlatLineItemMissingCellCoercesToZero(t *testing.T) {
	raw := decodeTree(t, `{"json10": [
		{"タイトル": "Widget", "数量": "2", "金額": "800"}
	]}`)

	items := extractLineItems(raw, testLogger())
	require.Len(t, items, 1)
	require.Equal(t, 0.0, items[0].UnitPrice)
	require.Equal(t, 800.0, items[0].Amount)
}

func TestFlatLineItemUnparsableCells(t *testing.T) {
	raw := decodeTree(t, `{"json10": [
		{"タイトル": "", "数量": "abc", "単価": null, "金額": "n/a"}
	]}`)

	items := extractLineItems(raw, testLogger())
	require.Equal(t, []LineItem{{}}, items)
}

func TestFlatLineItemsKeepArrayOrder(t *testing.T) {
	raw := decodeTree(t, `{"json10": [
		{"タイトル": "B"},
		{"タイトル": "A"}
	]}`)

	items := extractLineItems(raw, testLogger())
	require.Equal(t, "B", items[0].Description)
	require.Equal(t, "A", items[1].Description)
}

func TestNestedLineItemsSortByBoundingBoxTop(t *testing.T) {
	raw := decodeTree(t, `{"responsev2": {"predictionOutput": {"result": {"items": [
		{"fields": {
			"description": {"valueText": "Lower", "location": {"boundingBox": {"top": 50}}},
			"amount": {"valueNumber": 100}
		}},
		{"fields": {
			"description": {"valueText": "Upper", "location": {"boundingBox": {"top": 10}}},
			"amount": {"valueNumber": 200}
		}}
	]}}}}`)

	items := extractLineItems(raw, testLogger())
	require.Len(t, items, 2)
	require.Equal(t, "Upper", items[0].Description)
	require.Equal(t, "Lower", items[1].Description)
}

func TestNestedLineItemsWithoutBoxesKeepOrder(t *testing.T) {
	raw := decodeTree(t, `{"responsev2": {"predictionOutput": {"result": {"items": [
		{"fields": {"description": {"valueText": "First"}, "amount": {"valueNumber": 1}}},
		{"fields": {"description": {"valueText": "Second"}, "amount": {"valueNumber": 2}}}
	]}}}}`)

	items := extractLineItems(raw, testLogger())
	require.Len(t, items, 2)
	require.Equal(t, "First", items[0].Description)
	require.Equal(t, "Second", items[1].Description)
}

func TestNestedLineItemValueFallbacks(t *testing.T) {
	raw := decodeTree(t, `{"responsev2": {"predictionOutput": {"result": {"items": [
		{"fields": {
			"description": {"valueText": "Combo"},
			"quantity": {"valueText": "4"},
			"unitPrice": {"valueText": "¥1,500"},
			"amount": {"valueNumber": 6000}
		}}
	]}}}}`)

	items := extractLineItems(raw, testLogger())
	require.Equal(t, []LineItem{
		{Description: "Combo", Quantity: 4, UnitPrice: 1500, Amount: 6000},
	}, items)
}

func TestNestedLineItemsSkipEmptyRows(t *testing.T) {
	raw := decodeTree(t, `{"responsev2": {"predictionOutput": {"result": {"items": [
		{"fields": {}},
		{"other": true},
		{"fields": {"description": {"valueText": "Kept"}}}
	]}}}}`)

	items := extractLineItems(raw, testLogger())
	require.Len(t, items, 1)
	require.Equal(t, "Kept", items[0].Description)
}

func TestFlatShapeTakesPrecedenceOverNested(t *testing.T) {
	raw := decodeTree(t, `{
		"json10": [{"タイトル": "Flat", "数量": "1", "単価": "100", "金額": "100"}],
		"responsev2": {"predictionOutput": {"result": {"items": [
			{"fields": {"description": {"valueText": "Nested"}, "amount": {"valueNumber": 999}}}
		]}}}
	}`)

	items := extractLineItems(raw, testLogger())
	require.Len(t, items, 1)
	require.Equal(t, "Flat", items[0].Description)
}

func TestNegativeCellsClampToZero(t *testing.T) {
	raw := decodeTree(t, `{"json10": [
		{"タイトル": "Refund", "数量": "-2", "単価": "-500", "金額": "-1,000"}
	]}`)

	items := extractLineItems(raw, testLogger())
	require.Equal(t, []LineItem{{Description: "Refund"}}, items)
}

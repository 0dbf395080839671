package ocrscan

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildExtractedDataSchema returns a JSON-Schema (draft 2020-12 subset) for
// the normalized scan record, as a generic map. The audit store validates
// records against it before persisting so that schema drift between the
// engine and its consumers is caught at the boundary, not in the form.
func BuildExtractedDataSchema() map[string]any {
	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"quantity":    map[string]any{"type": "integer", "minimum": 0},
			"unit_price":  map[string]any{"type": "number", "minimum": 0},
			"amount":      map[string]any{"type": "number"},
		},
		"required": []string{"description", "quantity", "unit_price", "amount"},
	}

	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"slip_title_candidate":   map[string]any{"type": "string"},
			"payee_name":             map[string]any{"type": "string"},
			"invoice_number":         map[string]any{"type": "string"},
			"issue_date":             map[string]any{"type": "string"},
			"occurrence_month_start": map[string]any{"type": "string"},
			"occurrence_month_end":   map[string]any{"type": "string"},
			"payment_date":           map[string]any{"type": "string"},
			"staff_name":             map[string]any{"type": "string"},
			"payment_method":         map[string]any{"type": "string"},
			"confidence":             map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
			"amount_values":          stringList,
			"item_names":             stringList,
			"descriptions":           stringList,
			"line_items":             map[string]any{"type": "array", "items": lineItem},
		},
		// Nothing is required: extraction may legitimately find nothing.
		"required": []string{},
	}
}

// ValidateExtracted checks a record against the schema above.
func ValidateExtracted(data ExtractedData) error {
	doc, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal extracted data: %w", err)
	}
	return validateAgainst(BuildExtractedDataSchema(), doc)
}

func validateAgainst(schemaMap map[string]any, doc []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("extracted data does not match schema: %w", err)
	}
	return nil
}

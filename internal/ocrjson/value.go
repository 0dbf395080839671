// Package ocrjson models the vendor's OCR response as a typed JSON tree.
//
// The vendor guarantees nothing about the response shape: field names show up
// at arbitrary depths, repeat, and switch between objects and arrays across
// documents. Extraction rules therefore operate on a generic tagged union
// rather than concrete structs. Object members keep the document order of the
// payload so that "first occurrence wins" rules are reproducible for the same
// input bytes.
package ocrjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a single node of the response tree.
type Value struct {
	Kind    Kind
	Members []Member // KindObject
	Elems   []*Value // KindArray
	Str     string   // KindString
	Num     float64  // KindNumber
	Bool    bool     // KindBool
}

// Decode parses a JSON document into a Value, preserving object key order.
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode ocr payload: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Value{Kind: KindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Members = append(obj.Members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := &Value{Kind: KindArray}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Elems = append(arr.Elems, val)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return &Value{Kind: KindString, Str: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			f = 0
		}
		return &Value{Kind: KindNumber, Num: f}, nil
	case bool:
		return &Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return &Value{Kind: KindNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Field returns the value of the first member with the given key, or nil.
// Safe to call on nil receivers and non-object values.
func (v *Value) Field(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Lookup descends through a chain of object keys, returning nil as soon as
// any hop is missing.
func (v *Value) Lookup(keys ...string) *Value {
	cur := v
	for _, k := range keys {
		cur = cur.Field(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// StringVal returns the string content when the value is a string.
func (v *Value) StringVal() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// NumberVal returns the numeric content when the value is a number.
func (v *Value) NumberVal() (float64, bool) {
	if v == nil || v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// IsNull reports whether the node is absent or an explicit JSON null.
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == KindNull
}

// MarshalJSON re-encodes the tree, keeping the original member order. The raw
// response is persisted and displayed verbatim for audit, so round-tripping
// must not reshuffle keys.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		buf.WriteString(strconv.FormatFloat(v.Num, 'f', -1, 64))
	case KindString:
		b, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %d", v.Kind)
	}
	return nil
}

// Indent returns the tree pretty-printed with two-space indentation.
func (v *Value) Indent() string {
	raw, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

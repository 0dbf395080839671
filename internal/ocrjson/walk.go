package ocrjson

import "strconv"

// VisitFunc is called once per key/value pair in the tree. key is the object
// member name (or the decimal index for array elements); path is a
// dot/bracket label like "responsev2.result.items[2].amount" recording where
// the value was found. The path exists for logging provenance only and must
// not influence extraction decisions.
type VisitFunc func(key string, value *Value, path string)

// Walk traverses every node of the tree in document order: object members in
// the order they appeared in the payload, array elements by index. Filtering
// is the visitor's job; Walk reports everything. Null values are visited like
// any other node.
func Walk(v *Value, visit VisitFunc) {
	walk(v, visit, "")
}

func walk(v *Value, visit VisitFunc, path string) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			p := m.Key
			if path != "" {
				p = path + "." + m.Key
			}
			visit(m.Key, m.Value, p)
			walk(m.Value, visit, p)
		}
	case KindArray:
		for i, e := range v.Elems {
			p := path + "[" + strconv.Itoa(i) + "]"
			visit(strconv.Itoa(i), e, p)
			walk(e, visit, p)
		}
	}
}

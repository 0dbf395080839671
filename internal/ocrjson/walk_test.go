package ocrjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type visitRecord struct {
	key  string
	path string
}

func collectVisits(v *Value) []visitRecord {
	var out []visitRecord
	Walk(v, func(key string, _ *Value, path string) {
		out = append(out, visitRecord{key: key, path: path})
	})
	return out
}

func TestWalkPathsAndOrder(t *testing.T) {
	v := mustDecode(t, `{"a":{"b":[{"c":1},2]},"d":null}`)

	got := collectVisits(v)
	want := []visitRecord{
		{"a", "a"},
		{"b", "a.b"},
		{"0", "a.b[0]"},
		{"c", "a.b[0].c"},
		{"1", "a.b[1]"},
		{"d", "d"},
	}
	require.Equal(t, want, got)
}

func TestWalkIsDeterministic(t *testing.T) {
	v := mustDecode(t, `{"m":{"q":1,"p":2,"o":3},"l":[{"z":1},{"y":2}]}`)

	first := collectVisits(v)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, collectVisits(v))
	}
}

func TestWalkToleratesNilAndScalars(t *testing.T) {
	require.NotPanics(t, func() {
		Walk(nil, func(string, *Value, string) {})
		Walk(&Value{Kind: KindString, Str: "leaf"}, func(string, *Value, string) {})
		Walk(mustDecode(t, `{"a":null}`), func(_ string, v *Value, _ string) {
			_ = v.Field("whatever")
		})
	})
}

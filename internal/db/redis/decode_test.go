package redis

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

func strs(ss ...string) []rueidis.RedisMessage {
	out := make([]rueidis.RedisMessage, len(ss))
	for i, s := range ss {
		out[i] = mock.RedisString(s)
	}
	return out
}

func TestDecodeSearchReply(t *testing.T) {
	tests := []struct {
		name string
		raw  []rueidis.RedisMessage
		want []db.Record
	}{
		{
			name: "nil input",
			raw:  nil,
			want: []db.Record{},
		},
		{
			name: "total only",
			raw:  []rueidis.RedisMessage{mock.RedisInt64(0)},
			want: []db.Record{},
		},
		{
			name: "single hit",
			raw: []rueidis.RedisMessage{
				mock.RedisInt64(1),
				mock.RedisString("5"),
				mock.RedisArray(strs("company", "Acme", "product", "Widget")...),
			},
			want: []db.Record{{"company": "Acme", "product": "Widget"}},
		},
		{
			name: "ids between arrays are dropped",
			raw: []rueidis.RedisMessage{
				mock.RedisInt64(2),
				mock.RedisString("id1"),
				mock.RedisArray(strs("a", "1")...),
				mock.RedisString("id2"),
				mock.RedisArray(strs("b", "2")...),
			},
			want: []db.Record{{"a": "1"}, {"b": "2"}},
		},
		{
			name: "odd-length field array drops trailing element",
			raw: []rueidis.RedisMessage{
				mock.RedisInt64(1),
				mock.RedisString("id1"),
				mock.RedisArray(strs("a", "1", "b")...),
			},
			want: []db.Record{{"a": "1"}},
		},
		{
			name: "empty field array yields empty record",
			raw: []rueidis.RedisMessage{
				mock.RedisInt64(1),
				mock.RedisString("id1"),
				mock.RedisArray(),
			},
			want: []db.Record{{}},
		},
		{
			name: "integer values rendered as text",
			raw: []rueidis.RedisMessage{
				mock.RedisInt64(1),
				mock.RedisString("id1"),
				mock.RedisArray(mock.RedisString("price"), mock.RedisInt64(42)),
			},
			want: []db.Record{{"price": "42"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeSearchReply(tc.raw)
			if !reflect.DeepEqual(got.Records, tc.want) {
				t.Errorf("records = %v, want %v", got.Records, tc.want)
			}
		})
	}
}

func TestDecodeSearchReply_Total(t *testing.T) {
	got := decodeSearchReply([]rueidis.RedisMessage{mock.RedisInt64(17)})
	if got.Total != 17 {
		t.Errorf("total = %d, want 17", got.Total)
	}

	got = decodeSearchReply([]rueidis.RedisMessage{mock.RedisArray()})
	if got.Total != 0 {
		t.Errorf("total = %d, want 0 for non-numeric head", got.Total)
	}
}

func TestDecodeSuggestReply(t *testing.T) {
	got := decodeSuggestReply(strs("Acme", "Ajax"))
	want := []db.Suggestion{{Name: "Acme"}, {Name: "Ajax"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	empty := decodeSuggestReply(nil)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestProperty_DecodeSuggestReply(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("preserves count and order", prop.ForAll(
		func(items []string) bool {
			got := decodeSuggestReply(strs(items...))
			if len(got) != len(items) {
				return false
			}
			for i := range items {
				if got[i].Name != items[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestProperty_DecodeSearchReply(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Each hit is a field array of the given length, preceded by its id.
	buildReply := func(lengths []int) []rueidis.RedisMessage {
		raw := []rueidis.RedisMessage{mock.RedisInt64(int64(len(lengths)))}
		for i, n := range lengths {
			fields := make([]rueidis.RedisMessage, n)
			for j := range fields {
				fields[j] = mock.RedisString("f" + string(rune('a'+j%26)) + string(rune('a'+i%26)))
			}
			raw = append(raw, mock.RedisString("id"), mock.RedisArray(fields...))
		}
		return raw
	}

	properties.Property("one record per field array", prop.ForAll(
		func(lengths []int) bool {
			return len(decodeSearchReply(buildReply(lengths)).Records) == len(lengths)
		},
		gen.SliceOf(gen.IntRange(0, 12)),
	))

	properties.Property("record holds floor(len/2) pairs", prop.ForAll(
		func(lengths []int) bool {
			got := decodeSearchReply(buildReply(lengths)).Records
			for i, n := range lengths {
				if len(got[i]) != n/2 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 12)),
	))

	properties.TestingRun(t)
}

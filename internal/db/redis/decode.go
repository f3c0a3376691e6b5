package redis

import (
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// decodeSearchReply reshapes an FT.SEARCH reply into records.
//
// The reply is [total, id1, [f, v, ...], id2, [f, v, ...], ...]. Every element after the
// total that is an array becomes one record, in order; everything else (the interleaved ids)
// is skipped. A field array of odd length loses its trailing element.
func decodeSearchReply(raw []rueidis.RedisMessage) *db.SearchResult {
	res := &db.SearchResult{Records: []db.Record{}}
	if len(raw) == 0 {
		return res
	}

	if raw[0].IsInt64() || raw[0].IsString() {
		if total, err := raw[0].AsInt64(); err == nil {
			res.Total = int(total)
		}
	}

	for i := 1; i < len(raw); i++ {
		if !raw[i].IsArray() {
			continue
		}
		pairs, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		res.Records = append(res.Records, foldPairs(pairs))
	}

	return res
}

// foldPairs folds [k1, v1, k2, v2, ...] into a record keyed by the even positions.
func foldPairs(pairs []rueidis.RedisMessage) db.Record {
	rec := make(db.Record, len(pairs)/2)
	for j := 0; j+1 < len(pairs); j += 2 {
		rec[messageText(&pairs[j])] = messageText(&pairs[j+1])
	}
	return rec
}

// decodeSuggestReply turns an FT.SUGGET reply into one suggestion per element, order kept.
func decodeSuggestReply(raw []rueidis.RedisMessage) []db.Suggestion {
	out := make([]db.Suggestion, 0, len(raw))
	for i := range raw {
		out = append(out, db.Suggestion{Name: messageText(&raw[i])})
	}
	return out
}

// messageText renders a scalar reply as text without reinterpreting it.
// The typed accessors panic on a kind mismatch, so the kind is checked first.
func messageText(m *rueidis.RedisMessage) string {
	switch {
	case m.IsString():
		s, _ := m.ToString()
		return s
	case m.IsInt64():
		n, _ := m.ToInt64()
		return strconv.FormatInt(n, 10)
	case m.IsFloat64():
		f, _ := m.ToFloat64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}

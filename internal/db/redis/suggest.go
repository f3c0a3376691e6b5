package redis

import (
	"context"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// SuggestAdd appends text to an autocomplete dictionary via FT.SUGADD.
func (s *Store) SuggestAdd(ctx context.Context, e db.SuggestionEntry) error {
	cmd := s.arbitrary(db.OpSugAdd, e.Dict, e.Text, formatNumber(e.Weight))
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSugAdd, Err: err}
	}
	return nil
}

// SuggestGet returns dictionary entries matching prefix via FT.SUGGET.
func (s *Store) SuggestGet(ctx context.Context, dict, prefix string) ([]db.Suggestion, error) {
	raw, err := s.do(ctx, s.arbitrary(db.OpSugGet, dict, prefix)).ToArray()
	if err != nil {
		// An unknown dictionary or no match comes back as a nil reply.
		if rueidis.IsRedisNil(err) {
			return []db.Suggestion{}, nil
		}
		return nil, &db.Error{Op: db.OpSugGet, Err: err}
	}
	return decodeSuggestReply(raw), nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

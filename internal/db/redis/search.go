package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// Search runs FT.SEARCH <index> <query> [HIGHLIGHT]. The query is passed through untouched.
// A missing index yields an error matching db.ErrIndexNotFound.
func (s *Store) Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	args := []string{q.IndexName, q.Query}
	if q.Highlight {
		args = append(args, "HIGHLIGHT")
	}

	raw, err := s.do(ctx, s.arbitrary(db.OpSearch, args...)).ToArray()
	if err != nil {
		return nil, classify(db.OpSearch, err)
	}

	return decodeSearchReply(raw), nil
}

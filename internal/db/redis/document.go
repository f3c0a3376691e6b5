package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// UpsertDocument writes doc into index, replacing any previous version with the same id.
func (s *Store) UpsertDocument(ctx context.Context, index string, doc *db.DocumentWrite) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	if len(doc.Fields) == 0 {
		return fmt.Errorf("document %s has no fields", doc.ID)
	}

	if s.writeMode == WriteHash {
		return s.hsetDocument(ctx, doc)
	}
	return s.ftAddDocument(ctx, index, doc)
}

// ftAddDocument issues FT.ADD <index> <id> <score> REPLACE FIELDS f1 v1 ...
func (s *Store) ftAddDocument(ctx context.Context, index string, doc *db.DocumentWrite) error {
	args := make([]string, 0, 5+2*len(doc.Fields))
	args = append(args, index, doc.ID, formatNumber(doc.Score), "REPLACE", "FIELDS")
	for _, f := range doc.Fields {
		args = append(args, f.Name, f.Value)
	}

	if err := s.do(ctx, s.arbitrary(db.OpAdd, args...)).Error(); err != nil {
		return &db.Error{Op: db.OpAdd, Err: fmt.Errorf("doc %s: %w", doc.ID, err)}
	}
	return nil
}

// hsetDocument writes the fields into <prefix><id>; the index picks the hash up by prefix.
// Every write carries the full field set, so HSET overwrites the previous version.
func (s *Store) hsetDocument(ctx context.Context, doc *db.DocumentWrite) error {
	cmd := s.client.B().Hset().Key(s.keyPrefix + doc.ID).FieldValue()
	for _, f := range doc.Fields {
		cmd = cmd.FieldValue(f.Name, f.Value)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("doc %s: %w", doc.ID, err)}
	}
	return nil
}


package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/kailas-cloud/ftfacade/internal/db"
)

// notFoundMessages are the server replies that mean "no such index".
// RediSearch 1.x/2.x answer "Unknown Index name", Redis 8 answers "<name>: no such index".
var notFoundMessages = []string{"unknown index name", "no such index"}

// CreateIndex creates an FT index from the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	if err := s.do(ctx, s.arbitrary(db.OpCreateIndex, args...)).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; a not-found reply means absent.
// Any other failure is returned so callers never act on an unknown index state.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	if err := s.do(ctx, s.arbitrary(db.OpIndexInfo, name)).Error(); err != nil {
		if isRedisErr(err, notFoundMessages...) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// indexNotFoundError matches db.ErrIndexNotFound while keeping the engine's reply as its text.
type indexNotFoundError struct {
	err error
}

func (e *indexNotFoundError) Error() string   { return e.err.Error() }
func (e *indexNotFoundError) Unwrap() []error { return []error{db.ErrIndexNotFound, e.err} }

// classify tags not-found replies with db.ErrIndexNotFound and wraps the rest with op.
func classify(op string, err error) error {
	if isRedisErr(err, notFoundMessages...) {
		return &db.Error{Op: op, Err: &indexNotFoundError{err: err}}
	}
	return &db.Error{Op: op, Err: err}
}

func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if idx.Name == "" {
		return nil, errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	args := []string{idx.Name}

	if idx.StorageType != "" {
		args = append(args, "ON", string(idx.StorageType))
	}

	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")

	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return nil, errors.New("field name is required")
		}
		switch f.Type {
		case db.IndexFieldText, db.IndexFieldNumeric:
			args = append(args, f.Name, f.Type.String())
		default:
			return nil, errors.New("unknown field type")
		}
	}

	return args, nil
}

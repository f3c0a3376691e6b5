package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants map to Redis command names for error context.
const (
	OpCreateIndex = "FT.CREATE"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpAdd         = "FT.ADD"
	OpSugAdd      = "FT.SUGADD"
	OpSugGet      = "FT.SUGGET"
	OpHSet        = "HSET"
	OpPing        = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the innermost error message, stripped of op prefixes.
// Handlers use it to surface the engine's own text.
func Cause(err error) string {
	for {
		var dbErr *Error
		if !errors.As(err, &dbErr) {
			return err.Error()
		}
		err = dbErr.Err
	}
}

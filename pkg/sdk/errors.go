package ftfacade

import (
	"errors"

	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	searchuc "github.com/kailas-cloud/ftfacade/internal/usecase/search"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrEmptyQuery       = searchuc.ErrEmptyQuery
	ErrInvalidDocument  = domcat.ErrInvalidDocument
	ErrInvalidDocCount  = errors.New("ftfacade: document count must be positive")
	ErrAddressRequired  = errors.New("ftfacade: database address required (use WithRedis)")
	ErrHashPrefixNeeded = errors.New("ftfacade: hash mode requires a key prefix")
)

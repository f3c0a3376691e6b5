package schema

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/ftfacade/internal/db"
	logpkg "github.com/kailas-cloud/ftfacade/internal/logger"
	"github.com/kailas-cloud/ftfacade/internal/metrics"
)

// Outcome reports what Ensure did.
type Outcome string

const (
	// Existed means the index was already there; nothing was issued beyond FT.INFO.
	Existed Outcome = "existed"
	// Created means this call issued FT.CREATE and it succeeded (or lost a benign race).
	Created Outcome = "created"
	// CreateFailed means FT.CREATE was issued and failed; the failure was logged.
	CreateFailed Outcome = "create_failed"
)

// Service makes sure an index exists before documents are written into it.
type Service struct {
	indexes IndexManager
	flight  singleflight.Group
}

// New creates a schema service.
func New(indexes IndexManager) *Service {
	return &Service{indexes: indexes}
}

// Ensure probes def.Name and creates it from def when the engine reports it missing.
//
// Only a not-found reply leads to creation. Any other probe failure is returned and
// nothing is created, since the true state of the index is unknown. A failed creation
// is logged and reported as CreateFailed without an error, so indexing carries on.
// Concurrent calls for the same index share one probe and at most one creation.
// The shared work ignores cancellation, since it runs on behalf of every waiting caller.
func (s *Service) Ensure(ctx context.Context, def *db.IndexDefinition) (Outcome, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do(def.Name, func() (any, error) {
		return s.ensure(shared, def)
	})
	if err != nil {
		return "", err
	}
	return v.(Outcome), nil
}

func (s *Service) ensure(ctx context.Context, def *db.IndexDefinition) (Outcome, error) {
	log := logpkg.FromContext(ctx).With(zap.String("index", def.Name))

	exists, err := s.indexes.IndexExists(ctx, def.Name)
	if err != nil {
		return "", fmt.Errorf("probe index %s: %w", def.Name, err)
	}
	if exists {
		return Existed, nil
	}

	log.Info("index not found, creating", zap.Stringer("definition", def))

	if err := s.indexes.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			// Another process created it between our probe and create.
			metrics.SchemaCreatedTotal.WithLabelValues(def.Name, "exists").Inc()
			return Created, nil
		}
		metrics.SchemaCreatedTotal.WithLabelValues(def.Name, "error").Inc()
		log.Error("create index failed", zap.Error(err))
		return CreateFailed, nil
	}

	metrics.SchemaCreatedTotal.WithLabelValues(def.Name, "ok").Inc()
	return Created, nil
}

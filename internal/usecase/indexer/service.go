package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/ftfacade/internal/db"
	dombatch "github.com/kailas-cloud/ftfacade/internal/domain/batch"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/ftfacade/internal/logger"
	"github.com/kailas-cloud/ftfacade/internal/metrics"
)

// Defaults for the worker pool.
const (
	DefaultWorkers = 16
	DefaultMaxDocs = 100000
)

// Service indexes generated catalog documents.
//
// Every document fans out into three independent writes (document upsert, company
// suggestion, product suggestion). A failed write is logged and recorded in the batch
// summary; it never cancels its siblings or the rest of the batch.
type Service struct {
	catalog CatalogWriter
	schema  SchemaEnsurer
	def     *db.IndexDefinition
	source  Source
	workers int
	maxDocs int
	limiter *rate.Limiter
}

// New creates an indexing service writing documents shaped by def.
func New(catalog CatalogWriter, ensurer SchemaEnsurer, def *db.IndexDefinition, source Source) *Service {
	return &Service{
		catalog: catalog,
		schema:  ensurer,
		def:     def,
		source:  source,
		workers: DefaultWorkers,
		maxDocs: DefaultMaxDocs,
	}
}

// WithWorkers caps the number of writes in flight.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithMaxDocs caps the number of documents one Run may index.
func (s *Service) WithMaxDocs(n int) *Service {
	if n > 0 {
		s.maxDocs = n
	}
	return s
}

// WithRateLimit throttles dispatch to perSec writes per second. Zero leaves it unlimited.
func (s *Service) WithRateLimit(perSec float64, burst int) *Service {
	if perSec > 0 {
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
	return s
}

// Run ensures the index exists and then indexes count generated documents.
// If the index state cannot be confirmed no document is written and the error is returned.
func (s *Service) Run(ctx context.Context, count int) (dombatch.Summary, error) {
	log := logpkg.FromContext(ctx)

	if count > s.maxDocs {
		log.Warn("document count clamped", zap.Int("requested", count), zap.Int("max", s.maxDocs))
		count = s.maxDocs
	}

	outcome, err := s.schema.Ensure(ctx, s.def)
	if err != nil {
		return dombatch.Summary{}, fmt.Errorf("ensure schema: %w", err)
	}
	log.Debug("schema ensured", zap.String("index", s.def.Name), zap.String("outcome", string(outcome)))

	return s.IndexBatch(ctx, count, s.source), nil
}

// IndexBatch indexes documents 0..count-1 with fields drawn from source.
// It waits for every write and returns their outcomes.
func (s *Service) IndexBatch(ctx context.Context, count int, source Source) dombatch.Summary {
	start := time.Now()
	defer func() { metrics.IndexBatchDuration.Observe(time.Since(start).Seconds()) }()

	c := newCollector()
	var g errgroup.Group
	g.SetLimit(s.workers)

	docs := 0
	for id := range count {
		doc, err := domcat.NewDocument(id, source.Next())
		if err != nil {
			for _, op := range allOps {
				c.record(ctx, dombatch.NewError(id, op, err))
			}
			docs++
			continue
		}

		if !s.dispatch(ctx, &g, c, doc) {
			break
		}
		docs++
	}

	_ = g.Wait() // tasks never return errors; outcomes are in the collector

	summary := dombatch.Summary{Documents: docs, Results: c.results}
	if failed := summary.Failed(); failed > 0 {
		logpkg.FromContext(ctx).Warn("index batch finished with failures",
			zap.Int("documents", docs),
			zap.Int("succeeded", summary.Succeeded()),
			zap.Int("failed", failed),
		)
	}
	return summary
}

// IndexOne issues the three writes for one document and waits for them.
func (s *Service) IndexOne(ctx context.Context, doc domcat.Document) []dombatch.Result {
	c := newCollector()
	var g errgroup.Group
	for _, w := range s.writes(doc) {
		g.Go(func() error {
			c.record(ctx, w.run(ctx))
			return nil
		})
	}
	_ = g.Wait()
	return c.results
}

// dispatch queues the writes of doc on the pool. Returns false if ctx ended while throttled.
func (s *Service) dispatch(ctx context.Context, g *errgroup.Group, c *collector, doc domcat.Document) bool {
	for _, w := range s.writes(doc) {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				c.record(ctx, dombatch.NewError(doc.ID(), w.op, fmt.Errorf("throttle: %w", err)))
				return false
			}
		}
		g.Go(func() error {
			c.record(ctx, w.run(ctx))
			return nil
		})
	}
	return true
}

var allOps = []dombatch.Op{dombatch.OpUpsert, dombatch.OpSuggestCompany, dombatch.OpSuggestProduct}

type write struct {
	op  dombatch.Op
	id  int
	run func(ctx context.Context) dombatch.Result
}

func (s *Service) writes(doc domcat.Document) []write {
	f := doc.Fields()
	id := doc.ID()
	wrap := func(op dombatch.Op, fn func(ctx context.Context) error) write {
		return write{op: op, id: id, run: func(ctx context.Context) dombatch.Result {
			if err := fn(ctx); err != nil {
				return dombatch.NewError(id, op, err)
			}
			return dombatch.NewOK(id, op)
		}}
	}
	return []write{
		wrap(dombatch.OpUpsert, func(ctx context.Context) error { return s.catalog.Upsert(ctx, doc) }),
		wrap(dombatch.OpSuggestCompany, func(ctx context.Context) error {
			return s.catalog.AddCompanySuggestion(ctx, f.Company)
		}),
		wrap(dombatch.OpSuggestProduct, func(ctx context.Context) error {
			return s.catalog.AddProductSuggestion(ctx, f.Product)
		}),
	}
}

// collector gathers results from concurrent writes.
type collector struct {
	mu      sync.Mutex
	results []dombatch.Result
}

func newCollector() *collector {
	return &collector{}
}

func (c *collector) record(ctx context.Context, r dombatch.Result) {
	status := string(r.Status())
	metrics.WireOpsTotal.WithLabelValues(string(r.Op()), status).Inc()
	if r.Err() != nil {
		logpkg.FromContext(ctx).Error("index write failed",
			zap.String("op", string(r.Op())),
			zap.Int("doc_id", r.DocID()),
			zap.Error(r.Err()),
		)
	}

	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

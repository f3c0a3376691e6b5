package ftfacade

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/ftfacade/internal/datasource"
	"github.com/kailas-cloud/ftfacade/internal/db"
	dbRedis "github.com/kailas-cloud/ftfacade/internal/db/redis"
	dombatch "github.com/kailas-cloud/ftfacade/internal/domain/batch"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	catalogrepo "github.com/kailas-cloud/ftfacade/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/ftfacade/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/ftfacade/internal/usecase/indexer"
	schemauc "github.com/kailas-cloud/ftfacade/internal/usecase/schema"
	searchuc "github.com/kailas-cloud/ftfacade/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced in tests.
type searchUseCase interface {
	Search(ctx context.Context, query string) ([]domcat.Hit, error)
	Suggest(ctx context.Context, prefix string) ([]domcat.Suggestion, error)
}

type indexUseCase interface {
	Run(ctx context.Context, count int) (dombatch.Summary, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the in-process façade entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	indexSvc  indexUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the engine.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, ErrAddressRequired
	}
	if cfg.hashMode && cfg.keyPrefix == "" {
		return nil, ErrHashPrefixNeeded
	}

	mode := dbRedis.WriteFTAdd
	if cfg.hashMode {
		mode = dbRedis.WriteHash
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:     cfg.addrs,
		Username:  cfg.username,
		Password:  cfg.password,
		DB:        cfg.db,
		WriteMode: mode,
		KeyPrefix: cfg.keyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("ftfacade: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ftfacade: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	names := catalogrepo.DefaultNames()
	if cfg.index != "" {
		names.Index = cfg.index
	}
	if cfg.companyDict != "" {
		names.CompanyDict = cfg.companyDict
	}
	if cfg.productDict != "" {
		names.ProductDict = cfg.productDict
	}

	hashPrefix := ""
	if cfg.hashMode {
		hashPrefix = cfg.keyPrefix
	}
	def, err := catalogrepo.Schema(names.Index, hashPrefix)
	if err != nil {
		return nil, fmt.Errorf("ftfacade: index definition: %w", err)
	}

	var src indexeruc.Source = datasource.NewFaker(cfg.seed)
	if cfg.source != nil {
		src = sourceAdapter{inner: cfg.source}
	}

	repo := catalogrepo.New(store, names)
	indexSvc := indexeruc.New(repo, schemauc.New(store), def, src).
		WithWorkers(cfg.workers).
		WithMaxDocs(cfg.maxDocs).
		WithRateLimit(cfg.ratePerSec, cfg.workers)

	return &Client{
		store:     store,
		searchSvc: searchuc.New(repo),
		indexSvc:  indexSvc,
		healthSvc: healthuc.New(store, store, names.Index),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a highlighted full-text query. The query uses the engine's own syntax.
func (c *Client) Search(ctx context.Context, query string) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observeSearch(query, start, len(hits), err) }()

	raw, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	hits = make([]Hit, len(raw))
	for i, h := range raw {
		hits[i] = Hit(h)
	}
	return hits, nil
}

// Suggest returns product names completing prefix, in engine order.
func (c *Client) Suggest(ctx context.Context, prefix string) (names []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	raw, err := c.searchSvc.Suggest(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	names = make([]string, len(raw))
	for i, s := range raw {
		names[i] = s.Name
	}
	return names, nil
}

// Index creates the catalog index if needed and writes count documents with ids 0..count-1.
// Individual write failures are reported in the IndexReport, not as an error.
// Canceling ctx stops the run: writes not yet sent are counted as failed.
func (c *Client) Index(ctx context.Context, count int) (report IndexReport, err error) {
	start := time.Now()
	defer func() { c.obs.observeIndex(start, report, err) }()

	if count <= 0 {
		return IndexReport{}, ErrInvalidDocCount
	}

	summary, err := c.indexSvc.Run(ctx, count)
	if err != nil {
		return IndexReport{}, fmt.Errorf("index: %w", err)
	}
	return IndexReport{
		Documents: summary.Documents,
		Succeeded: summary.Succeeded(),
		Failed:    summary.Failed(),
	}, nil
}

// Health checks the engine and the catalog index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

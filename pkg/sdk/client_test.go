package ftfacade

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	dbRedis "github.com/kailas-cloud/ftfacade/internal/db/redis"
	dombatch "github.com/kailas-cloud/ftfacade/internal/domain/batch"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	healthuc "github.com/kailas-cloud/ftfacade/internal/usecase/health"
)

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("expected ErrAddressRequired, got %v", err)
	}
}

func TestNew_HashModeRequiresPrefix(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""), WithHashMode(""))
	if !errors.Is(err, ErrHashPrefixNeeded) {
		t.Fatalf("expected ErrHashPrefixNeeded, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithRedis("redis:6379", "secret"),
		WithACL("app", 2),
		WithHashMode("doc:"),
		WithNames("products", "companies", "names"),
		WithWorkers(4),
		WithRateLimit(100),
		WithMaxDocs(50),
		WithSeed(9),
	} {
		o.apply(cfg)
	}

	if !reflect.DeepEqual(cfg.addrs, []string{"redis:6379"}) || cfg.password != "secret" {
		t.Errorf("addr/password = %v/%q", cfg.addrs, cfg.password)
	}
	if cfg.username != "app" || cfg.db != 2 {
		t.Errorf("acl = %q/%d", cfg.username, cfg.db)
	}
	if !cfg.hashMode || cfg.keyPrefix != "doc:" {
		t.Errorf("hash mode = %v prefix %q", cfg.hashMode, cfg.keyPrefix)
	}
	if cfg.index != "products" || cfg.companyDict != "companies" || cfg.productDict != "names" {
		t.Errorf("names = %q %q %q", cfg.index, cfg.companyDict, cfg.productDict)
	}
	if cfg.workers != 4 || cfg.ratePerSec != 100 || cfg.maxDocs != 50 || cfg.seed != 9 {
		t.Errorf("indexer options = %+v", cfg)
	}
}

func TestClient_Search(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, q string) ([]domcat.Hit, error) {
			if q != "widget" {
				t.Errorf("query = %q", q)
			}
			return []domcat.Hit{{"product": "Blue <b>Widget</b>"}}, nil
		},
	}}

	hits, err := c.Search(context.Background(), "widget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Hit{{"product": "Blue <b>Widget</b>"}}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %v, want %v", hits, want)
	}
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(context.Context, string) ([]domcat.Hit, error) { return nil, ErrEmptyQuery },
	}}

	if _, err := c.Search(context.Background(), ""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestClient_Suggest(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		suggestFn: func(context.Context, string) ([]domcat.Suggestion, error) {
			return []domcat.Suggestion{{Name: "Widget"}, {Name: "Wrench"}}, nil
		},
	}}

	names, err := c.Suggest(context.Background(), "w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Widget", "Wrench"}) {
		t.Errorf("names = %v", names)
	}
}

func TestClient_Suggest_Error(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		suggestFn: func(context.Context, string) ([]domcat.Suggestion, error) {
			return nil, errors.New("db down")
		},
	}}

	if _, err := c.Suggest(context.Background(), "w"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Index(t *testing.T) {
	c := &Client{indexSvc: &mockIndexUC{
		runFn: func(_ context.Context, count int) (dombatch.Summary, error) {
			return dombatch.Summary{Documents: count, Results: []dombatch.Result{
				dombatch.NewOK(0, dombatch.OpUpsert),
				dombatch.NewOK(0, dombatch.OpSuggestCompany),
				dombatch.NewError(0, dombatch.OpSuggestProduct, errors.New("boom")),
			}}, nil
		},
	}}

	report, err := c.Index(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := IndexReport{Documents: 1, Succeeded: 2, Failed: 1}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
}

func TestClient_Index_InvalidCount(t *testing.T) {
	c := &Client{indexSvc: &mockIndexUC{
		runFn: func(context.Context, int) (dombatch.Summary, error) {
			t.Fatal("indexer must not run")
			return dombatch.Summary{}, nil
		},
	}}

	for _, n := range []int{0, -1} {
		if _, err := c.Index(context.Background(), n); !errors.Is(err, ErrInvalidDocCount) {
			t.Errorf("count %d: expected ErrInvalidDocCount, got %v", n, err)
		}
	}
}

func TestClient_Index_SchemaError(t *testing.T) {
	c := &Client{indexSvc: &mockIndexUC{
		runFn: func(context.Context, int) (dombatch.Summary, error) {
			return dombatch.Summary{}, errors.New("probe index searchIndex: NOAUTH")
		},
	}}

	if _, err := c.Index(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "index": healthuc.CheckMissing},
	}}}

	got := c.Health(context.Background())
	if got.Status != "degraded" {
		t.Errorf("status = %q", got.Status)
	}
	if got.Checks["database"] != "ok" || got.Checks["index"] != "missing" {
		t.Errorf("checks = %v", got.Checks)
	}
}

func TestClient_PingAndClose(t *testing.T) {
	store := &mockStore{pingErr: errors.New("refused")}
	c := &Client{store: store}

	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected ping error")
	}
	c.Close()
	if !store.closed {
		t.Error("store not closed")
	}
}

type staticSource struct{}

func (staticSource) Next() Product {
	return Product{Company: "Acme", Product: "Gizmo", Color: "red", Price: 3}
}

func TestWireClient_UsesNamesAndSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	rc := mock.NewClient(ctrl)

	rc.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "products")).
		Return(mock.Result(mock.RedisArray()))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("HSET", "item:0", "company", "Acme", "product", "Gizmo", "color", "red", "price", "3.00")).
		Return(mock.Result(mock.RedisInt64(4)))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SUGADD", "companies", "Acme", "100")).
		Return(mock.Result(mock.RedisInt64(1)))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SUGADD", "names", "Gizmo", "100")).
		Return(mock.Result(mock.RedisInt64(1)))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "products", "gizmo", "HIGHLIGHT")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	cfg := &clientConfig{
		hashMode:    true,
		keyPrefix:   "item:",
		index:       "products",
		companyDict: "companies",
		productDict: "names",
		source:      staticSource{},
	}
	store := dbRedis.NewStoreForTest(rc, dbRedis.Config{WriteMode: dbRedis.WriteHash, KeyPrefix: "item:"})

	c, err := wireClient(store, cfg, nil)
	if err != nil {
		t.Fatalf("wireClient: %v", err)
	}

	report, err := c.Index(context.Background(), 1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if report.Succeeded != 3 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}

	hits, err := c.Search(context.Background(), "gizmo")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v", hits)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "ftfacade_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("ftfacade_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver should reuse collectors: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

func TestObserver_IndexCountsWritesByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	obs, err := newObserver(slog.New(slog.NewTextHandler(&buf, nil)), reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	c := &Client{obs: obs, indexSvc: &mockIndexUC{
		runFn: func(_ context.Context, count int) (dombatch.Summary, error) {
			return dombatch.Summary{Documents: count, Results: []dombatch.Result{
				dombatch.NewOK(0, dombatch.OpUpsert),
				dombatch.NewOK(0, dombatch.OpSuggestCompany),
				dombatch.NewError(0, dombatch.OpSuggestProduct, errors.New("boom")),
			}}, nil
		},
	}}

	if _, err := c.Index(context.Background(), 1); err != nil {
		t.Fatalf("Index: %v", err)
	}

	if got := testutil.ToFloat64(obs.metrics.writes.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok writes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(obs.metrics.writes.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed writes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("index", "ok")); got != 1 {
		t.Errorf("index calls = %v, want 1", got)
	}
	if !strings.Contains(buf.String(), "index run had failed writes") {
		t.Errorf("expected a warning for failed writes, log: %s", buf.String())
	}
}

func TestObserver_SearchRecordsHitCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	c := &Client{obs: obs, searchSvc: &mockSearchUC{
		searchFn: func(context.Context, string) ([]domcat.Hit, error) {
			return []domcat.Hit{{"product": "a"}, {"product": "b"}, {"product": "c"}}, nil
		},
	}}
	if _, err := c.Search(context.Background(), "widget"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "ftfacade_sdk_search_hits" {
			continue
		}
		h := f.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 1 || h.GetSampleSum() != 3 {
			t.Errorf("hits histogram count=%d sum=%v, want 1 and 3", h.GetSampleCount(), h.GetSampleSum())
		}
		return
	}
	t.Error("ftfacade_sdk_search_hits not found")
}

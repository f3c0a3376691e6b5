package ftfacade

import (
	"context"
	"time"

	"github.com/kailas-cloud/ftfacade/internal/db"
	dombatch "github.com/kailas-cloud/ftfacade/internal/domain/batch"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	healthuc "github.com/kailas-cloud/ftfacade/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, query string) ([]domcat.Hit, error)
	suggestFn func(ctx context.Context, prefix string) ([]domcat.Suggestion, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query string) ([]domcat.Hit, error) {
	return m.searchFn(ctx, query)
}

func (m *mockSearchUC) Suggest(ctx context.Context, prefix string) ([]domcat.Suggestion, error) {
	return m.suggestFn(ctx, prefix)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	runFn func(ctx context.Context, count int) (dombatch.Summary, error)
}

func (m *mockIndexUC) Run(ctx context.Context, count int) (dombatch.Summary, error) {
	return m.runFn(ctx, count)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- db.Store mock (only Ping and Close are reached through Client) ---

type mockStore struct {
	db.Store
	pingErr error
	closed  bool
}

func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

func (m *mockStore) Close() { m.closed = true }

func (m *mockStore) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

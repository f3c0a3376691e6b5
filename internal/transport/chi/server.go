package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftfacade/internal/db"
	domcat "github.com/kailas-cloud/ftfacade/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/ftfacade/internal/logger"
	healthuc "github.com/kailas-cloud/ftfacade/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/ftfacade/internal/usecase/indexer"
	searchuc "github.com/kailas-cloud/ftfacade/internal/usecase/search"
)

// Fixed plain-text replies. Existing clients match on these strings.
const (
	msgSearchMissing = "search param is missing"
	msgDocsMissing   = "numberOfDocs param is missing"
	msgOK            = "OK"
)

// Server serves the search façade routes.
type Server struct {
	search  *searchuc.Service
	indexer *indexeruc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:  search,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
}

// Routes registers the façade routes on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/search", s.Search)
	r.Get("/suggest", s.Suggest)
	r.Get("/index", s.Index)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// suggestionResponse is the wire shape of one autocomplete candidate.
type suggestionResponse struct {
	Name string `json:"name"`
}

// healthResponse is the wire shape of GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Search handles GET /search?search=q.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var query string
	if err := runtime.BindQueryParameter("form", true, false, "search", r.URL.Query(), &query); err != nil {
		writeText(w, msgSearchMissing)
		return
	}

	hits, err := s.search.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, searchuc.ErrEmptyQuery) {
			writeText(w, msgSearchMissing)
			return
		}
		writeText(w, db.Cause(err))
		return
	}

	if hits == nil {
		hits = []domcat.Hit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

// Suggest handles GET /suggest?suggest=prefix.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	var prefix string
	if err := runtime.BindQueryParameter("form", true, false, "suggest", r.URL.Query(), &prefix); err != nil {
		writeText(w, db.Cause(err))
		return
	}

	out, err := s.search.Suggest(r.Context(), prefix)
	if err != nil {
		writeText(w, db.Cause(err))
		return
	}

	items := make([]suggestionResponse, len(out))
	for i, sg := range out {
		items[i] = suggestionResponse{Name: sg.Name}
	}
	writeJSON(w, http.StatusOK, items)
}

// Index handles GET /index?numberOfDocs=n. The reply is OK once the batch has run,
// whatever happened to individual writes; failures are in the logs and metrics.
// The batch outlives the client: a hang-up does not abandon the remaining writes.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	var count int
	err := runtime.BindQueryParameter("form", true, false, "numberOfDocs", r.URL.Query(), &count)
	if err != nil || count <= 0 {
		writeText(w, msgDocsMissing)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	log := logpkg.FromContext(ctx)
	summary, err := s.indexer.Run(ctx, count)
	if err != nil {
		log.Error("index batch skipped", zap.Int("requested", count), zap.Error(err))
		writeText(w, msgOK)
		return
	}

	log.Info("index batch done",
		zap.Int("documents", summary.Documents),
		zap.Int("succeeded", summary.Succeeded()),
		zap.Int("failed", summary.Failed()),
	)
	writeText(w, msgOK)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftfacade/internal/config"
	"github.com/kailas-cloud/ftfacade/internal/datasource"
	dbRedis "github.com/kailas-cloud/ftfacade/internal/db/redis"
	logpkg "github.com/kailas-cloud/ftfacade/internal/logger"
	"github.com/kailas-cloud/ftfacade/internal/metrics"
	catalogrepo "github.com/kailas-cloud/ftfacade/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/ftfacade/internal/transport/chi"
	healthuc "github.com/kailas-cloud/ftfacade/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/ftfacade/internal/usecase/indexer"
	schemauc "github.com/kailas-cloud/ftfacade/internal/usecase/schema"
	searchuc "github.com/kailas-cloud/ftfacade/internal/usecase/search"
	"github.com/kailas-cloud/ftfacade/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ftfacade server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("write_mode", cfg.Database.WriteMode),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:     cfg.Database.Addrs,
		Username:  cfg.Database.Username,
		Password:  cfg.Database.Password,
		DB:        cfg.Database.DB,
		WriteMode: dbRedis.WriteMode(cfg.Database.WriteMode),
		KeyPrefix: cfg.Database.KeyPrefix,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterIndexerMetrics()

	// The index only filters by prefix when documents are written as hashes.
	hashPrefix := ""
	if cfg.Database.WriteMode == string(dbRedis.WriteHash) {
		hashPrefix = cfg.Database.KeyPrefix
	}
	schemaDef, err := catalogrepo.Schema(cfg.Search.Index, hashPrefix)
	if err != nil {
		logger.Fatal("Invalid index definition", zap.Error(err))
	}

	repo := catalogrepo.New(store, catalogrepo.Names{
		Index:       cfg.Search.Index,
		CompanyDict: cfg.Search.CompanyDict,
		ProductDict: cfg.Search.ProductDict,
	}).WithWeights(cfg.Search.SuggestWeight, cfg.Search.DocScore)

	searchSvc := searchuc.New(repo)
	indexerSvc := indexeruc.New(repo, schemauc.New(store), schemaDef, datasource.NewFaker(cfg.Indexer.Seed)).
		WithWorkers(cfg.Indexer.Workers).
		WithMaxDocs(cfg.Indexer.MaxDocs).
		WithRateLimit(cfg.Indexer.RatePerSec, cfg.Indexer.RateBurst)
	healthSvc := healthuc.New(store, store, cfg.Search.Index)

	server := chiTransport.NewServer(searchSvc, indexerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware())
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// One line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

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

	"github.com/shoplight/shoplight/internal/config"
	"github.com/shoplight/shoplight/internal/db"
	dbRedis "github.com/shoplight/shoplight/internal/db/redis"
	"github.com/shoplight/shoplight/internal/domain"
	logpkg "github.com/shoplight/shoplight/internal/logger"
	"github.com/shoplight/shoplight/internal/metrics"
	catalogrepo "github.com/shoplight/shoplight/internal/repository/catalog"
	"github.com/shoplight/shoplight/internal/repository/embcache"
	chiTransport "github.com/shoplight/shoplight/internal/transport/chi"
	"github.com/shoplight/shoplight/internal/transport/file"
	openaiTransport "github.com/shoplight/shoplight/internal/transport/openai"
	"github.com/shoplight/shoplight/internal/transport/web"
	answeruc "github.com/shoplight/shoplight/internal/usecase/answer"
	cataloguc "github.com/shoplight/shoplight/internal/usecase/catalog"
	corpusuc "github.com/shoplight/shoplight/internal/usecase/corpus"
	healthuc "github.com/shoplight/shoplight/internal/usecase/health"
	translateuc "github.com/shoplight/shoplight/internal/usecase/translate"
	"github.com/shoplight/shoplight/internal/version"
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

	logger.Info("Starting shoplight API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
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

	// Register model provider metrics explicitly (no init())
	metrics.RegisterModelMetrics()

	retryPolicy := domain.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
	}

	// Model provider clients — composition root
	embedder := buildEmbedder(cfg, store, retryPolicy, logger)
	generator := domain.NewRetryingGenerator(openaiTransport.NewChatClient(&openaiTransport.ChatConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
		Logger:  logger,
	}), retryPolicy)
	logger.Info("Model providers created",
		zap.String("embedding_model", cfg.OpenAI.EmbeddingModel),
		zap.Int("dimensions", cfg.OpenAI.EmbeddingDimensions),
		zap.String("chat_model", cfg.OpenAI.ChatModel),
	)

	// Answer pipeline services
	corpusSvc := corpusuc.New(file.NewFetcher(logger), web.NewScraper(logger), logger)
	translateSvc := translateuc.New(generator)
	answerSvc := answeruc.New(corpusSvc, translateSvc, embedder, generator, answeruc.Config{
		ContextTopK:    cfg.Retrieval.ContextTopK,
		ProductTopK:    cfg.Retrieval.ProductTopK,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
	}, logger)

	// Durable index services
	catalogRepo := catalogrepo.New(store, catalogrepo.IndexConfig{
		Dimensions:  cfg.Storage.VectorDimensions,
		HNSWM:       cfg.Storage.HNSWM,
		EFConstruct: cfg.Storage.HNSWEFConstruct,
	})
	catalogSvc := cataloguc.New(catalogRepo, embedder, logger)

	healthSvc := healthuc.New(store, newModelHealthChecker(embedder))

	// Create chi server
	server := chiTransport.NewServer(answerSvc, catalogSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Retrying
func buildEmbedder(cfg config.Config, store db.Store, policy domain.RetryPolicy, logger *zap.Logger) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.EmbeddingDimensions,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if cfg.Retrieval.CacheEnabled {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	return domain.NewRetryingEmbedder(embedder, policy)
}

// modelHealthChecker wraps domain.Embedder to implement health.ModelChecker.
type modelHealthChecker struct {
	embedder domain.Embedder
}

func newModelHealthChecker(embedder domain.Embedder) *modelHealthChecker {
	return &modelHealthChecker{embedder: embedder}
}

func (h *modelHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("model health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

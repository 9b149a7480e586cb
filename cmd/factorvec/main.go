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

	"github.com/kailas-cloud/factorvec/internal/config"
	"github.com/kailas-cloud/factorvec/internal/db"
	dbRedis "github.com/kailas-cloud/factorvec/internal/db/redis"
	"github.com/kailas-cloud/factorvec/internal/extract"
	logpkg "github.com/kailas-cloud/factorvec/internal/logger"
	"github.com/kailas-cloud/factorvec/internal/metrics"
	"github.com/kailas-cloud/factorvec/internal/repository/veccache"
	chiTransport "github.com/kailas-cloud/factorvec/internal/transport/chi"
	openaiCond "github.com/kailas-cloud/factorvec/internal/transport/openai"
	analysisuc "github.com/kailas-cloud/factorvec/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/factorvec/internal/usecase/health"
	"github.com/kailas-cloud/factorvec/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting factorvec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
		zap.Bool("condenser_enabled", cfg.Condenser.Enabled()),
	)

	// Register extraction metrics explicitly (no init())
	metrics.RegisterExtractionMetrics()

	// Optional cache store. Extraction works without it.
	var store db.Store
	if cfg.Cache.Enabled() {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer s.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := s.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Addrs))
		store = s
	}

	// Build the analysis pipeline — composition root
	extractor := extract.New(logger)
	svc := analysisuc.New(extractor, cfg.Extraction.FeatureQubits, logger)

	var condenser *openaiCond.Condenser
	if cfg.Condenser.Enabled() {
		condenser = openaiCond.NewCondenser(&openaiCond.Config{
			APIKey:  cfg.Condenser.APIKey,
			BaseURL: cfg.Condenser.BaseURL,
			Model:   cfg.Condenser.Model,
			Logger:  logger,
		})
		svc.WithCondenser(condenser, cfg.Condenser.MaxReportChars)
		logger.Info("Report condenser enabled", zap.String("model", cfg.Condenser.Model))
	}

	// Cached decorator on top when a store is configured.
	var analyzer chiTransport.Analyzer = svc
	if store != nil {
		analyzer = veccache.New(
			svc, store, cfg.Cache.KeyPrefix, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.VectorCacheTotal, logger,
		)
	}

	// Health service. Pass nil interfaces (not typed nil pointers!) for
	// components that are not configured.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	var condenserChecker healthuc.CondenserChecker
	if condenser != nil {
		condenserChecker = condenser
	}
	healthSvc := healthuc.New(cachePinger, condenserChecker)

	// Create chi server
	server := chiTransport.NewServer(analyzer, healthSvc, logger)

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

// Package main provides the college chat server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/collegechat/collegechat-go/internal/buildinfo"
	"github.com/collegechat/collegechat-go/internal/classifier"
	"github.com/collegechat/collegechat-go/internal/config"
	"github.com/collegechat/collegechat-go/internal/engine"
	"github.com/collegechat/collegechat-go/internal/knowledge"
	"github.com/collegechat/collegechat-go/internal/logger"
	"github.com/collegechat/collegechat-go/internal/metrics"
	"github.com/collegechat/collegechat-go/internal/nlp"
	"github.com/collegechat/collegechat-go/internal/ratelimit"
	"github.com/collegechat/collegechat-go/internal/sentiment"
	"github.com/collegechat/collegechat-go/internal/sentry"
	"github.com/collegechat/collegechat-go/internal/session"
	"github.com/collegechat/collegechat-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterstackToken:    cfg.BetterstackToken,
		BetterstackEndpoint: cfg.BetterstackEndpoint,
	})
	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting college chat server")

	// Initialize error tracking
	if err := sentry.Initialize(sentry.Config{
		DSN:     cfg.SentryDSN,
		Release: buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	}
	defer sentry.Flush(2 * time.Second)

	// Connect to the chat-log database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Load the knowledge base and intent catalog
	kb, err := knowledge.Load(cfg.KnowledgeDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load knowledge base")
	}
	catalog, err := knowledge.LoadCatalog(cfg.KnowledgeDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load intent catalog")
	}
	log.WithField("programs", len(kb.ProgramNames())).
		WithField("intents", len(catalog.Intents)).
		Info("Knowledge base loaded")

	// Load the trained classifier. The cascade cannot degrade gracefully
	// without its final stage, so a missing artifact is fatal.
	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load classifier model")
	}
	log.WithField("path", cfg.ModelPath).
		WithField("classes", len(model.Classes())).
		Info("Classifier model loaded")

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Session manager: one engine per conversation. The shared math/rand
	// source is safe across sessions.
	factory := func() *engine.Engine {
		return engine.New(kb, catalog, model, nlp.Preprocess, rand.Intn, cfg.ContextMaxTurns)
	}
	sessions := session.NewManager(factory, cfg.SessionIdleTTL)
	defer sessions.Stop()
	sessions.OnCount(m.SetActiveSessions)

	// Per-session rate limiting
	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     cfg.SessionRateBurst,
		RefillRate:    cfg.SessionRateRefill,
		CleanupPeriod: 5 * time.Minute,
	})
	defer limiter.Stop()
	limiter.OnDrop(func() { m.RecordRateLimitDrop("session") })

	srv := &server{
		log:      log.WithModule("http"),
		db:       db,
		kb:       kb,
		sessions: sessions,
		limiter:  limiter,
		analyzer: sentiment.NewAnalyzer(),
		metrics:  m,
	}

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log.WithModule("access")))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	setupRoutes(router, srv, cfg, registry)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pruneChatLogs(gctx, db, cfg.LogRetention, log.WithModule("retention"))
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server exited with error")
		sentry.CaptureException(err)
	}
	log.Info("Server stopped")
}

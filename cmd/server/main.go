// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services
// packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendorwatch/internal/enrichment"
	"vendorwatch/internal/enrichment/cache"
	enrichmetrics "vendorwatch/internal/enrichment/metrics"
	"vendorwatch/internal/enrichment/providers/gstn"
	"vendorwatch/internal/enrichment/providers/mca"
	"vendorwatch/internal/ledger"
	ledgerhandler "vendorwatch/internal/ledger/handler"
	ledgermetrics "vendorwatch/internal/ledger/metrics"
	"vendorwatch/internal/platform/config"
	"vendorwatch/internal/platform/httpserver"
	"vendorwatch/internal/platform/logger"
	"vendorwatch/internal/platform/redis"
	riskmetrics "vendorwatch/internal/risk/metrics"
	"vendorwatch/internal/synth"
	httptransport "vendorwatch/internal/transport/http"
	"vendorwatch/pkg/platform/audit/kafka"
	"vendorwatch/pkg/platform/audit/publisher"
	auditmemory "vendorwatch/pkg/platform/audit/store/memory"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var enrichmentCache cache.Store
	if redisClient != nil {
		enrichmentCache = cache.NewRedis(redisClient.Client, cfg.EnrichmentCacheTTL)
		log.Info("using redis enrichment cache", "ttl", cfg.EnrichmentCacheTTL)
	} else {
		enrichmentCache = cache.NewInMemory(cfg.EnrichmentCacheTTL)
		log.Info("using in-memory enrichment cache", "ttl", cfg.EnrichmentCacheTTL)
	}

	enricher, err := enrichment.New(
		gstn.New(),
		mca.New(),
		enrichment.WithLogger(log),
		enrichment.WithMetrics(enrichmetrics.New()),
		enrichment.WithCache(enrichmentCache),
	)
	if err != nil {
		log.Error("enrichment setup failed", "error", err)
		os.Exit(1)
	}

	publisherOpts := []publisher.Option{
		publisher.WithAsyncBuffer(1024),
		publisher.WithLogger(log),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := kafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		publisherOpts = append(publisherOpts, publisher.WithSink(sink))
		log.Info("audit events forwarded to kafka", "topic", cfg.Kafka.Topic)
	}
	auditPublisher := publisher.NewPublisher(auditmemory.NewInMemoryStore(), publisherOpts...)
	defer auditPublisher.Close()

	ledgerStore := ledger.NewInMemoryStore()
	ledgerService, err := ledger.NewService(
		ledgerStore,
		enricher,
		ledger.NewRandomAttributes(nil),
		ledger.WithLogger(log),
		ledger.WithMetrics(ledgermetrics.New()),
		ledger.WithRiskMetrics(riskmetrics.New()),
		ledger.WithAuditor(auditPublisher),
	)
	if err != nil {
		log.Error("ledger setup failed", "error", err)
		os.Exit(1)
	}

	if cfg.SeedVendors > 0 {
		seedLedger(log, ledgerStore, cfg.SeedVendors)
	}

	checks := map[string]httptransport.HealthChecker{"enrichment": enricher}
	if redisClient != nil {
		checks["redis"] = redisClient
		defer redisClient.Close()
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger: log,
		Ledger: ledgerhandler.New(ledgerService, log, auditPublisher),
		Checks: checks,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting vendorwatch", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// seedLedger pre-populates the store with synthetic vendors so a fresh
// deployment has data to demo against.
func seedLedger(log *slog.Logger, store ledger.Store, n int) {
	ctx := context.Background()
	generator := synth.NewGenerator(nil)
	inserted := 0
	for _, v := range generator.Vendors(n) {
		if err := store.Insert(ctx, v); err != nil {
			log.Warn("seed insert skipped", "gstin", v.GSTIN, "error", err)
			continue
		}
		inserted++
	}
	log.Info("ledger seeded", "vendors", inserted)
}

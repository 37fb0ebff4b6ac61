// Command server wires the due reconciliation engine behind an HTTP API.
// Business logic lives in the internal packages; main only assembles
// dependencies and owns the server lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"kitledger/internal/audit"
	"kitledger/internal/catalog"
	"kitledger/internal/dues"
	"kitledger/internal/dues/adapters"
	dueshandler "kitledger/internal/dues/handler"
	duesmetrics "kitledger/internal/dues/metrics"
	"kitledger/internal/dues/ports"
	"kitledger/internal/platform/config"
	"kitledger/internal/platform/httpserver"
	"kitledger/internal/platform/logger"
	platformredis "kitledger/internal/platform/redis"
	"kitledger/internal/roster"
	httptransport "kitledger/internal/transport/http"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	checks := map[string]httptransport.HealthCheck{}

	// Stores: Postgres when configured, in-memory otherwise.
	var (
		rosterStore  roster.Store
		catalogStore catalog.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		for _, schema := range []string{roster.Schema, catalog.Schema} {
			if _, err := db.Exec(schema); err != nil {
				log.Error("apply schema", "error", err)
				os.Exit(1)
			}
		}
		rosterStore = roster.NewPostgresStore(db)
		catalogStore = catalog.NewPostgresStore(db)
		checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }
		log.Info("using postgres stores")
	} else {
		rosterStore = roster.NewInMemoryStore()
		catalogStore = catalog.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	// Snapshot cache is optional.
	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
		checks["redis"] = cache.Health
		log.Info("snapshot cache enabled", "ttl", cfg.SnapshotTTL)
	}

	// Audit sink: Kafka behind a background worker when brokers are
	// configured, synchronous in-memory otherwise.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	var auditPublisher ports.AuditPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := kafkaStore.EnsureTopic(ctx); err != nil {
			cancel()
			log.Error("ensure audit topic", "error", err)
			os.Exit(1)
		}
		cancel()

		inbox := make(chan audit.Event, 256)
		worker := audit.NewWorker(kafkaStore, inbox)
		go func() {
			if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		auditPublisher = audit.NewQueuePublisher(inbox)
		log.Info("audit events to kafka", "topic", cfg.AuditTopic)
	} else {
		auditPublisher = audit.NewPublisher(audit.NewMemoryStore())
		log.Info("audit events to memory")
	}

	metrics := duesmetrics.New()
	service := dues.NewService(
		adapters.NewRosterProvider(rosterStore, cache, cfg.SnapshotTTL, log),
		adapters.NewCatalogProvider(catalogStore, cache, cfg.SnapshotTTL, log),
		auditPublisher,
		log,
		metrics,
	)

	router := httptransport.NewRouter(dueshandler.New(service, log), checks)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

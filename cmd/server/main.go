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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	medconfig "medgate/internal/medadmin/config"
	"medgate/internal/medadmin/directory"
	"medgate/internal/medadmin/handler"
	"medgate/internal/medadmin/lock"
	"medgate/internal/medadmin/metrics"
	"medgate/internal/medadmin/ports"
	"medgate/internal/medadmin/publish"
	"medgate/internal/medadmin/service"
	auditstore "medgate/internal/medadmin/store/audit"
	"medgate/internal/platform/config"
	"medgate/internal/platform/httpserver"
	"medgate/internal/platform/logger"
	"medgate/internal/platform/middleware"
	"medgate/internal/platform/redis"
	"medgate/pkg/platform/httputil"
)

// main wires the administration verification service to its collaborators:
// a durable audit store (postgres or in-memory), a per-key lock manager
// (redis or in-process), and an optional Kafka audit fan-out. Business logic
// lives in internal/medadmin.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	vcfg := medconfig.DefaultConfig()
	m := metrics.New()

	audits, closeAudits, err := buildAuditStore(ctx, cfg)
	if err != nil {
		log.Error("audit store initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeAudits()

	locks, closeLocks, err := buildLockManager(cfg, vcfg)
	if err != nil {
		log.Error("lock manager initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeLocks()

	// The clinical collaborators (resident directory, medication catalog,
	// prescription store, interaction database, staff registry) are owned by
	// the surrounding care-home systems; this process carries in-memory
	// projections fed by those systems.
	residents := directory.NewInMemoryResidentDirectory()
	medications := directory.NewInMemoryMedicationCatalog()
	prescriptions := directory.NewInMemoryPrescriptionStore()
	interactions := directory.NewInMemoryInteractionDatabase()
	staff := directory.NewInMemoryStaffRegistry()

	if os.Getenv("MEDGATE_SEED_DEMO") == "true" {
		fixtures := directory.SeedDemo(residents, medications, prescriptions, staff)
		log.Info("demo fixtures seeded",
			"resident_id", fixtures.ResidentID,
			"medication_id", fixtures.MedicationID,
			"prescription_id", fixtures.PrescriptionID,
			"staff_id", fixtures.StaffID,
			"witness_id", fixtures.WitnessID,
		)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithConfig(vcfg),
	}
	if len(cfg.Kafka.Seeds) > 0 {
		publisher, err := publish.NewKafkaPublisher(cfg.Kafka.Seeds, cfg.Kafka.AuditTopic, publish.WithLogger(log))
		if err != nil {
			log.Error("kafka publisher initialization failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, service.WithPublisher(publisher))
	}

	svc, err := service.New(residents, medications, prescriptions, interactions, staff, audits, locks, opts...)
	if err != nil {
		log.Error("service initialization failed", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		handler.New(svc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting medgate", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("medgate stopped")
}

// buildAuditStore returns the configured audit trail backend. Postgres when a
// URL is set; otherwise the in-memory store for local development.
func buildAuditStore(ctx context.Context, cfg config.Server) (ports.AuditStore, func(), error) {
	if cfg.PostgresURL == "" {
		return auditstore.NewInMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	store := auditstore.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}

// buildLockManager returns the configured per-key lock. Redis when a URL is
// set; otherwise the in-process lock (single-instance deployments only).
func buildLockManager(cfg config.Server, vcfg medconfig.VerificationConfig) (ports.LockManager, func(), error) {
	client, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return lock.NewKeyedLock(vcfg.LockWait), func() {}, nil
	}
	return lock.NewRedisLock(client.Client, vcfg.LockWait, vcfg.LockTTL), func() { client.Close() }, nil
}

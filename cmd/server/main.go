package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reliefops/internal/audit"
	"reliefops/internal/grid"
	gridstore "reliefops/internal/grid/store/ownership"
	"reliefops/internal/identity"
	rolestore "reliefops/internal/identity/store/role"
	"reliefops/internal/identity/token"
	"reliefops/internal/platform/config"
	"reliefops/internal/platform/httpserver"
	"reliefops/internal/platform/logger"
	"reliefops/internal/platform/metrics"
	platformredis "reliefops/internal/platform/redis"
	"reliefops/internal/volunteer"
	volunteerservice "reliefops/internal/volunteer/service"
	registrationstore "reliefops/internal/volunteer/store/registration"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	// Grid ownership reads go to Redis when configured (deployments that
	// project ownership into a key-value store), otherwise to Postgres.
	var ownershipStore grid.OwnershipStore = gridstore.NewPostgres(db)
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		ownershipStore = gridstore.NewRedis(redisClient.Client)
	}

	checker := grid.NewChecker(ownershipStore,
		grid.WithLogger(log),
		grid.WithMetrics(m),
		grid.WithLookupTimeout(cfg.LookupTimeout),
	)

	resolver := identity.NewResolver(
		token.NewVerifier(cfg.JWTSigningKey, cfg.JWTIssuer),
		rolestore.NewPostgres(db),
		identity.WithLogger(log),
		identity.WithMetrics(m),
		identity.WithLookupTimeout(cfg.LookupTimeout),
	)

	svcOpts := []volunteer.Option{
		volunteerservice.WithLogger(log),
		volunteerservice.WithMetrics(m),
		volunteerservice.WithLookupTimeout(cfg.LookupTimeout),
	}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("failed to connect audit sink", "error", err)
			os.Exit(1)
		}
		defer sink.Close()

		inbox := make(chan audit.Event, 256)
		worker := audit.NewWorker(sink, inbox, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		svcOpts = append(svcOpts, volunteerservice.WithAuditPublisher(audit.NewChannelPublisher(inbox)))
	}

	svc := volunteer.NewService(registrationstore.NewPostgres(db), checker, svcOpts...)

	router := chi.NewRouter()
	volunteer.NewHandler(svc, resolver, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting reliefops server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

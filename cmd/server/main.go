// citizengate api server: profile store, eligibility verification, profile
// validation, and the guided task engine behind one HTTP surface.
//
// main wires dependencies and owns the process lifecycle. Optional backends
// (redis, postgres, kafka) activate when configured; otherwise the in-memory
// implementations serve, which is the development default.
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

	eligibilitymetrics "citizengate/internal/eligibility/metrics"
	taskmetrics "citizengate/internal/task/metrics"
	validationmetrics "citizengate/internal/validation/metrics"

	"citizengate/internal/eligibility"
	"citizengate/internal/platform/config"
	"citizengate/internal/platform/httpserver"
	"citizengate/internal/platform/logger"
	platformmetrics "citizengate/internal/platform/metrics"
	"citizengate/internal/platform/postgres"
	"citizengate/internal/platform/ratelimit"
	platformredis "citizengate/internal/platform/redis"
	"citizengate/internal/profile"
	"citizengate/internal/task"
	httptransport "citizengate/internal/transport/http"
	"citizengate/internal/validation"
	"citizengate/pkg/platform/audit"
	auditkafka "citizengate/pkg/platform/audit/kafka"
	auditworker "citizengate/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var healthChecks []httptransport.HealthCheck

	// Profile storage: redis when configured, memory otherwise.
	var profileStore profile.Store
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		profileStore = profile.NewRedisStore(redisClient.Client)
		healthChecks = append(healthChecks, httptransport.HealthCheck{
			Name: "redis", Check: redisClient.Health,
		})
		log.Info("profile store: redis")
	} else {
		profileStore = profile.NewInMemoryStore()
		log.Info("profile store: memory")
	}

	// Audit storage: postgres when configured, memory otherwise.
	var auditStore audit.Store
	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		auditStore = audit.NewPostgresStore(db)
		healthChecks = append(healthChecks, httptransport.HealthCheck{
			Name: "postgres", Check: db.PingContext,
		})
		log.Info("audit store: postgres")
	} else {
		auditStore = audit.NewInMemoryStore()
		log.Info("audit store: memory")
	}

	// Audit pipeline: synchronous store append, optional kafka fan-out
	// through a buffered outbox drained by a worker.
	auditOpts := []audit.Option{audit.WithLogger(log)}
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	var workerDone chan struct{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		outbox := make(chan audit.Event, 256)
		auditOpts = append(auditOpts, audit.WithOutbox(outbox))
		worker := auditworker.New(producer, outbox, log)
		workerDone = make(chan struct{})
		go func() {
			defer close(workerDone)
			worker.Run(workerCtx)
		}()
		log.Info("audit sink: kafka", "topic", cfg.KafkaAuditTopic)
	}
	auditPub := audit.NewPublisher(auditStore, auditOpts...)

	// Services.
	profileService := profile.NewService(profileStore, auditPub, log)
	agent := eligibility.NewAgent(profileStore, auditPub, eligibilitymetrics.New(), log)
	validator := validation.NewValidator(profileStore, auditPub, validationmetrics.New(), log)
	taskEngine := task.NewEngine(task.NewInMemoryStore(), profileStore, auditPub, taskmetrics.New(), log)

	var limiter *ratelimit.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = ratelimit.New(cfg.RateLimitPerMinute, time.Minute)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:        log,
		Metrics:       platformmetrics.New(),
		JWTSigningKey: cfg.JWTSigningKey,
		RateLimiter:   limiter,
		Handlers: []httptransport.Registrar{
			profile.NewHandler(profileService, log),
			eligibility.NewHandler(agent, log),
			validation.NewHandler(validator, log),
			task.NewHandler(taskEngine, log),
		},
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting citizengate", "addr", cfg.Addr)
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
	}
	stopWorker()
	if workerDone != nil {
		waitOrTimeout(workerDone, 5*time.Second, log)
	}
}

func waitOrTimeout(done <-chan struct{}, d time.Duration, log *slog.Logger) {
	select {
	case <-done:
	case <-time.After(d):
		log.Warn("audit worker did not drain in time")
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Budorazhka/LastDance-sub001/internal/infra/database"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/http/handlers"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/http/middleware"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/mail"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/queue"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/roster"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/worker"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Seed roster
	seed, err := roster.LoadFile(cfg.RosterFile)
	if err != nil {
		log.Fatal(err)
	}

	store := usecase.NewLeadPoolStore(usecase.PoolState{
		Managers:     seed.ManagerEntities(),
		Rule:         cfg.Rule,
		LeadPartners: seed.LeadPartners,
	})

	// 2. Partner directory: Postgres when configured, otherwise the seed file
	var directory usecase.PartnerDirectory = roster.StaticDirectory{Partners: seed.Partners}
	var dbPinger handlers.Pinger
	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		repo := database.NewPartnerRepository(db)
		directory = repo
		dbPinger = repo
	}

	// 3. Broker, producer and notification worker
	metrics := middleware.DistributionMetrics{}
	var publisher usecase.AssignmentPublisher
	var broker handlers.BrokerStatus
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ

		if cfg.Mail.Enabled() {
			sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
			w := queue.NewWorker(rabbitMQ.Ch, countingNotifier{next: sender, observer: metrics}, logger)
			go func() {
				if err := w.Start(ctx, queue.QueueName); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("lead assignment worker stopped", "error", err)
				}
			}()
		} else {
			logger.Warn("MAIL_HOST not set, assignment notices are queued but not sent")
		}
	} else {
		logger.Warn("RABBITMQ_URL not set, assignment events are disabled")
	}

	// 4. Use cases
	service := usecase.NewDistributionService(store, publisher, metrics, logger)
	toggles := usecase.NewPermissionToggles(store)
	cabinets := usecase.NewCabinetContext(directory, cfg.CurrentUserID, cfg.Locale, logger)

	statsWorker := worker.NewPoolStatsWorker(store, metrics, cfg.StatsInterval, logger)
	go statsWorker.Start(ctx)

	limiter := handlers.NewRateLimiter(30, time.Minute)
	go limiter.RunSweeper(10*time.Minute, ctx.Done())

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	handlers.NewLeadHandler(service, limiter).Register(r)
	handlers.NewDistributionHandler(service).Register(r)
	handlers.NewManagerHandler(service).Register(r)
	handlers.NewLeadPartnerHandler(service, toggles).Register(r)
	handlers.NewCabinetHandler(cabinets).Register(r)
	r.Get("/health", handlers.NewHealthHandler(store, cabinets, dbPinger, broker, version).Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("lead distribution console listening", "port", cfg.Port, "rule", cfg.Rule, "managers", len(seed.Managers))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// countingNotifier records failed notices before handing the error back to the worker.
type countingNotifier struct {
	next     queue.Notifier
	observer usecase.RoutingObserver
}

func (n countingNotifier) SendLeadAssigned(ctx context.Context, p queue.LeadAssignedPayload) error {
	err := n.next.SendLeadAssigned(ctx, p)
	if err != nil {
		n.observer.NotificationFailed("email")
	}
	return err
}

package app

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/config"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/handler"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/repository"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/scheduler"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/server"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/service"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/migrations"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/circuit_breaker"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/kafka"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/logger"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/mailer"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/postgres"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/rabbitmq"
	"github.com/PrepZone-ai/LibraryConnekto-Backend/pkg/razorpay"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	cbWindow           = 10
	cbCooldown         = 30 * time.Second
	cbThreshold        = 0.5
	cbRecoveryRequests = 2
)

type eventPublisher interface {
	service.Publisher
	io.Closer
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }
func (nopPublisher) Close() error { return nil }

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	publisher, err := newPublisher(cfg)
	if err != nil {
		log.Fatal("events publisher", zap.Error(err), zap.String("broker", cfg.Events.Broker))
	}
	svc, err := newService(cfg, db, publisher, log)
	if err != nil {
		log.Fatal("service", zap.Error(err))
	}

	h := handler.New(svc, svc, svc, log, handler.WithJWTSecret(cfg.Auth.JWTSecret))
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = newScheduler(cfg, svc, log)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal("scheduler start", zap.Error(err))
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if sched != nil {
		if err = sched.Stop(closeCtx); err != nil {
			log.Warn("scheduler stop", zap.Error(err))
		}
	}
	svc.Close()
	if err = publisher.Close(); err != nil {
		log.Warn("publisher close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

// Migrate applies the embedded migrations and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.Connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Migrate(db, migrations.MigrationFiles)
}

// Sweep runs one full lifecycle pass without the daily gate.
func Sweep(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()
	publisher, err := newPublisher(cfg)
	if err != nil {
		return errors.Wrap(err, "events publisher")
	}
	defer publisher.Close()

	svc, err := newService(cfg, db, publisher, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	return scheduler.New(svc, log, scheduler.Options{}).RunOnce(ctx)
}

func newService(cfg *config.Config, db *pgxpool.Pool, publisher service.Publisher, log *zap.Logger) (*service.Service, error) {
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return nil, errors.Wrap(err, "repo")
	}

	gateway := razorpay.NewClient(cfg.Razorpay,
		razorpay.WithCircuitBreaker(circuit_breaker.New(cbWindow, cbCooldown, cbThreshold, cbRecoveryRequests)))

	var mail service.Mailer = mailer.Nop{}
	if cfg.SMTP.Enabled {
		mail = mailer.NewSMTP(cfg.SMTP)
	}

	settings := service.DefaultSettings()
	settings.TokenAmountPaise = cfg.Payment.TokenAmountPaise
	settings.Currency = cfg.Payment.Currency
	settings.EmailFromScheduler = cfg.Scheduler.EmailFromScheduler
	if cfg.Scheduler.NotificationBatchLimit > 0 {
		settings.NotificationBatchLimit = cfg.Scheduler.NotificationBatchLimit
	}

	return service.NewService(repo, log,
		service.WithGateway(gateway),
		service.WithMailer(mail),
		service.WithPublisher(publisher),
		service.WithSettings(settings),
	), nil
}

func newScheduler(cfg *config.Config, jobs scheduler.Jobs, log *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(jobs, log, scheduler.Options{
		InitialDelay: cfg.Scheduler.InitialDelay(),
		Interval:     cfg.Scheduler.LoopInterval(),
		Cron:         cfg.Scheduler.Cron,
		DailyChecks:  cfg.Scheduler.DailyChecks,
	})
}

func newPublisher(cfg *config.Config) (eventPublisher, error) {
	switch cfg.Events.Broker {
	case config.BrokerKafka:
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return nil, errors.Wrap(err, "kafka.NewProducer")
		}
		return kafka.NewPublisher(producer), nil
	case config.BrokerRabbitMQ:
		producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQ)
		if err != nil {
			return nil, errors.Wrap(err, "rabbitmq.NewEventProducer")
		}
		return producer, nil
	case config.BrokerNone, "":
		return nopPublisher{}, nil
	default:
		return nil, errors.Errorf("unknown events broker %q", cfg.Events.Broker)
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/IlianBuh/Blog-service/internal/app/grpcapp"
	"github.com/IlianBuh/Blog-service/internal/app/httpapp"
	"github.com/IlianBuh/Blog-service/internal/config"
	cfgStorage "github.com/IlianBuh/Blog-service/internal/config/storage"
	"github.com/IlianBuh/Blog-service/internal/domain/models"
	"github.com/IlianBuh/Blog-service/internal/lib/logger/sl"
	eventworker "github.com/IlianBuh/Blog-service/internal/service/event-worker"
	"github.com/IlianBuh/Blog-service/internal/service/posts"
	"github.com/IlianBuh/Blog-service/internal/storage/memory"
	"github.com/IlianBuh/Blog-service/internal/storage/postgres"
	"github.com/IlianBuh/Blog-service/internal/transport/kafka"
)

// repository is everything the application needs from a storage driver
type repository interface {
	Save(ctx context.Context, post models.Post) (int, error)
	Posts(ctx context.Context) ([]models.Post, error)
	EventPage(ctx context.Context, limit int) ([]models.Event, error)
	Reserve(ctx context.Context, ids []string) error
	DeleteEvent(ctx context.Context, ids []string) error
	Stop() error
}

type App struct {
	log           *slog.Logger
	DB            repository
	GRPCApp       *grpcapp.App
	HTTPApp       *httpapp.App
	EventProducer *kafka.Producer
	EventWorker   *eventworker.Worker
}

// New builds the application. Event publishing is enabled only when kafka
// brokers are configured
func New(log *slog.Logger, cfg *config.Config) *App {
	const op = "app.New"
	fail := func(err error) {
		panic(op + ": " + err.Error())
	}

	repo, err := newRepository(cfg.Storage)
	if err != nil {
		fail(err)
	}

	postService := posts.New(log, repo, repo, cfg.GRPC.Timeout.Duration)

	a := &App{
		log:     log,
		DB:      repo,
		GRPCApp: grpcapp.New(log, cfg.GRPC.Port, postService, cfg.GRPC.Timeout.Duration),
		HTTPApp: httpapp.New(
			log,
			cfg.HTTP.Port,
			postService,
			cfg.HTTP.Timeout.Duration,
			cfg.Frontend,
			cfg.HTTP.StaticDir,
		),
	}

	if len(cfg.Kafka.Addrs) == 0 {
		log.Warn("kafka brokers are not set, events are kept in storage", slog.String("op", op))
		return a
	}

	producer, err := kafka.NewProducer(
		context.Background(),
		log,
		cfg.Kafka.Addrs,
		cfg.Kafka.Topic,
		cfg.Kafka.Timeout,
		cfg.Kafka.Retries,
	)
	if err != nil {
		fail(err)
	}

	a.EventProducer = producer
	a.EventWorker = eventworker.New(
		log,
		cfg.EventWorker.PageSize,
		repo,
		repo,
		repo,
		producer,
		cfg.EventWorker.Interval.Duration,
		cfg.EventWorker.Timeout.Duration,
	)

	return a
}

func newRepository(cfg cfgStorage.Config) (repository, error) {
	switch cfg.Driver {
	case cfgStorage.DriverMemory:
		return memory.New(), nil
	case cfgStorage.DriverPostgres:
		repo, err := postgres.New(cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *App) Start() {
	const op = "app.Start"
	log := a.log.With(slog.String("op", op))
	log.Info("starting application")

	if a.EventWorker != nil {
		a.EventWorker.Start(context.Background())
	}

	go a.GRPCApp.MustRun()
	go a.HTTPApp.MustRun()

	log.Info("application started")
}

func (a *App) Stop() {
	const op = "app.Stop"
	log := a.log.With(slog.String("op", op))
	log.Info("stopping application")

	var wg sync.WaitGroup
	run := func(stop func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop()
		}()
	}

	run(a.GRPCApp.Stop)
	run(a.HTTPApp.Stop)
	wg.Wait()

	// worker goes first, so nothing is sent into a closed producer
	if a.EventWorker != nil {
		a.EventWorker.Stop()
		a.EventProducer.Stop()
	}

	if err := a.DB.Stop(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("application is stopped")
}

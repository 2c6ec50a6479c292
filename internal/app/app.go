package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/cart-service/internal/cfg"
	v1Http "github.com/DRSN-tech/cart-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/cart-service/internal/infrastructure/kafka"
	"github.com/DRSN-tech/cart-service/internal/infrastructure/storefront"
	fileRepo "github.com/DRSN-tech/cart-service/internal/repository/file"
	redisRepo "github.com/DRSN-tech/cart-service/internal/repository/redis"
	sqliteRepo "github.com/DRSN-tech/cart-service/internal/repository/sqlite"
	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/clients"
	"github.com/DRSN-tech/cart-service/pkg/closer"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/DRSN-tech/cart-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

func Run(cfg *config.Config, logger logger.Logger) {
	cl := closer.NewCloser(2 * time.Second)

	snapshotRepo, err := initSnapshotRepo(cfg, cl)
	if err != nil {
		logger.Errorf(err, "failed to initialize snapshot storage")
		os.Exit(1)
	}
	logger.Infof("snapshot storage: %s", cfg.Storage.Backend)

	storefrontClient := storefront.NewClient(cfg.Storefront, logger)

	var producer usecase.EventProducer
	if cfg.Kafka != nil {
		kafkaProducer, err := kafka.NewProducer(logger, cfg.Kafka)
		if err != nil {
			logger.Errorf(err, "failed to initialize kafka producer")
			os.Exit(1)
		}

		if err := kafkaProducer.EnsureTopic(10 * time.Second); err != nil {
			logger.Errorf(err, "failed to initialize kafka topic")
			os.Exit(1)
		}

		cl.Add(func(ctx context.Context) error {
			return kafkaProducer.Close()
		})
		producer = kafkaProducer
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 5*time.Second)
	cartUC := usecase.NewCartUC(
		loadCtx,
		snapshotRepo,
		storefrontClient,
		producer,
		logger,
		cfg.User.ID,
		cfg.Storefront.SyncTimeout,
	)
	loadCancel()

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(cartUC, cfg.Storefront.Timeout)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("resource shutdown error: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

// initSnapshotRepo выбирает бэкенд хранилища снапшотов по конфигурации и
// регистрирует закрытие его ресурсов.
func initSnapshotRepo(cfg *config.Config, cl *closer.Closer) (usecase.SnapshotRepository, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendFile:
		return fileRepo.NewSnapshotRepo(cfg.Storage.FilePath), nil

	case config.StorageBackendSqlite:
		initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		repo, err := sqliteRepo.NewSnapshotRepo(initCtx, cfg.Storage.SqlitePath, cfg.Storage.Key)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add(func(ctx context.Context) error {
			return repo.Close()
		})
		return repo, nil

	case config.StorageBackendRedis:
		redisClient := clients.NewRedisClient(cfg.Redis)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add(func(ctx context.Context) error {
			return redisClient.Client.Close()
		})
		return redisRepo.NewSnapshotRepo(redisClient, cfg.Storage), nil

	default:
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnknownBackend)
	}
}

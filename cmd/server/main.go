package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/config"
	"github.com/maxviazov/worldcities-service/internal/handler"
	"github.com/maxviazov/worldcities-service/internal/logger"
	"github.com/maxviazov/worldcities-service/internal/repository"
	"github.com/maxviazov/worldcities-service/internal/repository/memory"
	"github.com/maxviazov/worldcities-service/internal/repository/postgres"
	"github.com/maxviazov/worldcities-service/internal/service"
	"github.com/rs/zerolog"
)

// storage is everything the services and probes need from a backend.
type storage struct {
	cities    repository.CityRepository
	countries repository.CountryRepository
	tx        repository.TxManager
	pinger    repository.Pinger
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, appLogger *zerolog.Logger) (storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		s := memory.New()
		appLogger.Warn().Msg("using in-memory storage; data is lost on restart")
		return storage{cities: s.Cities(), countries: s.Countries(), tx: s.TxManager(), pinger: s, close: func() {}}, nil
	}
	db, err := repository.New(ctx, cfg, appLogger)
	if err != nil {
		return storage{}, err
	}
	pool := db.Pool()
	return storage{
		cities:    postgres.NewCityRepository(pool),
		countries: postgres.NewCountryRepository(pool),
		tx:        postgres.NewTxManager(pool),
		pinger:    postgres.NewPinger(pool),
		close:     db.Close,
	}, nil
}

func main() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage initialization failed")
	}
	defer store.close()

	citySvc := service.NewCityService(store.cities, store.countries, appLogger)
	countrySvc := service.NewCountryService(store.countries, store.tx, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := handler.NewEngine(appLogger, cfg.Server.CORSOrigins)
	handler.Register(engine, store.pinger, citySvc, countrySvc)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		appLogger.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("service stopped")
}

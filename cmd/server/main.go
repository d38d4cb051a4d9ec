package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ulascansenturk/weather-fetcher/config"
	"ulascansenturk/weather-fetcher/internal/api/v1/handlers"
	"ulascansenturk/weather-fetcher/internal/db/weatherquery"
	"ulascansenturk/weather-fetcher/internal/providers"
	"ulascansenturk/weather-fetcher/internal/retention"
	"ulascansenturk/weather-fetcher/internal/service"
	"ulascansenturk/weather-fetcher/internal/session"
	"ulascansenturk/weather-fetcher/internal/telemetry"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("env", conf.Env).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	shutdownTracer, err := telemetry.InitTracer(conf.ServiceName, conf.ZipkinEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	var (
		weatherRepo  weatherquery.Repository
		retentionJob *retention.Job
	)

	if conf.HistoryEnabled() {
		db, dbErr := initializeDatabase(conf)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to initialize database")
		}

		weatherRepo = weatherquery.NewRepository(db)

		retentionJob, err = retention.NewJob(weatherRepo, conf.HistoryRetention, conf.HistoryRetentionSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to schedule history retention")
		}
		retentionJob.Start()
	} else {
		log.Info().Msg("database not configured, weather history disabled")
	}

	sessions := session.NewInMemoryStore(conf.SessionIdleTTL, conf.SessionCleanupInterval)

	fetcher := providers.NewOpenWeatherMapFetcher(
		conf.OpenWeatherMapAPIKey,
		conf.OpenWeatherMapBaseURL,
		conf.HTTPClientTimeout,
	)

	dispatcher := service.NewRequestDispatcher(fetcher, sessions, weatherRepo)
	weatherService := service.NewWeatherService(dispatcher, sessions, weatherRepo)

	handler := handlers.NewWeatherHandler(weatherService, conf.HTTPTimeoutDuration())

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           otelhttp.NewHandler(handler, conf.ServiceName),
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func(shutdownCtx context.Context) {
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("server shutdown failed")
		}

		dispatcher.Shutdown()
		sessions.Close()

		if retentionJob != nil {
			<-retentionJob.Stop().Done()
		}

		if tracerErr := shutdownTracer(shutdownCtx); tracerErr != nil {
			log.Error().Err(tracerErr).Msg("tracer shutdown failed")
		}
	})

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&weatherquery.WeatherQuery{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func(context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback(shutdownCtx)

		cancel()
		cancelCtx()
	}()
}

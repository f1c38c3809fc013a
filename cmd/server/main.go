// Command server runs the car listings API.
//
// Startup order: .env → config → logging → tracing → database → session
// store → router → HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	_ "github.com/tbourn/go-car-backend/docs"
	"github.com/tbourn/go-car-backend/internal/auth"
	"github.com/tbourn/go-car-backend/internal/config"
	httpapi "github.com/tbourn/go-car-backend/internal/http"
	"github.com/tbourn/go-car-backend/internal/observability"
	"github.com/tbourn/go-car-backend/internal/repo"
	"github.com/tbourn/go-car-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title           Car API
// @version         1.0
// @description     CRUD REST API for car listings and reviews. Writes require logging in with GitHub.
// @BasePath        /
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		if err := shutdownOTel(context.Background()); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	if cfg.Auth.GitHub.ClientID == "" || cfg.Auth.GitHub.ClientSecret == "" {
		log.Warn().Msg("GITHUB_CLIENT_ID/GITHUB_CLIENT_SECRET not set; login will fail")
	}
	provider := auth.NewGitHubProvider(
		cfg.Auth.GitHub.ClientID,
		cfg.Auth.GitHub.ClientSecret,
		cfg.Auth.GitHub.CallbackURL,
	)
	store := auth.NewMemoryStore(cfg.Session.TTL)
	defer store.Close()

	r := gin.New()
	httpapi.RegisterRoutes(r, db, store, provider, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

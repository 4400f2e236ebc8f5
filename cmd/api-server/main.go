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

	"adminhub/internal/api"
	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/internal/exports"
	"adminhub/internal/live"
	"adminhub/internal/logging"
	"adminhub/internal/normalize"
	"adminhub/pkg/database"
	"adminhub/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		l := logging.Init(logging.ParseLevel("info"), false)
		l.Fatal().Err(err).Msg("load config")
	}
	log := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Pretty)
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("open db")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	normalizer := normalize.New(
		normalize.WithCurrency(cfg.Normalize.Currency),
		normalize.WithDateLayout(cfg.Normalize.DateLayout),
		normalize.WithLocation(cfg.Normalize.Location()),
	)

	hub := live.NewHub()
	router := api.NewRouter(api.Deps{
		Log:       log,
		DB:        db,
		Dashboard: dashboard.NewService(normalizer),
		Tokens: auth.TokenService{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Issuer:   cfg.Auth.JWTIssuer,
			Duration: cfg.Auth.JWTDuration,
		},
		Operators:      auth.NewRepo(db),
		Exports:        exports.NewRepo(db),
		Hub:            hub,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("db", cfg.DB.Path).Msg("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	log.Info().Msg("server stopped")
}

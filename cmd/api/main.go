package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/agencyops/internal/config"
	"github.com/MrJamesThe3rd/agencyops/internal/database"
	"github.com/MrJamesThe3rd/agencyops/internal/export"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	forecastStore "github.com/MrJamesThe3rd/agencyops/internal/forecast/store"
	agencyHttp "github.com/MrJamesThe3rd/agencyops/internal/http"
	forecastHandler "github.com/MrJamesThe3rd/agencyops/internal/http/forecast"
	matchingHandler "github.com/MrJamesThe3rd/agencyops/internal/http/matching"
	"github.com/MrJamesThe3rd/agencyops/internal/importer"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/agencyops/internal/matching/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := forecastStore.New(db)

	var (
		forecastService = forecast.NewService(store, forecast.Options{
			DefaultRate:   cfg.Forecast.BlendedRate,
			DefaultWindow: cfg.Forecast.WindowMonths,
			MaxWindow:     cfg.Forecast.MaxWindow,
			Location:      loc,
		})
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(forecastService)
	)

	var (
		forecastH = forecastHandler.NewHandler(forecastService, store, exportService, importService, matchingService)
		matchingH = matchingHandler.NewHandler(matchingService)
	)

	router := agencyHttp.New(forecastH, matchingH, agencyHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", server.Addr, "auth", cfg.Auth.JWTSecret != "")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}

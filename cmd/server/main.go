// Package main initializes and starts the PatoApp HTTP server,
// setting up configuration, logging, the key-value store, services,
// handlers and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/PatoApp/internal/config"
	"github.com/atinyakov/PatoApp/internal/logger"
	"github.com/atinyakov/PatoApp/internal/repository"
	"github.com/atinyakov/PatoApp/internal/server/handler/http"
	"github.com/atinyakov/PatoApp/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Open the key-value store behind both services.
	store, closeStore, err := repository.Open(options.Storage, options.StorageLocation())
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.String("backend", options.Storage), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			zapLogger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize business-logic services.
	authService := service.NewAuthService(ctx, store, zapLogger)
	catalogService := service.NewCatalogService(store, zapLogger)
	checkoutService := service.NewCheckoutService(authService, options.PaymentDelay, zapLogger)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	patoHandler := &http.PatoHandler{Catalog: catalogService}
	planHandler := &http.PlanHandler{Checkout: checkoutService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, patoHandler, planHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting server",
		zap.String("addr", options.Addr),
		zap.String("storage", options.Storage),
		zap.Bool("tls", options.TLSEnabled()),
	)

	if options.TLSEnabled() {
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Error("server stopped", zap.Error(err))
		return
	}
	zapLogger.Info("server stopped")
}

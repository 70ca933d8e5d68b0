package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	httpapi "toolrental/internal/api/http"
	"toolrental/internal/bootstrap"
	"toolrental/internal/config"
	"toolrental/internal/jobs"
	"toolrental/internal/logger"
	"toolrental/internal/scheduler"
	"toolrental/internal/service"
	"toolrental/internal/utils"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tool Rental server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "inventory_backend", cfg.Inventory.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	inventory, err := bootstrap.OpenInventory(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "open inventory")
	}
	defer inventory.Close()

	// Initialize Services
	calendar := utils.DefaultCalendar
	checkoutSvc := service.NewCheckoutServiceWithCalendar(inventory.Tools, calendar)
	inventorySvc := service.NewInventoryService(inventory.Tools)

	router := httpapi.NewRouter(httpapi.Services{
		Checkout:  checkoutSvc,
		Inventory: inventorySvc,
		Calendar:  calendar,
	}, cfg.RateLimit)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.NewScheduler(jobs.NewJobRunner(inventory.Tools, cfg))
		if err != nil {
			return err
		}
		sched.Start()
		g.Go(func() error {
			<-gctx.Done()
			sched.Stop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

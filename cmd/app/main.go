package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hustlehq/tycoonsim/internal/bootstrap"
	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/clock"
	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/config"
	"github.com/hustlehq/tycoonsim/internal/ledger"
	"github.com/hustlehq/tycoonsim/internal/naming"
	"github.com/hustlehq/tycoonsim/internal/narrator"
	"github.com/hustlehq/tycoonsim/internal/server"
	"github.com/hustlehq/tycoonsim/internal/simulation"
	"github.com/hustlehq/tycoonsim/internal/sse"
	"github.com/hustlehq/tycoonsim/internal/staffing"
)

const (
	// Worker pool sizing for the tick scheduler
	defaultSchedulerWorkers = 4
	defaultTickQueueSize    = 64

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := bootstrap.InitializeStores(cfg)
	if err != nil {
		slog.Error("Store initialization failed", "error", err)
		os.Exit(1)
	}

	catalogCfg, err := catalog.NewLoader().Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Catalog load failed", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	catalogSvc := catalog.NewService(ctx, catalogCfg)

	bus, publisher := bootstrap.InitializeEventSystem()

	clk := clock.NewReal()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	names := naming.NewDefaultResolver()

	ledgerSvc := ledger.NewService(stores.Businesses, publisher, clk)
	staffingSvc := staffing.NewService(rnd, names)

	scheduler := simulation.NewScheduler(
		simulation.Config{
			TickInterval: cfg.TickInterval,
			Intervals: simulation.Intervals{
				Recruitment: cfg.RecruitmentInterval,
				OrderGen:    cfg.OrderGenInterval,
				AutoWork:    cfg.AutoWorkCooldown,
				Wage:        cfg.WageInterval,
				Payroll:     cfg.PayrollInterval,
			},
			Workers:   defaultSchedulerWorkers,
			QueueSize: defaultTickQueueSize,
		},
		simulation.Deps{
			Clock:      clk,
			Ledger:     ledgerSvc,
			Staffing:   staffingSvc,
			Catalog:    catalogSvc,
			Businesses: stores.Businesses,
			Orders:     stores.Orders,
			Bus:        publisher,
			Names:      names,
			Rand:       rnd,
		},
	)

	commandSvc := command.NewService(
		stores.Businesses,
		stores.Orders,
		ledgerSvc,
		staffingSvc,
		catalogSvc,
		scheduler,
		publisher,
		clk,
	)

	// Dashboard event stream
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	// Narration overlay, only when an endpoint is configured
	var narratorClient *narrator.Client
	if cfg.NarratorURL != "" {
		narratorClient = narrator.NewClient(cfg.NarratorURL, cfg.NarratorPassword)
		narratorClient.Start(ctx)
		narrator.NewSubscriber(narratorClient, bus, stores.Businesses, catalogSvc).Subscribe()
	}

	if err := scheduler.Start(ctx); err != nil {
		slog.Error("Scheduler start failed", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, stores.Pool, commandSvc, catalogSvc, hub, bus)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: scheduler,
		Hub:       hub,
		Narrator:  narratorClient,
		Publisher: publisher,
		Pool:      stores.Pool,
	})
}

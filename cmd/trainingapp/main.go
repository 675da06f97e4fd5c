package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/escbch/TrainingApp-2/internal/catalog"
	"github.com/escbch/TrainingApp-2/internal/config"
	"github.com/escbch/TrainingApp-2/internal/server"
	"github.com/escbch/TrainingApp-2/internal/storage"
	"github.com/escbch/TrainingApp-2/internal/training"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("TrainingApp starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Journal is optional. Without it the schedule lives purely in memory.
	var journal server.Journal
	var db *storage.DB
	if cfg.Database.Enabled {
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}

		db, err = storage.New(context.Background(), dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		journal = db
		log.Info("database connected")
	} else if *migrateOnly {
		log.Error("migrate-only requires database.enabled")
		os.Exit(1)
	}

	// Plan catalog and day templates: YAML file if configured, built-ins
	// otherwise.
	var plans training.PlanCatalog
	var templates training.TemplateProvider
	if cfg.Catalog.Path != "" {
		file, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			log.Error("failed to load plan catalog", "path", cfg.Catalog.Path, "error", err)
			os.Exit(1)
		}
		plans, templates = file, file
		log.Info("plan catalog loaded", "path", cfg.Catalog.Path)
	} else {
		plans, templates = catalog.Builtin(), training.BuiltinTemplates{}
	}

	planner := training.NewPlanner(plans, templates)

	if journal != nil {
		if err := server.RestoreFromJournal(context.Background(), planner, journal, log); err != nil {
			log.Warn("journal restore failed, starting empty", "error", err)
		}
	}

	srv := server.New(planner, journal, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/escbch/TrainingApp-2/internal/export"
	"github.com/escbch/TrainingApp-2/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "base URL of the TrainingApp server")
	out := flag.String("out", "trainingapp-archive.db", "path to the SQLite archive")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("TrainingApp export starting", "version", Version, "server", *serverURL, "out", *out)

	client := mcp.NewHTTPClient(*serverURL)
	days, err := client.ListTrainingDays(context.Background())
	if err != nil {
		log.Error("failed to fetch schedule", "error", err)
		os.Exit(1)
	}
	if len(days) == 0 {
		log.Info("no scheduled days, nothing to export")
		return
	}

	archive, err := export.OpenArchive(*out)
	if err != nil {
		log.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := archive.Close(); err != nil {
			log.Warn("closing archive", "error", err)
		}
	}()

	written := 0
	for _, day := range days {
		n, err := archive.WriteDay(day)
		written += n
		if err != nil {
			log.Error("failed to archive day", "date", day.Date, "error", err)
			os.Exit(1)
		}
	}

	total, err := archive.CountRows()
	if err != nil {
		log.Warn("counting archive rows", "error", err)
	}
	log.Info("export complete", "days", len(days), "sets_written", written, "archive_rows", total)
}

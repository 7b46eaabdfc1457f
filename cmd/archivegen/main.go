// Package main implements archivegen, a one-shot CLI that writes
// archived_feeds.txt for a feed without running the HTTP server. Useful for
// cron jobs that publish the file to static hosting.
//
// Usage:
//
//	archivegen -feed mdb-503 -o archived_feeds_mdb-503.txt
//
// With -o unset the document goes to stdout and logs go to stderr, so the
// command composes with shell pipelines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ankoure/gtfs-archive-txt/internal/config"
	"github.com/ankoure/gtfs-archive-txt/internal/domain"
	"github.com/ankoure/gtfs-archive-txt/internal/registry"
	"github.com/ankoure/gtfs-archive-txt/internal/service"
)

func main() {
	feed := flag.String("feed", domain.DefaultFeedID.String(), "Mobility Database feed ID (e.g. mdb-503)")
	filterNullDates := flag.Bool("filter-null-dates", false, "exclude rows missing either service date")
	out := flag.String("o", "", "output file (default: stdout)")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline for the registry fetch")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fatal("configuration error", err)
	}

	client := registry.New(registry.Config{
		BaseURL:      cfg.RegistryURL,
		RefreshToken: cfg.RefreshToken,
		PageSize:     cfg.PageSize,
	})
	svc := service.NewArchiveService(client)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	doc, err := svc.Generate(ctx, *feed, *filterNullDates)
	if err != nil {
		fatal("generate failed", err)
	}

	if *out == "" {
		fmt.Print(doc.Content)
		return
	}
	if err := os.WriteFile(*out, []byte(doc.Content), 0o644); err != nil {
		fatal("write output", err)
	}
	slog.Info("archive written", "file", *out, "rows", doc.Rows, "feed_id", doc.FeedID)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/conorfennell/vocard/internal/cli"
	"github.com/conorfennell/vocard/internal/config"
	"github.com/conorfennell/vocard/internal/history"
	"github.com/conorfennell/vocard/internal/importer"
	"github.com/conorfennell/vocard/internal/store"
	"github.com/conorfennell/vocard/internal/vocab"
	"github.com/conorfennell/vocard/internal/web"
)

func main() {
	flags := flag.NewFlagSet("vocard", flag.ExitOnError)
	configFile := flags.String("config", "", "Path to a YAML config file")
	flags.String("storage_path", "", "Path to the deck document (JSON)")
	flags.String("history_path", "", "Path to the review history database")
	flags.String("listen_addr", "", "Web UI listen address (with --serve)")
	flags.String("repos_dir", "", "Cache directory for git deck sources")
	serve := flags.Bool("serve", false, "Serve the web UI instead of the terminal menu")
	importDir := flags.String("import", "", "Import .deck files from a directory, then exit")
	addSource := flags.String("add-source", "", "Register a deck source (local path or git URL), then exit")
	runSync := flags.Bool("sync", false, "Sync all registered deck sources, then exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(flags, *configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	st, err := store.New(cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to set up deck storage: %v", err)
	}

	// The history database is best effort: without it the app still runs,
	// just without the review log and sources.
	var db *history.DB
	db, err = history.Open(cfg.HistoryPath)
	if err != nil {
		logger.Warn("review history unavailable", "path", cfg.HistoryPath, "error", err)
		db = nil
	} else {
		defer db.Close()
	}

	var opts []vocab.Option
	if db != nil {
		opts = append(opts, vocab.WithReviewLogger(db))
	}
	svc, err := vocab.New(st, logger, opts...)
	if err != nil {
		log.Fatalf("Failed to load deck collection: %v", err)
	}

	imp := importer.New(svc, db, logger)

	switch {
	case *importDir != "":
		res, err := imp.ImportDir(*importDir)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("%d decks created, %d cards added, %d duplicates skipped, %d errors\n",
			res.DecksCreated, res.CardsAdded, res.CardsSkipped, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("- %v\n", e)
		}

	case *addSource != "":
		if db == nil {
			log.Fatalf("Cannot register a source without the history database")
		}
		if err := imp.AddSource(*addSource); err != nil {
			log.Fatalf("Failed to add source: %v", err)
		}
		fmt.Printf("registered source %s\n", *addSource)

	case *runSync:
		if db == nil {
			log.Fatalf("Cannot sync sources without the history database")
		}
		res, err := imp.SyncSources(cfg.ReposDir)
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		fmt.Printf("%d decks created, %d cards added, %d duplicates skipped, %d errors\n",
			res.DecksCreated, res.CardsAdded, res.CardsSkipped, len(res.Errors))

	case *serve:
		logger.Info("serving web UI", "addr", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, web.NewServer(svc)); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	default:
		menu := cli.NewMenu(svc, imp, db, cfg.ReposDir, os.Stdin, os.Stdout)
		if err := menu.Run(); err != nil {
			log.Fatalf("Menu failed: %v", err)
		}
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/matbook/config"
	"github.com/alejandrodnm/matbook/internal/adapters/export"
	"github.com/alejandrodnm/matbook/internal/adapters/notify"
	"github.com/alejandrodnm/matbook/internal/adapters/roster"
	"github.com/alejandrodnm/matbook/internal/adapters/storage"
	"github.com/alejandrodnm/matbook/internal/session"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	rosterPath := flag.String("roster", "", "roster CSV path (overrides config)")
	eventID := flag.String("event", "", "event id to load (skips the prompt)")
	player := flag.String("player", "", "player name")
	outDir := flag.String("out", "", "export directory (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *rosterPath != "" {
		cfg.Roster.Path = *rosterPath
	}
	if *outDir != "" {
		cfg.Export.Dir = *outDir
	}
	if *player != "" {
		cfg.Player = *player
	}

	slog.Info("matbook starting",
		"config", *configPath,
		"roster", cfg.Roster.Path,
		"bankroll", cfg.Game.Bankroll,
	)

	source := roster.NewCSVSource(cfg.Roster.Path)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	presenter := notify.NewConsole()
	exporter := export.NewJSONWriter(cfg.Export.Dir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	id := *eventID
	if id == "" {
		id, err = chooseEvent(ctx, source, os.Stdin, os.Stdout)
		if err != nil {
			slog.Error("failed to choose event", "err", err)
			os.Exit(1)
		}
	}

	event, matches, err := source.LoadEvent(ctx, id)
	if err != nil {
		slog.Error("failed to load event", "err", err, "event", id)
		os.Exit(1)
	}

	// Aviso temprano: la sesión anterior ya dejó un envío archivado.
	if prev, err := store.LatestSubmission(ctx, event.ID); err != nil {
		slog.Warn("could not check previous submissions", "err", err)
	} else if prev != nil {
		slog.Warn("a submission already exists for this event",
			"player", prev.Player, "submitted_at", prev.SubmittedAt)
	}

	s := session.New(event, matches, cfg.Limits())
	if cfg.Player != "" {
		s.SetPlayer(cfg.Player)
	}

	r := newREPL(s, source, presenter, store, exporter)
	if err := r.Run(ctx, os.Stdin, os.Stdout); err != nil {
		slog.Error("session exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("matbook stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/alexjbarnes/contact-sync/internal/carddav"
	"github.com/alexjbarnes/contact-sync/internal/config"
	"github.com/alexjbarnes/contact-sync/internal/contacts"
	"github.com/alexjbarnes/contact-sync/internal/logging"
	"github.com/alexjbarnes/contact-sync/internal/state"
	"github.com/alexjbarnes/contact-sync/internal/vault"
)

var Version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "contact-sync",
		Usage:   "Sync CardDAV contacts into Markdown notes in a vault folder",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Run one update pass and exit",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rewrite-all",
						Usage: "Rewrite every contact note even when the remote version is unchanged",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runOnce(ctx, cmd.Bool("rewrite-all"))
				},
			},
			{
				Name:  "daemon",
				Usage: "Run update passes on an interval until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Pause between passes (overrides SYNC_INTERVAL)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runDaemon(ctx, cmd.Duration("interval"))
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired components shared by both commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *contacts.Engine
	runs   *state.State
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Info("contact-sync starting",
		slog.String("version", Version),
		slog.String("vault", cfg.VaultDir),
		slog.String("folder", cfg.Folder),
	)

	store, err := vault.New(cfg.VaultDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}

	runs, err := state.Load()
	if err != nil {
		return nil, fmt.Errorf("opening state: %w", err)
	}

	engine := contacts.NewEngine(
		store,
		carddav.NewClient(logger),
		vault.NewLogNotices(logger),
		logger,
	)

	return &app{cfg: cfg, logger: logger, engine: engine, runs: runs}, nil
}

func (a *app) close() {
	if err := a.runs.Close(); err != nil {
		a.logger.Warn("closing state db", slog.String("error", err.Error()))
	}
}

// pass runs one update pass, seeding the engine with the previous
// pass's memory and persisting the new memory afterwards.
func (a *app) pass(ctx context.Context, rewriteAll bool) error {
	settings := a.cfg.Settings()

	last, err := a.runs.LastRun(settings.Username, settings.ServerURL)
	if err != nil {
		return err
	}

	if last != nil {
		prev := last.Settings
		settings.PreviousUpdateSettings = &prev
		settings.PreviousUpdateData = last.UpdateData
	}

	result := a.engine.UpdateContacts(ctx, settings, contacts.Options{RewriteAll: rewriteAll})

	err = a.runs.SaveLastRun(settings.Username, settings.ServerURL, state.LastRun{
		Settings:   result.UsedSettings,
		UpdateData: result.UpdateData,
		At:         time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("saving run data: %w", err)
	}

	return nil
}

func runOnce(ctx context.Context, rewriteAll bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.pass(ctx, rewriteAll)
}

func runDaemon(ctx context.Context, interval time.Duration) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if interval <= 0 {
		interval = a.cfg.SyncInterval
	}

	a.logger.Info("daemon started", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := a.pass(ctx, false); err != nil {
			a.logger.Error("pass failed", slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			a.logger.Info("daemon stopping")
			return nil
		case <-ticker.C:
		}
	}
}

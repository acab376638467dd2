package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mandalnilabja/bioalign/internal/app"
	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler"
	"github.com/mandalnilabja/bioalign/internal/transport/http/handler/site"
	"github.com/mandalnilabja/bioalign/internal/transport/http/middleware/ratelimit"
	"github.com/mandalnilabja/bioalign/internal/version"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	var o config.Overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.ConfigPath = *configPath
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&o.ServerPort, "port", "", `address to listen on, e.g. ":8080"`)
	cmd.Flags().StringVar(&o.BaseURL, "base-url", "", "root URL of the alignment app")
	cmd.Flags().BoolVar(&o.DisableAdmin, "no-admin", false, "disable the admin API and access log")
	return cmd
}

// runServe starts the server and blocks until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	logger, err := setupLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "bioalign@" + version.Version,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		logger.Info("sentry error reporting enabled", "environment", cfg.Environment)
	}

	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("could not create default config file", "path", config.ConfigPath(), "error", err)
	}

	page, err := cfg.Page()
	if err != nil {
		return err
	}

	var store storage.Storage
	if cfg.EnableAdmin {
		store, err = openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := ensureAdminPassword(store, in, out, storage.DefaultArgon2Params()); err != nil {
			return err
		}
	}

	cache, err := site.NewCache()
	if err != nil {
		return fmt.Errorf("failed to create render cache: %w", err)
	}
	defer cache.Close()

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateBurst)
	if limiter.Enabled() {
		go limiter.Run(ctx, time.Minute, 10*time.Minute)
	}

	repo := handler.NewRepo(page, cache, store, logger)
	router := app.NewRouter(repo, &app.RouterOptions{
		EnableAdmin: cfg.EnableAdmin,
		Logger:      logger,
		Storage:     store,
		Limiter:     limiter,
	})

	printStartupBanner(out, cfg, page)

	return app.NewServer(cfg, router, logger).Start(ctx)
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", cfg.DBPath, err)
	}
	return store, nil
}

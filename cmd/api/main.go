package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ezzleads/internal/cache"
	"ezzleads/internal/config"
	"ezzleads/internal/database"
	"ezzleads/internal/handlers"
	"ezzleads/internal/repository/postgres"
	"ezzleads/internal/router"
	"ezzleads/internal/service"
	"ezzleads/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ezzleads",
		Short:         "EzzLeads real estate lead marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")

			// config + logger
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			l := logger.New(cfg.Env)

			// db
			ctx := cmd.Context()
			pool, err := database.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db connect failed: %w", err)
			}
			defer pool.Close()
			if migrate {
				if err := database.Migrate(ctx, pool, database.Migrations(), l); err != nil {
					return err
				}
			}

			// cache
			store, closeStore, err := openCache(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer closeStore()

			// http
			r := router.New(l, cfg, router.Deps{
				Repos:  postgres.NewRepos(pool),
				Cache:  store,
				Mailer: service.NewLogMailer(l),
				Health: map[string]handlers.Pinger{"postgres": pool, "cache": store},
			})

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           r,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      15 * time.Second,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				l.Info().Str("addr", srv.Addr).Msg("api listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			// graceful shutdown
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-stop:
			case err := <-errc:
				return fmt.Errorf("server error: %w", err)
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			l.Info().Msg("shutdown complete")
			return nil
		},
	}
	cmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			l := logger.New(cfg.Env)

			if dryRun {
				files, err := database.PendingFiles(database.Migrations())
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			pool, err := database.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("db connect failed: %w", err)
			}
			defer pool.Close()
			return database.Migrate(cmd.Context(), pool, database.Migrations(), l)
		},
	}
	cmd.Flags().Bool("dry-run", false, "List migration files without applying them")
	return cmd
}

// openCache connects to Redis, or falls back to process memory when
// REDIS_ADDR is unset or empty.
func openCache(ctx context.Context, cfg config.Config, l zerolog.Logger) (cache.Store, func(), error) {
	if cfg.RedisAddr == "" {
		l.Warn().Msg("REDIS_ADDR unset; using in-process cache")
		return cache.NewMemory(), func() {}, nil
	}
	rdb := cache.New(cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}, l)
	if err := rdb.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return rdb, func() { _ = rdb.Close() }, nil
}

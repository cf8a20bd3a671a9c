package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"localeats/cmd"
	"localeats/internal/adapters/out/changefeed"
	"localeats/internal/adapters/out/postgres"
	"localeats/internal/core/ports"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(envFile *string) *cobra.Command {
	var port string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the live order feed and the refresh jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			if port != "" {
				configs.HTTPPort = port
			}
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, configs)
		},
	}
	serve.Flags().StringVar(&port, "port", "", "HTTP port, overrides HTTP_PORT")
	return serve
}

func serve(ctx context.Context, configs cmd.Config) error {
	logger := newLogger(configs.LogLevel)

	db, err := postgres.Open(configs.DBConfig())
	if err != nil {
		return err
	}
	defer closeDB(db, logger)
	if configs.DBDriver == postgres.DriverSQLite {
		// Local runs keep the schema current without a separate step.
		if err = migrate(db); err != nil {
			return err
		}
	}

	bus, err := newBus(ctx, configs, logger)
	if err != nil {
		return err
	}
	app, err := cmd.NewCompositionRoot(configs, db, bus, logger)
	if err != nil {
		_ = bus.Close()
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close change bus", "error", err)
		}
	}()

	go func() {
		if err := app.Hub().Run(ctx, bus); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "order feed stopped", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		return err
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newBus(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.OrderChangeBus, error) {
	if configs.RedisAddr == "" {
		logger.InfoContext(ctx, "using in-process change bus")
		return changefeed.NewMemoryBus(), nil
	}
	client, err := changefeed.ConnectRedis(ctx, configs.RedisAddr)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "using redis change bus", "addr", configs.RedisAddr, "channel", configs.RedisChannel)
	return changefeed.NewRedisBus(client, configs.RedisChannel, logger), nil
}

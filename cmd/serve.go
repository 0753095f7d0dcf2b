package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transfa/library-service/internal/app"
	"github.com/transfa/library-service/internal/config"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().String("port", "", "port to listen on (overrides SERVER_PORT/PORT)")
	_ = viper.BindPFlag("SERVER_PORT", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	logger := newLogger(cfg)

	if ctx == nil {
		ctx = context.Background()
	}

	c, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if c.producer != nil {
		defer c.producer.Close()
	}

	scheduler := app.NewScheduler(app.NewJobs(c.repo, logger), logger, cfg.ReportSchedule)
	if err := scheduler.Start(); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           c.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Library API running", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		<-scheduler.Stop().Done()
		return fmt.Errorf("could not start server: %w", err)
	case <-quit:
	}
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	<-scheduler.Stop().Done()

	logger.Info("server stopped")
	return nil
}

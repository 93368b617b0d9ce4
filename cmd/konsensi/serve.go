package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/api"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/config"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if flagDebug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		normsFile := cfg.NormsFile
		if flagNorms != "" {
			normsFile = flagNorms
		}
		history := domain.DefaultNormHistory()
		if normsFile != "" {
			if history, err = config.LoadNorms(normsFile); err != nil {
				return err
			}
		}

		e := api.New(cfg, history, logger)
		httpServer := api.NewHTTPServer(cfg, e)

		go func() {
			logger.Info("listening", slog.String("addr", cfg.Addr()), slog.Int("norm_tables", len(history)))
			if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", slog.String("error", err.Error()))
			}
		}()

		shutdownSignal := make(chan os.Signal, 1)
		signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
		<-shutdownSignal

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	},
}

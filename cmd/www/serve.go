package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeyaddeeb/zeyaddeeb/internal/app"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("starting application", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

		application, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- application.HTTPServer.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-stop:
			log.Info("stopping application", slog.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				log.Error("http server failed", sl.Err(err))
			}
		}

		if err := application.Stop(); err != nil {
			log.Error("shutdown finished with errors", sl.Err(err))
			return err
		}

		log.Info("application stopped")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

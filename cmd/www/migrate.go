package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zeyaddeeb/zeyaddeeb/internal/config"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/postgresql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		const op = "cmd.migrate"

		if cfg.Storage.Driver != config.StorageDriverPostgres {
			return errors.New("migrate needs the postgres storage driver")
		}

		ctx := cmd.Context()

		pg, err := postgresql.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer pg.Stop()

		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		version, err := postgresql.Version(ctx, pg.Pool())
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		log.Info("database is up to date", slog.Int("version", version))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

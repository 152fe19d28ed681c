package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/gig-conflicts/internal/infra/storage/schema"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the conflict_records schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logs.Level)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := schema.Apply(cmd.Context(), db, dialect(cfg.Database))
			if err != nil {
				return err
			}
			if applied {
				log.Info("migrate: schema version %d applied (driver=%s)", schema.Version, cfg.Database.Driver)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d is current\n", schema.Version)
			return nil
		},
	}
}

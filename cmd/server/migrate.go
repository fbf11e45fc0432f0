package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inkwell/internal/db"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply versioned SQL migrations (postgres)",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return withMigrator(*configPath, func(m *db.Migrator) error {
					return m.Up()
				})
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back the last n migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}
				return withMigrator(*configPath, func(m *db.Migrator) error {
					return m.Down(steps)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(*configPath, func(m *db.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					cmd.Printf("version %d (dirty: %t)\n", v, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(configPath string, fn func(*db.Migrator) error) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return errors.New("migrate requires DB_DRIVER=postgres; sqlite uses auto migration")
	}

	m, err := db.NewMigrator(cfg.Migrations.Path, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories and the demo author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			conn, err := db.Open(cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if cfg.Database.AutoMigrate {
				if err := db.AutoMigrate(conn); err != nil {
					return err
				}
			}
			return db.Seed(cmd.Context(), conn, log)
		},
	}
}

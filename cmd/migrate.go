package cmd

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-bridal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(_ *cobra.Command, _ []string) {
		withMigrator(func(m *migrate.Migrate) {
			changed, err := migrations.Up(m)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to apply migrations")
			}
			if !changed {
				logrus.Info("Schema is already up to date")
				return
			}
			logrus.Info("Migrations applied")
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Run: func(_ *cobra.Command, _ []string) {
		withMigrator(func(m *migrate.Migrate) {
			if err := m.Steps(-1); err != nil {
				logrus.WithError(err).Fatal("Failed to roll back migration")
			}
			logrus.Info("Last migration rolled back")
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Run: func(_ *cobra.Command, _ []string) {
		withMigrator(func(m *migrate.Migrate) {
			version, dirty, ok, err := migrations.Version(m)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to read schema version")
			}
			if !ok {
				fmt.Println("no migrations applied")
				return
			}
			if dirty {
				fmt.Printf("%d (dirty)\n", version)
				return
			}
			fmt.Println(version)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

func withMigrator(fn func(m *migrate.Migrate)) {
	cfg := mustLoadConfig()

	m, err := migrations.New(cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize migrations")
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logrus.WithField("source_error", sourceErr).WithField("db_error", dbErr).Warn("Failed to close migrator")
		}
	}()

	fn(m)
}

package main

import (
	"context"
	"fmt"
	"time"

	"hire-rank/internal/config"
	"hire-rank/internal/database/migration"
	dbpostgres "hire-rank/internal/database/postgres"
	"hire-rank/internal/database/seeder"
	"hire-rank/internal/dataset"
	"hire-rank/migrations"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert a YAML dataset's jobs and candidates into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ds, err := dataset.Load(viper.GetString("seed_data"))
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		dbcfg := config.DatabaseConfig{
			DBHost:         viper.GetString("db_host"),
			DBPort:         viper.GetString("db_port"),
			DBName:         viper.GetString("db_name"),
			DBUser:         viper.GetString("db_user"),
			DBPassword:     viper.GetString("db_password"),
			DBSSLMode:      viper.GetString("db_ssl_mode"),
			ConnectTimeout: 5 * time.Second,
		}
		db, err := dbpostgres.Connect(ctx, dbcfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if viper.GetBool("migrate") {
			r := migration.Runner{FS: migrations.FS, Logger: logger.Named("migration")}
			if err := r.Run(ctx, db.SQLDB()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}

		if err := (seeder.Runner{Seeders: seeder.ForDataset(ds), Logger: logger}).Run(ctx, db); err != nil {
			return err
		}
		logger.Info("dataset seeded", zap.Int("jobs", len(ds.Jobs)), zap.Int("candidates", len(ds.Candidates)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	fs := seedCmd.Flags()
	fs.StringP("data", "f", "", "YAML dataset with jobs and candidates")
	fs.Bool("migrate", true, "apply embedded migrations before seeding")
	fs.String("db-host", "", "Postgres host (env DB_HOST)")
	fs.String("db-port", "5432", "Postgres port (env DB_PORT)")
	fs.String("db-name", "", "database name (env DB_NAME)")
	fs.String("db-user", "", "database user (env DB_USER)")
	fs.String("db-ssl-mode", "disable", "sslmode (env DB_SSL_MODE)")

	_ = viper.BindPFlag("seed_data", fs.Lookup("data"))
	_ = viper.BindPFlag("migrate", fs.Lookup("migrate"))
	for _, key := range []string{"db_host", "db_port", "db_name", "db_user", "db_ssl_mode"} {
		_ = viper.BindPFlag(key, fs.Lookup(flagName(key)))
		_ = viper.BindEnv(key, envName(key))
	}
	_ = viper.BindEnv("db_password", "DB_PASSWORD")
	_ = seedCmd.MarkFlagRequired("data")
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"career-sync/internal/config"
	"career-sync/internal/database/migration"
	dbpostgres "career-sync/internal/database/postgres"
	"career-sync/internal/database/seeder"
	"career-sync/internal/logger"
	"career-sync/internal/repository"
)

func main() {
	dir := flag.String("dir", "data", "directory holding the CSV tables to import")
	migrationsDir := flag.String("migrations", "", "migrations directory (defaults to MIGRATIONS_DIR or ./migrations)")
	skipSeed := flag.Bool("migrate-only", false, "apply migrations without importing data")
	flag.Parse()

	boot := logger.Startup(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log, closer, err := logger.New(cfg.Log, cfg.App.AppName)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to init logger")
	}
	defer closer.Close()
	log = logger.Component(log, "seeder")

	if !cfg.Database.Enabled() {
		log.Fatal().Msg("DB_HOST and DB_NAME are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	migDir := *migrationsDir
	if migDir == "" {
		migDir = cfg.Model.MigrationsDir
	}
	if migDir == "" {
		migDir = "migrations"
	}
	applied, err := migration.Runner{Dir: migDir, Logger: log}.Run(ctx, db.SQLDB())
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Int("applied", applied).Str("dir", migDir).Msg("migrations up to date")

	if *skipSeed {
		return
	}

	names := repository.TableNames{
		Skills:  cfg.Data.SkillsTable,
		Careers: cfg.Data.CareersTable,
		Trends:  cfg.Data.TrendsTable,
	}
	r := seeder.Runner{
		Seeders: []seeder.Seeder{seeder.CorpusSeeder{Source: repository.NewCSVTableSource(*dir, names)}},
		Logger:  log,
	}
	if err := r.Run(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

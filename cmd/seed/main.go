// Command seed loads the country directory and sample alerts into the
// configured store. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"regwise/internal/alert"
	"regwise/internal/country"
	"regwise/internal/platform/config"
	"regwise/internal/platform/logger"
	"regwise/internal/platform/postgres"
	"regwise/internal/seed"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "data/countries.json", "path to the countries JSON document")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New()

	if cfg.PostgresURL == "" {
		log.Error("DATABASE_URL is required, in-memory stores cannot be seeded from a separate process")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error("postgres migrate failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Error("open countries file failed", "error", err, "file", *file)
		os.Exit(1)
	}
	defer f.Close()

	data, err := seed.ParseCountries(f)
	if err != nil {
		log.Error("parse countries file failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Apply(ctx, country.NewPostgresStore(pool), alert.NewPostgresStore(pool), data, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeding complete", "file", *file)
}

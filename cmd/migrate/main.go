package main

import (
	"context"
	"flag"
	"log"

	"studion/internal/config"
	"studion/internal/database"
	"studion/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -down")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN(), database.DefaultPoolConfig, l)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrations, err := database.LoadMigrations()
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	migrator := database.NewMigrator(db, migrations, l)

	if *down {
		n, err := migrator.Down(ctx, *steps)
		if err != nil {
			l.Fatal("Failed to roll back migrations", zap.Error(err))
		}
		l.Info("Rolled back migrations", zap.Int("count", n))
		return
	}

	n, err := migrator.Up(ctx)
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Applied migrations", zap.Int("count", n))
}

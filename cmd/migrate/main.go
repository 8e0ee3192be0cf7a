package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/noah-isme/escola-aulas-api/migrations"
	"github.com/noah-isme/escola-aulas-api/pkg/config"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
	"github.com/noah-isme/escola-aulas-api/pkg/logger"
)

func main() {
	direction := flag.String("direction", database.MigrateUp, "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db.DB, migrations.Files, *direction); err != nil {
		logr.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	logr.Info("migration complete", zap.String("direction", *direction))
}

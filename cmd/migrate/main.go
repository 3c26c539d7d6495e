package main

import (
	"flag"
	"log"

	"github.com/Swayamo/quizverse/internal/config"
	"github.com/Swayamo/quizverse/internal/database"
	"github.com/Swayamo/quizverse/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	migrationsPath := flag.String("path", "migrations", "directory containing migration files")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger.Level, cfg.Logger.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), *migrationsPath); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations applied", zap.String("path", *migrationsPath))
}

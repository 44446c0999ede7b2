package main

import (
	"context"
	"log"
	"os"

	"neocalc/internal/adapters/discord"
	"neocalc/internal/config"
	_ "neocalc/internal/engine/functions"
	"neocalc/internal/infrastructure/database"
	"neocalc/internal/infrastructure/i18n"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to initialize the database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	sessionRepo := database.NewSessionRepository(pool)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	bot := discord.NewBot(cfg, sessionRepo, translator)
	if err := bot.Start(); err != nil {
		log.Printf("❌ Failed to start the bot: %v", err)
		os.Exit(1)
	}
}

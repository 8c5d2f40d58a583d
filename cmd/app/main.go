package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wingsync/internal/application"
	"wingsync/internal/delivery/discord"
	"wingsync/internal/delivery/webhook"
	"wingsync/internal/minecraft"
	"wingsync/internal/repository"
	"wingsync/pkg/config"
	"wingsync/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	if cfg.DiscordToken == "" {
		log.Error("DISCORD_TOKEN is not set")
		return
	}

	repo, err := repository.New(&cfg.Repo, migrationFS, log)
	if err != nil {
		log.Error("failed to init storage", "error", err.Error())
		return
	}
	defer repo.Close()

	console, err := minecraft.NewRconConsole(cfg.RconAddress, cfg.RconPassword)
	if err != nil {
		log.Error("failed to connect to server console", "error", err.Error())
		return
	}

	gateway := minecraft.NewGateway(console)
	gateway.Start()

	services := application.NewService(repo, gateway, minecraft.NewMojangResolver(), cfg.AdminUserID, log)

	bot, err := discord.NewBot(&cfg, services, log.With("component", "discord"))
	if err != nil {
		log.Error("failed to init bot", "error", err.Error())
		return
	}
	if err := bot.Init(); err != nil {
		log.Error("failed to init bot handlers", "error", err.Error())
		return
	}

	hooks := webhook.NewServer(cfg.WebhookAddr, cfg.WebhookToken, services.Whitelist, log.With("component", "webhook"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := bot.Run(ctx); err != nil {
			log.Error("bot run error", "error", err.Error())
		}
	}()

	go func() {
		if err := hooks.Start(); err != nil {
			log.Error("webhook server error", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := hooks.Stop(shutdownCtx); err != nil {
		log.Warn("webhook shutdown error", "error", err.Error())
	}
	bot.Stop()
	if err := gateway.Stop(); err != nil {
		log.Warn("failed to close server console", "error", err.Error())
	}
	log.Info("Bot Stopped")
}

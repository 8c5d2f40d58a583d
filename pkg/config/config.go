package config

import (
	"wingsync/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo         repository.Config `envPrefix:"REPO_"`
	DiscordToken string            `env:"DISCORD_TOKEN" envDefault:""`
	AdminUserID  string            `env:"DISCORD_ADMIN_ID" envDefault:""`
	LogLevel     string            `env:"LOGGER_LEVEL" envDefault:"info"`

	RconAddress  string `env:"RCON_ADDRESS" envDefault:"127.0.0.1:25575"`
	RconPassword string `env:"RCON_PASSWORD" envDefault:""`

	WebhookAddr  string `env:"WEBHOOK_ADDR" envDefault:":8180"`
	WebhookToken string `env:"WEBHOOK_TOKEN" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}

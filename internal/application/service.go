package application

import (
	"context"

	"wingsync/internal/models"
)

type Logger interface {
	Error(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// Gateway is the single authorized path to the server whitelist. All three
// calls block until the gateway's own execution context ran the command.
type Gateway interface {
	Add(ctx context.Context, username string) error
	Remove(ctx context.Context, username string) error
	List(ctx context.Context) ([]string, error)
}

// Resolver maps a Minecraft username to the stable account UUID.
type Resolver interface {
	ResolveUUID(ctx context.Context, username string) (string, error)
}

// LinkStore is the persistence contract, identical for both backends.
type LinkStore interface {
	Upsert(link models.Link) error
	RemoveByUUID(uuid string) error
	RemoveByName(username string) error
	FindByDiscordID(discordID string) ([]string, error)
	FindDiscordNameByUsername(username string) (string, error)
	FindDiscordIDByUUID(uuid string) (string, error)
	All() ([]models.Link, error)
	Backend() string
	BackendDetails() string
}

type WhitelistService interface {
	Whois(ctx context.Context, discordID string) ([]string, error)
	Whomc(ctx context.Context, username string) (string, error)
	Link(ctx context.Context, username, discordID, discordName string) error
	Unlink(ctx context.Context, username, requesterID string) error
	Revoke(ctx context.Context, username string) error
	ListWhitelist(ctx context.Context) ([]string, error)
	StorageStatus() (backend, details string)
	ExportReport(ctx context.Context) ([]byte, error)
}

type Service struct {
	Whitelist WhitelistService
}

func NewService(store LinkStore, gateway Gateway, resolver Resolver, adminID string, logger Logger) *Service {
	return &Service{
		Whitelist: NewWhitelistServiceImpl(store, gateway, resolver, adminID, logger),
	}
}

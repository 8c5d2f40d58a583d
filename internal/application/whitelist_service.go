package application

import (
	"context"
	"errors"
	"fmt"

	"wingsync/internal/models"
	"wingsync/internal/repository"
)

// ErrPermissionDenied is returned when an unlink requester is neither the
// owner of the link nor the configured admin.
var ErrPermissionDenied = errors.New("no permission to unwhitelist this player")

type WhitelistServiceImpl struct {
	store    LinkStore
	gateway  Gateway
	resolver Resolver
	adminID  string
	logger   Logger
}

func NewWhitelistServiceImpl(store LinkStore, gateway Gateway, resolver Resolver, adminID string, logger Logger) *WhitelistServiceImpl {
	return &WhitelistServiceImpl{
		store:    store,
		gateway:  gateway,
		resolver: resolver,
		adminID:  adminID,
		logger:   logger,
	}
}

func (s *WhitelistServiceImpl) Whois(ctx context.Context, discordID string) ([]string, error) {
	return s.store.FindByDiscordID(discordID)
}

func (s *WhitelistServiceImpl) Whomc(ctx context.Context, username string) (string, error) {
	return s.store.FindDiscordNameByUsername(username)
}

// Link whitelists the player and records the link. The whitelist mutation and
// the store upsert are two separate steps: once the player is on the list, a
// store failure is logged and swallowed, because the access list is the
// source of truth for server entry and the link table is repaired by simply
// re-running the command.
func (s *WhitelistServiceImpl) Link(ctx context.Context, username, discordID, discordName string) error {
	uuid, err := s.resolver.ResolveUUID(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", username, err)
	}

	if err := s.gateway.Add(ctx, username); err != nil {
		return fmt.Errorf("failed to whitelist %s: %w", username, err)
	}

	link := models.Link{
		UUID:        uuid,
		Username:    username,
		DiscordID:   discordID,
		DiscordName: discordName,
	}
	if err := s.store.Upsert(link); err != nil {
		s.logger.Error("failed to persist link", "username", username, "error", err.Error())
	}
	return nil
}

func (s *WhitelistServiceImpl) Unlink(ctx context.Context, username, requesterID string) error {
	uuid, err := s.resolver.ResolveUUID(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", username, err)
	}

	ownerID, err := s.store.FindDiscordIDByUUID(uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Nothing links this player, so nobody owns the claim either.
			return ErrPermissionDenied
		}
		return err
	}

	if !canUnlink(requesterID, ownerID, s.adminID) {
		return ErrPermissionDenied
	}

	if err := s.gateway.Remove(ctx, username); err != nil {
		return fmt.Errorf("failed to unwhitelist %s: %w", username, err)
	}

	if err := s.store.RemoveByUUID(uuid); err != nil {
		s.logger.Error("failed to remove link", "username", username, "error", err.Error())
	}
	return nil
}

// Revoke handles an external ban: the player leaves the whitelist no matter
// what, and the link-table cleanup is best effort. A ban for a name with no
// link still succeeds.
func (s *WhitelistServiceImpl) Revoke(ctx context.Context, username string) error {
	if err := s.gateway.Remove(ctx, username); err != nil {
		return fmt.Errorf("failed to unwhitelist banned player %s: %w", username, err)
	}

	if err := s.store.RemoveByName(username); err != nil {
		s.logger.Error("failed to remove link for banned player", "username", username, "error", err.Error())
	}
	return nil
}

func (s *WhitelistServiceImpl) ListWhitelist(ctx context.Context) ([]string, error) {
	return s.gateway.List(ctx)
}

func (s *WhitelistServiceImpl) StorageStatus() (string, string) {
	return s.store.Backend(), s.store.BackendDetails()
}

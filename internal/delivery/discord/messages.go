package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wingsync/internal/application"
	"wingsync/internal/repository"

	"github.com/bwmarrin/discordgo"
)

// dispatchMessage matches the first token of a message exactly against the
// legacy prefix commands. Wrong argument count gets a usage hint; everything
// else is unrelated chat and stays unanswered.
func (b *Bot) dispatchMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	fields := strings.Fields(m.Content)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "!whois":
		b.messageWhois(s, m, fields)
	case "!whomc":
		b.messageWhomc(s, m, fields)
	case "!whitelist":
		b.messageWhitelist(s, m, fields)
	case "!unwhitelist":
		b.messageUnwhitelist(s, m, fields)
	case "!listwhitelist":
		b.messageListWhitelist(s, m)
	}
}

func (b *Bot) messageWhois(s *discordgo.Session, m *discordgo.MessageCreate, fields []string) {
	if len(fields) != 2 {
		b.sendMessage(s, m.ChannelID, "Usage: !whois @DiscordUser")
		return
	}

	discordID := digitsOnly(fields[1])

	usernames, err := b.services.Whitelist.Whois(context.Background(), discordID)
	if err != nil {
		b.logger.Error("whois failed", "discord_id", discordID, "error", err.Error())
		b.sendMessage(s, m.ChannelID, msgFetchFailed)
		return
	}

	reply := fmt.Sprintf("Minecraft accounts linked to <@%s>: ", discordID)
	if len(usernames) > 0 {
		reply += strings.Join(usernames, ", ")
	} else {
		reply += "None"
	}
	b.sendMessage(s, m.ChannelID, reply)
}

func (b *Bot) messageWhomc(s *discordgo.Session, m *discordgo.MessageCreate, fields []string) {
	if len(fields) != 2 {
		b.sendMessage(s, m.ChannelID, "Usage: !whomc <MinecraftUsername>")
		return
	}

	username := fields[1]

	discordName, err := b.services.Whitelist.Whomc(context.Background(), username)
	if errors.Is(err, repository.ErrNotFound) {
		b.sendMessage(s, m.ChannelID, fmt.Sprintf("No Discord user is linked to Minecraft username %s", username))
		return
	}
	if err != nil {
		b.logger.Error("whomc failed", "username", username, "error", err.Error())
		b.sendMessage(s, m.ChannelID, msgFetchFailed)
		return
	}

	b.sendMessage(s, m.ChannelID, fmt.Sprintf("%s is linked to Minecraft username %s", discordName, username))
}

func (b *Bot) messageWhitelist(s *discordgo.Session, m *discordgo.MessageCreate, fields []string) {
	if len(fields) != 2 {
		b.sendMessage(s, m.ChannelID, "Usage: !whitelist <playerName>")
		return
	}

	playerName := fields[1]

	err := b.services.Whitelist.Link(context.Background(), playerName, m.Author.ID, m.Author.Username)
	if err != nil {
		b.logger.Error("whitelist failed", "player", playerName, "error", err.Error())
		b.sendMessage(s, m.ChannelID, "Failed to add player to whitelist.")
		return
	}

	b.sendMessage(s, m.ChannelID, fmt.Sprintf("Player %s has been added to the whitelist!", playerName))
}

func (b *Bot) messageUnwhitelist(s *discordgo.Session, m *discordgo.MessageCreate, fields []string) {
	if len(fields) != 2 {
		b.sendMessage(s, m.ChannelID, "Usage: !unwhitelist <playerName>")
		return
	}

	playerName := fields[1]

	err := b.services.Whitelist.Unlink(context.Background(), playerName, m.Author.ID)
	if errors.Is(err, application.ErrPermissionDenied) {
		b.sendMessage(s, m.ChannelID, "You do not have permission to unwhitelist this player.")
		return
	}
	if err != nil {
		b.logger.Error("unwhitelist failed", "player", playerName, "error", err.Error())
		b.sendMessage(s, m.ChannelID, "Failed to remove player from whitelist.")
		return
	}

	b.sendMessage(s, m.ChannelID, fmt.Sprintf("Player %s has been removed from the whitelist.", playerName))
}

func (b *Bot) messageListWhitelist(s *discordgo.Session, m *discordgo.MessageCreate) {
	names, err := b.services.Whitelist.ListWhitelist(context.Background())
	if err != nil {
		b.logger.Error("listwhitelist failed", "error", err.Error())
		b.sendMessage(s, m.ChannelID, msgFetchFailed)
		return
	}

	b.sendMessage(s, m.ChannelID, formatWhitelist(names))
}

package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"wingsync/internal/application"
	"wingsync/internal/repository"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleWhois(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	discordID := i.ApplicationCommandData().Options[0].UserValue(nil).ID

	usernames, err := b.services.Whitelist.Whois(context.Background(), discordID)
	if err != nil {
		b.logger.Error("whois failed", "discord_id", discordID, "error", err.Error())
		b.followUp(s, i, msgFetchFailed)
		return
	}

	reply := fmt.Sprintf("Minecraft accounts linked to <@%s>: ", discordID)
	if len(usernames) > 0 {
		reply += strings.Join(usernames, ", ")
	} else {
		reply += "None"
	}
	b.followUp(s, i, reply)
}

func (b *Bot) handleWhomc(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	username := i.ApplicationCommandData().Options[0].StringValue()

	discordName, err := b.services.Whitelist.Whomc(context.Background(), username)
	if errors.Is(err, repository.ErrNotFound) {
		b.followUp(s, i, fmt.Sprintf("❌ No Discord user is linked to Minecraft username **%s**", username))
		return
	}
	if err != nil {
		b.logger.Error("whomc failed", "username", username, "error", err.Error())
		b.followUp(s, i, msgFetchFailed)
		return
	}

	b.followUp(s, i, fmt.Sprintf("**%s** is linked to Minecraft username **%s**", discordName, username))
}

func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	playerName := i.ApplicationCommandData().Options[0].StringValue()
	user := interactionUser(i)

	err := b.services.Whitelist.Link(context.Background(), playerName, user.ID, user.Username)
	if err != nil {
		b.logger.Error("register failed", "player", playerName, "error", err.Error())
		b.followUp(s, i, "❌ Failed to add player to whitelist.")
		return
	}

	b.followUp(s, i, fmt.Sprintf("✅ Player **%s** has been added to the whitelist!", playerName))
}

func (b *Bot) handleRemove(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	playerName := i.ApplicationCommandData().Options[0].StringValue()
	user := interactionUser(i)

	err := b.services.Whitelist.Unlink(context.Background(), playerName, user.ID)
	if errors.Is(err, application.ErrPermissionDenied) {
		b.followUp(s, i, "❌ You do not have permission to unwhitelist this player.")
		return
	}
	if err != nil {
		b.logger.Error("remove failed", "player", playerName, "error", err.Error())
		b.followUp(s, i, "❌ Failed to remove player from whitelist.")
		return
	}

	b.followUp(s, i, fmt.Sprintf("✅ Player **%s** has been removed from the whitelist.", playerName))
}

func (b *Bot) handleListWhitelist(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	names, err := b.services.Whitelist.ListWhitelist(context.Background())
	if err != nil {
		b.logger.Error("listwhitelist failed", "error", err.Error())
		b.followUp(s, i, msgFetchFailed)
		return
	}

	b.followUp(s, i, formatWhitelist(names))
}

func (b *Bot) handleStorage(s *discordgo.Session, i *discordgo.Interaction) {
	backend, details := b.services.Whitelist.StorageStatus()

	b.respondMessage(s, i, fmt.Sprintf("**Storage Information**\nType: %s\nDetails: %s", backend, details), false)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferReply(s, i)

	data, err := b.services.Whitelist.ExportReport(context.Background())
	if err != nil {
		b.logger.Error("export failed", "error", err.Error())
		b.followUp(s, i, "❌ Failed to export the whitelist.")
		return
	}

	content := "Your whitelist report is ready!"
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{Name: "whitelist.xlsx", Reader: bytes.NewReader(data)},
		},
	})
}

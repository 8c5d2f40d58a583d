package discord

import (
	"context"

	"wingsync/internal/application"
	"wingsync/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminID string
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	return &Bot{
		session:  s,
		services: services,
		logger:   logger,
		adminID:  cfg.AdminUserID,
	}, nil
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	b.session.AddHandler(b.onMessage)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord Bot Started. Registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands)
	if err != nil {
		b.logger.Error("Failed to register commands", "error", err.Error())
	} else {
		b.logger.Info("Slash commands registered successfully")
	}

	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "whois":
		b.handleWhois(s, i.Interaction)
	case "whomc":
		b.handleWhomc(s, i.Interaction)
	case "register":
		b.handleRegister(s, i.Interaction)
	case "remove":
		b.handleRemove(s, i.Interaction)
	case "listwhitelist":
		b.handleListWhitelist(s, i.Interaction)
	case "storage":
		b.handleStorage(s, i.Interaction)
	case "export":
		b.ensureAdmin(s, i.Interaction, b.handleExport)
	}
}

// onMessage carries the legacy prefix commands. The channel is general chat,
// so anything that is not one of ours is ignored without a reply.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	b.dispatchMessage(s, m)
}

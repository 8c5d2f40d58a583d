package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// digitsOnly strips mention decoration (<@...>, <@!...>) down to the raw id.
func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func formatWhitelist(names []string) string {
	if len(names) == 0 {
		return "No players are currently whitelisted."
	}

	var sb strings.Builder
	sb.WriteString("**Whitelisted Players:**\n```\n")
	for _, name := range names {
		sb.WriteString("• ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	sb.WriteString("```")

	msg := sb.String()
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageTruncation] + "...\n(list truncated)```"
	}
	return msg
}

func (b *Bot) isAdmin(userID string) bool {
	return b.adminID != "" && userID == b.adminID
}

func (b *Bot) ensureAdmin(s *discordgo.Session, i *discordgo.Interaction, handler func(*discordgo.Session, *discordgo.Interaction)) {
	if !b.isAdmin(interactionUser(i).ID) {
		b.respondMessage(s, i, "You do not have permission to use this command.", true)
		return
	}
	handler(s, i)
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (b *Bot) sendMessage(s *discordgo.Session, channelID, msg string) {
	_, err := s.ChannelMessageSend(channelID, msg)
	if err != nil {
		b.logger.Error("failed to send message", "error", fmt.Sprintf("%v", err))
	}
}

func (b *Bot) followUp(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	_, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &msg,
	})
	if err != nil {
		b.logger.Error("failed to send reply", "error", fmt.Sprintf("%v", err))
	}
}

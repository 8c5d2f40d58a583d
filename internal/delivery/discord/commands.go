package discord

import "github.com/bwmarrin/discordgo"

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "register",
		Description: "Add a player to the Minecraft server whitelist",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "player", Description: "The Minecraft username to add to whitelist", Required: true},
		},
	},
	{
		Name:        "remove",
		Description: "Remove a player from the Minecraft server whitelist",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "player", Description: "The Minecraft username to remove from whitelist", Required: true},
		},
	},
	{
		Name:        "listwhitelist",
		Description: "Display all players currently on the whitelist",
	},
	{
		Name:        "whois",
		Description: "Find which Minecraft accounts are linked to a Discord user",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "The Discord user to check", Required: true},
		},
	},
	{
		Name:        "whomc",
		Description: "Find which Discord user is linked to a Minecraft username",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "username", Description: "The Minecraft username to check", Required: true},
		},
	},
	{
		Name:        "storage",
		Description: "Check the current storage method being used",
	},
	{
		Name:        "export",
		Description: "Export the whitelist link table to Excel (admins only)",
	},
}

package models

import "time"

// Link ties one Minecraft account to the Discord account that whitelisted it.
// UUID is the stable Minecraft account id; Username is the current display
// name and may change over time.
type Link struct {
	UUID        string    `json:"uuid"`
	Username    string    `json:"username"`
	DiscordID   string    `json:"discord_id"`
	DiscordName string    `json:"discord_username"`
	LinkedAt    time.Time `json:"linked_at"`
}

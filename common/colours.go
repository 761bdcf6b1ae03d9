package common

import "github.com/diamondburned/arikawa/v3/discord"

// Embed colours
const (
	ColourPurple discord.Color = 0x9b59b6
	ColourGreen  discord.Color = 0x2ecc71
	ColourRed    discord.Color = 0xe74c3c
	ColourOrange discord.Color = 0xe67e22
	ColourBlue   discord.Color = 0x3498db
	ColourGold   discord.Color = 0xf1c40f
)

// DefaultTheme is the theme colour used for guilds that haven't set one.
const DefaultTheme = ColourPurple

package discord

import (
	"github.com/bwmarrin/discordgo"
)

func commands() []*discordgo.ApplicationCommand {
	minBase := float64(2)
	maxBase := float64(16)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "calc",
			Description: "Evaluate an expression in your active session",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "expression",
					Description: "Ex: 2^10 + sin(pi/2) or f(x) = x^2",
					Required:    true,
				},
			},
		},
		{
			Name:        "session",
			Description: "Manage your calculator sessions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your sessions",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "new",
					Description: "Create a new session and switch to it",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "switch",
					Description: "Switch to another session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Session id (see /session list)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rename",
					Description: "Rename the given session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Session id (see /session list)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "New name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete the given session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Session id (see /session list)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "fractions",
					Description: "Show exact fractions instead of decimals",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "true = fractions, false = decimals",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "history",
			Description: "Show the history of your active session",
		},
		{
			Name:        "base",
			Description: "Show the current result in another base",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "base",
					Description: "16, 8 or 2",
					Required:    true,
					MinValue:    &minBase,
					MaxValue:    maxBase,
				},
			},
		},
	}
}

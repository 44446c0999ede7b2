package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"neocalc/internal/domain/entities"
)

const (
	embedColor      = 0x5865F2
	embedErrorColor = 0xED4245
)

// BuildResultEmbed renders one evaluation as an embed. Labels arrive already
// localized; the expression and result are shown verbatim in code style.
func BuildResultEmbed(expressionLabel, expression, resultLabel, result string, isError bool) *discordgo.MessageEmbed {
	color := embedColor
	if isError {
		color = embedErrorColor
	}
	return &discordgo.MessageEmbed{
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: expressionLabel, Value: "`" + expression + "`"},
			{Name: resultLabel, Value: "`" + result + "`"},
		},
	}
}

// BuildHistoryEmbed lists entries newest first, one line per calculation.
func BuildHistoryEmbed(title string, entries []entities.HistoryEntry) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, entry := range entries {
		marker := "="
		if entry.IsError {
			marker = "✗"
		}
		b.WriteString(fmt.Sprintf("`%s` %s `%s`\n", entry.Expression, marker, entry.Result))
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       embedColor,
	}
}

// BuildSessionListEmbed marks the active session with an arrow.
func BuildSessionListEmbed(title string, sessions []entities.SessionOverview) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, session := range sessions {
		marker := "　"
		if session.IsActive {
			marker = "▶"
		}
		b.WriteString(fmt.Sprintf("%s **%s** • `%s`\n", marker, session.Name, session.ID))
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       embedColor,
	}
}

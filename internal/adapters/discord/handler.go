package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"neocalc/internal/domain/entities"
	"neocalc/internal/ports/input"
	"neocalc/internal/ports/output"
	pkgdiscord "neocalc/pkg/discord"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	sessionUseCase input.SessionUseCase
	t              output.T
}

// NewHandler creates a Handler.
func NewHandler(sessionUseCase input.SessionUseCase, t output.T) *Handler {
	return &Handler{
		sessionUseCase: sessionUseCase,
		t:              t,
	}
}

func (h *Handler) HandleCalc(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	userID := interactionUserID(i)

	expression := i.ApplicationCommandData().Options[0].StringValue()
	entry, err := h.sessionUseCase.EvaluateExpression(ctx, userID, expression)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
		return
	}

	embed := pkgdiscord.BuildResultEmbed(
		h.t.T(locale, "term-expression", nil),
		entry.Expression,
		h.resultLabel(locale, entry.IsError),
		h.localizedResult(locale, entry),
		entry.IsError,
	)
	respondEmbed(s, i.Interaction, embed)
}

func (h *Handler) HandleSession(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	userID := interactionUserID(i)

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "list":
		overview, err := h.sessionUseCase.Overview(ctx, userID)
		if err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		embed := pkgdiscord.BuildSessionListEmbed(h.t.T(locale, "term-sessions", nil), overview)
		respondEmbed(s, i.Interaction, embed)

	case "new":
		session, err := h.sessionUseCase.CreateSession(ctx, userID)
		if err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		respondEphemeral(s, i.Interaction,
			h.t.T(locale, "ui-session-created", map[string]string{"name": session.Name}))

	case "switch":
		session, err := h.sessionUseCase.SwitchSession(ctx, userID, sub.Options[0].StringValue())
		if err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		respondEphemeral(s, i.Interaction,
			h.t.T(locale, "ui-session-switched", map[string]string{"name": session.Name}))

	case "rename":
		id := sub.Options[0].StringValue()
		name := sub.Options[1].StringValue()
		if err := h.sessionUseCase.RenameSession(ctx, userID, id, name); err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		respondEphemeral(s, i.Interaction,
			h.t.T(locale, "ui-session-renamed", map[string]string{"name": name}))

	case "delete":
		id := sub.Options[0].StringValue()
		session, err := h.sessionUseCase.ActiveSession(ctx, userID)
		name := id
		if err == nil && session.ID == id {
			name = session.Name
		}
		if err := h.sessionUseCase.DeleteSession(ctx, userID, id); err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		respondEphemeral(s, i.Interaction,
			h.t.T(locale, "ui-session-deleted", map[string]string{"name": name}))

	case "fractions":
		enabled := sub.Options[0].BoolValue()
		if err := h.sessionUseCase.SetFractionDisplay(ctx, userID, enabled); err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		entry, err := h.sessionUseCase.Evaluate(ctx, userID)
		if err != nil {
			respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
			return
		}
		respondEphemeral(s, i.Interaction, h.localizedResult(locale, entry))
	}
}

func (h *Handler) HandleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	userID := interactionUserID(i)

	entries, err := h.sessionUseCase.History(ctx, userID)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
		return
	}
	if len(entries) == 0 {
		respondEphemeral(s, i.Interaction, h.t.T(locale, "ui-history-empty", nil))
		return
	}
	embed := pkgdiscord.BuildHistoryEmbed(h.t.T(locale, "term-history", nil), entries)
	respondEmbed(s, i.Interaction, embed)
}

func (h *Handler) HandleBase(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	userID := interactionUserID(i)

	base := int(i.ApplicationCommandData().Options[0].IntValue())
	buffer, err := h.sessionUseCase.ConvertBase(ctx, userID, base)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.t.TError(locale, err))
		return
	}
	respondEphemeral(s, i.Interaction, "`"+buffer+"`")
}

func (h *Handler) resultLabel(locale string, isError bool) string {
	if isError {
		return h.t.T(locale, "term-error", nil)
	}
	return h.t.T(locale, "term-result", nil)
}

// localizedResult re-renders a failed entry's message in the viewer's locale;
// successful results are locale independent.
func (h *Handler) localizedResult(locale string, entry *entities.HistoryEntry) string {
	if entry.IsError && entry.Err != nil {
		return h.t.TError(locale, entry.Err)
	}
	return entry.Result
}

package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
	pkgdiscord "valuelife/pkg/discord"
)

// ledgerTail caps how many audit lines /ledger shows.
const ledgerTail = 15

func (h *Handler) HandleSponsor(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	opts := optionMap(i.ApplicationCommandData())

	sponsorOpt, nameOpt := opts["sponsor"], opts["name"]
	if sponsorOpt == nil || nameOpt == nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}

	p, err := h.network.AddParticipant(ctx, uint(sponsorOpt.IntValue()), nameOpt.StringValue())
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, pkgdiscord.DomainErrorKey(err), nil))
		return
	}

	parent, err := h.network.GetParticipant(ctx, p.ParentID)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}

	placed := h.translator.T(locale, "sponsor.placed", map[string]any{
		"Name":   p.Name,
		"ID":     p.ID,
		"Parent": parent.Name,
		"Side":   h.translator.T(locale, "side."+string(p.Side), nil),
	})
	bonus := h.translator.T(locale, "sponsor.direct_bonus", map[string]any{
		"Parent": parent.Name,
	})
	respondMessage(s, i.Interaction, placed+"\n"+bonus)
}

func (h *Handler) HandleActivate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	opts := optionMap(i.ApplicationCommandData())

	idOpt := opts["id"]
	if idOpt == nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	id := uint(idOpt.IntValue())

	events, err := h.network.MarkActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyActive) {
			p, gerr := h.network.GetParticipant(ctx, id)
			if gerr != nil {
				respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
				return
			}
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "activate.already_active", map[string]any{
				"Name": p.Name,
			}))
			return
		}
		respondEphemeral(s, i.Interaction, h.translator.T(locale, pkgdiscord.DomainErrorKey(err), nil))
		return
	}

	p, err := h.network.GetParticipant(ctx, id)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}

	lines := []string{h.translator.T(locale, "activate.confirmed", map[string]any{"Name": p.Name})}
	for _, ev := range events {
		if ev.Kind == entities.EventPairBonus {
			lines = append(lines, h.translator.T(locale, "activate.pair_bonus", map[string]any{
				"Message": ev.Message,
			}))
		}
	}
	respondMessage(s, i.Interaction, strings.Join(lines, "\n"))
}

func (h *Handler) HandleMember(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)
	opts := optionMap(i.ApplicationCommandData())

	idOpt := opts["id"]
	if idOpt == nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	id := uint(idOpt.IntValue())

	p, err := h.network.GetParticipant(ctx, id)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "member.not_found", map[string]any{
			"ID": id,
		}))
		return
	}
	respondEmbed(s, i.Interaction, pkgdiscord.BuildParticipantEmbed(p))
}

func (h *Handler) HandleNetwork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)

	stats, err := h.network.Stats(ctx)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	tree, err := h.network.GetTree(ctx)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}

	embed := pkgdiscord.BuildStatsEmbed(stats)
	embed.Description = pkgdiscord.FormatTree(tree)
	respondEmbed(s, i.Interaction, embed)
}

func (h *Handler) HandleLedger(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := interactionLocale(i)

	events, err := h.network.ListEvents(ctx)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}
	if len(events) > ledgerTail {
		events = events[len(events)-ledgerTail:]
	}

	var b strings.Builder
	b.WriteString("```\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "%s  %s\n", ev.OccurredAt.UTC().Format("2006-01-02 15:04:05"), ev.Message)
	}
	if len(events) == 0 {
		b.WriteString("(no events yet)\n")
	}
	b.WriteString("```")
	respondMessage(s, i.Interaction, b.String())
}

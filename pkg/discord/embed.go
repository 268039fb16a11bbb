package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"valuelife/internal/domain/entities"
)

const (
	embedColor       = 0x5865F2
	memberEmbedTitle = "👤 Participant"
	statsEmbedTitle  = "🌳 Network overview"
)

func formatStatus(active bool) string {
	if active {
		return "active ✅"
	}
	return "inactive ⏳"
}

// BuildParticipantEmbed renders one participant's placement and earnings.
func BuildParticipantEmbed(p *entities.Participant) *discordgo.MessageEmbed {
	placement := "network root"
	if p.ParentID != 0 {
		placement = fmt.Sprintf("under #%d on %s", p.ParentID, p.Side)
	}
	return &discordgo.MessageEmbed{
		Title: memberEmbedTitle,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: fmt.Sprintf("%s (#%d)", p.Name, p.ID), Inline: true},
			{Name: "Status", Value: formatStatus(p.Active), Inline: true},
			{Name: "Sponsor", Value: fmt.Sprintf("#%d", p.SponsorID), Inline: true},
			{Name: "Placement", Value: placement, Inline: true},
			{Name: "Direct referrals", Value: fmt.Sprintf("%d", p.DirectReferralCount), Inline: true},
			{Name: "Pairs", Value: fmt.Sprintf("%d", p.PairCount), Inline: true},
			{Name: "Volume (L/R)", Value: fmt.Sprintf("%d / %d", p.LeftVolume, p.RightVolume), Inline: true},
			{Name: "Earnings", Value: fmt.Sprintf("direct %d • pair %d • total %d",
				p.Earnings.Direct, p.Earnings.Pair, p.Earnings.Total), Inline: false},
		},
	}
}

// BuildStatsEmbed renders network-wide aggregates.
func BuildStatsEmbed(stats entities.NetworkStats) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: statsEmbedTitle,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Participants", Value: fmt.Sprintf("%d", stats.Participants), Inline: true},
			{Name: "Active", Value: fmt.Sprintf("%d", stats.Active), Inline: true},
			{Name: "Pairs formed", Value: fmt.Sprintf("%d", stats.PairsFormed), Inline: true},
			{Name: "Direct paid", Value: fmt.Sprintf("%d", stats.DirectPaid), Inline: true},
			{Name: "Pair paid", Value: fmt.Sprintf("%d", stats.PairPaid), Inline: true},
			{Name: "Total paid", Value: fmt.Sprintf("%d", stats.TotalPaid), Inline: true},
		},
	}
}

// FormatTree renders the placement tree as an indented code block, one
// node per line, left child before right.
func FormatTree(root *entities.TreeNode) string {
	if root == nil {
		return "```\n(empty network)\n```"
	}
	var b strings.Builder
	b.WriteString("```\n")
	writeTreeNode(&b, root, "", "")
	b.WriteString("```")
	return b.String()
}

func writeTreeNode(b *strings.Builder, n *entities.TreeNode, indent, slot string) {
	p := n.Participant
	marker := ""
	if p.Active {
		marker = " *"
	}
	if slot != "" {
		slot += ": "
	}
	fmt.Fprintf(b, "%s%s%s (#%d)%s\n", indent, slot, p.Name, p.ID, marker)
	child := indent + "  "
	if n.Left != nil {
		writeTreeNode(b, n.Left, child, "L")
	}
	if n.Right != nil {
		writeTreeNode(b, n.Right, child, "R")
	}
}

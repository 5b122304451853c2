package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/rafflebot/internal/raffle"
)

const (
	colorBlue   = 0x3498db
	colorGold   = 0xf1c40f
	colorGreen  = 0x2ecc71
	colorPurple = 0x9b59b6
	colorOrange = 0xe67e22

	// Discord rejects embeds with more fields than this.
	maxEmbedFields = 25

	MsgNoStandings      = "No one has earned any tickets yet!"
	MsgNoTickets        = "No tickets have been earned yet!"
	MsgNotAdmin         = "Only administrators can draw winners."
	MsgLeaderboardReset = "Leaderboard has been reset for the new week!"
)

// Reply is a message that can go out either as an interaction response or
// as a plain channel message.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// NameFunc resolves a user ID to a display name.
type NameFunc func(raffle.UserID) string

// Mention renders a user mention.
func Mention(u raffle.UserID) string {
	return fmt.Sprintf("<@%s>", u)
}

func TicketsEmbed(tickets int, requester string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎟️ Your Tickets",
		Description: fmt.Sprintf("You have %d raffle %s!", tickets, plural(tickets, "ticket", "tickets")),
		Color:       colorBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Requested by " + requester},
	}
}

func LeaderboardEmbed(rows []raffle.Standing, name NameFunc) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Weekly Leaderboard",
		Color: colorGold,
	}
	for _, r := range rows {
		if len(embed.Fields) == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s", r.Rank, name(r.User)),
			Value:  fmt.Sprintf("%d %s", r.Tickets, plural(r.Tickets, "ticket", "tickets")),
			Inline: false,
		})
	}
	if len(rows) > maxEmbedFields {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing the top %d of %d", maxEmbedFields, len(rows)),
		}
	}
	return embed
}

func WinnersEmbed(winners []raffle.UserID, requested int) *discordgo.MessageEmbed {
	mentions := make([]string, len(winners))
	for i, w := range winners {
		mentions[i] = Mention(w)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🎉 Winners!",
		Description: "Congratulations to: " + strings.Join(mentions, ", "),
		Color:       colorGreen,
	}
	if len(winners) < requested {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Only %d of %d requested winners could be drawn: not enough participants.", len(winners), requested),
		}
	}
	return embed
}

func HelpEmbed(prefix string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📜 RaffleBot Commands",
		Color: colorPurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: prefix + "help", Value: "Show this help menu"},
			{Name: prefix + "tickets", Value: "Check your raffle tickets"},
			{Name: prefix + "leaderboard", Value: "Show the leaderboard"},
			{Name: prefix + "draw [number]", Value: "Admin only: Draw random winners"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Slash commands: /tickets /leaderboard /draw /help"},
	}
}

func MilestoneEmbed(user raffle.UserID, milestone, total int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎯 Milestone reached",
		Description: fmt.Sprintf("%s reached %d tickets! (now holding %d)", Mention(user), milestone, total),
		Color:       colorOrange,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

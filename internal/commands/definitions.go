package commands

import "github.com/bwmarrin/discordgo"

// MaxWinners caps a single draw; it also keeps the winners embed small.
const MaxWinners = 25

func GetCommands() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	minWinners := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:         "tickets",
			Description:  "Check your raffle tickets",
			DMPermission: boolPtr(false),
		},
		{
			Name:         "leaderboard",
			Description:  "Show the weekly leaderboard",
			DMPermission: boolPtr(false),
		},
		{
			Name:                     "draw",
			Description:              "Admin only: draw random winners",
			DMPermission:             boolPtr(false),
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "winners",
					Description: "Number of winners (default 1)",
					Required:    false,
					MinValue:    &minWinners,
					MaxValue:    MaxWinners,
				},
			},
		},
		{
			Name:        "help",
			Description: "Show the RaffleBot commands",
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

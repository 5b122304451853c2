package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/rafflebot/internal/raffle"
)

func LeaderboardReply(engine *raffle.Engine, name NameFunc) Reply {
	rows, ok := engine.Leaderboard()
	if !ok {
		return Reply{Content: MsgNoStandings}
	}
	return Reply{Embed: LeaderboardEmbed(rows, name)}
}

func HandleLeaderboard(s Session, i *discordgo.InteractionCreate, engine *raffle.Engine, name NameFunc) {
	respond(s, i, LeaderboardReply(engine, name))
}

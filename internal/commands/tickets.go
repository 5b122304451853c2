package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/rafflebot/internal/raffle"
)

func TicketsReply(engine *raffle.Engine, user *discordgo.User) Reply {
	var tickets int
	if user != nil {
		tickets = engine.Balance(raffle.UserID(user.ID))
	}
	return Reply{Embed: TicketsEmbed(tickets, displayName(user))}
}

func HandleTickets(s Session, i *discordgo.InteractionCreate, engine *raffle.Engine) {
	respond(s, i, TicketsReply(engine, interactionUser(i)))
}

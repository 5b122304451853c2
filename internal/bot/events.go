package bot

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/commands"
	"github.com/susu3304/rafflebot/internal/metrics"
	"github.com/susu3304/rafflebot/internal/raffle"
)

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	logrus.Infof("%s is connected!", event.User.Username)

	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(guild.ID); err != nil {
			logrus.Errorf("failed to register commands for guild %s: %v", guild.ID, err)
		}
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	logrus.Infof("guild available: %s (id=%s), ensuring commands", event.Name, event.ID)
	if err := b.registerGuildCommands(event.ID); err != nil {
		logrus.Errorf("failed to register commands for guild %s: %v", event.ID, err)
	}
	if n := b.seedVoiceStates(event.Guild); n > 0 {
		logrus.Infof("resumed tracking %d members already in voice in guild %s", n, event.ID)
	}
}

func (b *Bot) registerGuildCommands(guildID string) error {
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, guildID, commands.GetCommands())
	if err != nil {
		return err
	}
	logrus.Debugf("registered application commands for guild %s", guildID)
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	isAdmin := func() bool {
		perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			logrus.Warnf("failed to resolve permissions for %s in %s: %v", m.Author.ID, m.ChannelID, err)
			return false
		}
		return commands.IsAdministrator(perms)
	}
	b.handleTextCommand(s, m.Message, isAdmin, b.nameResolver(s, m.GuildID))
}

// handleTextCommand answers a prefixed text command. isAdmin is only
// consulted for privileged commands.
func (b *Bot) handleTextCommand(s commands.Session, m *discordgo.Message, isAdmin func() bool, name commands.NameFunc) {
	cmd, args, ok := commands.ParseText(b.prefix, m.Content)
	if !ok {
		return
	}

	var (
		reply     commands.Reply
		requested int
		winners   []raffle.UserID
	)
	switch cmd {
	case "tickets":
		reply = commands.TicketsReply(b.engine, m.Author)
	case "leaderboard":
		reply = commands.LeaderboardReply(b.engine, name)
	case "draw":
		if !isAdmin() {
			reply = commands.Reply{Content: commands.MsgNotAdmin}
			break
		}
		requested = 1
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				requested = commands.ClampWinners(n)
			}
		}
		reply, winners = commands.DrawReply(b.engine, requested)
	case "help":
		reply = commands.HelpReply(b.prefix)
	default:
		reply = commands.UnknownReply(b.prefix)
		cmd = "unknown"
	}
	metrics.Command(cmd, "text")
	commands.SendReply(s, m.ChannelID, reply)
	commands.RecordDraw(b.archive, requested, winners)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleApplicationCommand(s, i, b.nameResolver(s, i.GuildID))
}

func (b *Bot) handleApplicationCommand(s commands.Session, i *discordgo.InteractionCreate, name commands.NameFunc) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "tickets":
		commands.HandleTickets(s, i, b.engine)
	case "leaderboard":
		commands.HandleLeaderboard(s, i, b.engine, name)
	case "draw":
		commands.HandleDraw(s, i, b.engine, b.archive)
	case "help":
		commands.HandleHelp(s, i, b.prefix)
	default:
		logrus.Warnf("unknown application command %q", data.Name)
		return
	}
	metrics.Command(data.Name, "slash")
}

// nameResolver looks a user up in the state cache first and falls back to
// the REST API, then to a raw mention.
func (b *Bot) nameResolver(s *discordgo.Session, guildID string) commands.NameFunc {
	return func(id raffle.UserID) string {
		if guildID != "" && s.State != nil {
			if m, err := s.State.Member(guildID, string(id)); err == nil && m.User != nil {
				if m.Nick != "" {
					return m.Nick
				}
				return userName(m.User)
			}
		}
		if u, err := s.User(string(id)); err == nil {
			return userName(u)
		}
		return commands.Mention(id)
	}
}

func userName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

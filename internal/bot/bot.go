package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/commands"
	"github.com/susu3304/rafflebot/internal/config"
	"github.com/susu3304/rafflebot/internal/db"
	"github.com/susu3304/rafflebot/internal/raffle"
)

type Bot struct {
	session   *discordgo.Session
	prefix    string
	engine    *raffle.Engine
	notifier  *Notifier
	scheduler *raffle.Scheduler
	archive   commands.DrawArchive
	now       func() time.Time
}

// New wires the raffle engine to a Discord session. database may be nil,
// in which case standings and draws are not archived.
func New(cfg *config.Config, database *db.DB) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	var (
		standings StandingsArchive
		draws     commands.DrawArchive
	)
	if database != nil {
		standings = database
		draws = database
	}

	notifier := NewNotifier(session, cfg.AnnounceChannelID, standings)
	engine, err := raffle.NewEngine(raffle.Options{
		Unit:       cfg.TicketUnit,
		Milestones: cfg.Milestones(),
		Notifier:   notifier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create raffle engine: %w", err)
	}

	bot := &Bot{
		session:   session,
		prefix:    cfg.CommandPrefix,
		engine:    engine,
		notifier:  notifier,
		scheduler: raffle.NewScheduler(cfg.ResetInstant(), engine, cfg.ResetCheckInterval),
		archive:   draws,
		now:       time.Now,
	}

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onVoiceStateUpdate)
	session.AddHandler(bot.onMessageCreate)
	session.AddHandler(bot.onInteractionCreate)

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildVoiceStates |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	return bot, nil
}

// Engine exposes the ticket engine to read-only consumers such as the web API.
func (b *Bot) Engine() *raffle.Engine {
	return b.engine
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.scheduler.Start()
	logrus.Infof("Discord bot is running (ticket unit %s, milestones %v)", b.engine.Unit(), b.engine.Milestones().Values())
	return nil
}

// Stop closes the gateway first so no new events arrive, then lets the
// scheduler and pending announcements drain.
func (b *Bot) Stop() error {
	err := b.session.Close()
	b.scheduler.Stop()
	b.notifier.Close()
	return err
}

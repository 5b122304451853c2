package commands

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/db"
	"github.com/susu3304/rafflebot/internal/metrics"
	"github.com/susu3304/rafflebot/internal/raffle"
)

// DrawArchive records finished draws. *db.DB implements it.
type DrawArchive interface {
	RecordDraw(ctx context.Context, drawnAt time.Time, requested int, winners []raffle.UserID) (*db.Draw, error)
}

// ClampWinners bounds a requested winner count to 1..MaxWinners.
func ClampWinners(n int) int {
	return min(max(n, 1), MaxWinners)
}

// DrawReply draws up to requested winners, clamped to 1..MaxWinners.
func DrawReply(engine *raffle.Engine, requested int) (Reply, []raffle.UserID) {
	requested = ClampWinners(requested)

	winners, ok := engine.DrawWinners(requested)
	if !ok {
		metrics.Draw(metrics.DrawEmpty)
		logrus.Info("draw requested but nobody holds tickets")
		return Reply{Content: MsgNoTickets}, nil
	}

	metrics.Draw(metrics.DrawDrawn)
	logrus.WithFields(logrus.Fields{
		"requested": requested,
		"winners":   winners,
	}).Info("drew raffle winners")
	return Reply{Embed: WinnersEmbed(winners, requested)}, winners
}

func HandleDraw(s Session, i *discordgo.InteractionCreate, engine *raffle.Engine, archive DrawArchive) {
	if i.Member == nil || !IsAdministrator(i.Member.Permissions) {
		respondText(s, i, MsgNotAdmin)
		return
	}

	requested := 1
	if v := getIntOption(i.ApplicationCommandData().Options, "winners"); v != nil {
		requested = ClampWinners(int(*v))
	}

	reply, winners := DrawReply(engine, requested)
	respond(s, i, reply)
	RecordDraw(archive, requested, winners)
}

// RecordDraw stores a draw in the archive when one is configured.
func RecordDraw(archive DrawArchive, requested int, winners []raffle.UserID) {
	if archive == nil || len(winners) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := archive.RecordDraw(ctx, time.Now(), requested, winners); err != nil {
		logrus.Warnf("failed to archive draw: %v", err)
	}
}

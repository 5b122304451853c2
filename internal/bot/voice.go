package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/metrics"
	"github.com/susu3304/rafflebot/internal/raffle"
)

type voiceTransition int

const (
	voiceUnchanged voiceTransition = iota
	voiceJoined
	voiceLeft
)

// classifyVoiceUpdate maps a voice state change onto presence events.
// Moving between channels keeps the user present and is not a transition.
func classifyVoiceUpdate(before, after *discordgo.VoiceState) voiceTransition {
	wasIn := before != nil && before.ChannelID != ""
	isIn := after != nil && after.ChannelID != ""
	switch {
	case isIn && !wasIn:
		return voiceJoined
	case wasIn && !isIn:
		return voiceLeft
	default:
		return voiceUnchanged
	}
}

func isBotMember(m *discordgo.Member) bool {
	return m != nil && m.User != nil && m.User.Bot
}

func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || isBotMember(v.Member) {
		return
	}

	user := raffle.UserID(v.UserID)
	switch classifyVoiceUpdate(v.BeforeUpdate, v.VoiceState) {
	case voiceJoined:
		b.engine.PresenceStart(user, b.now())
		logrus.WithField("user", user).Info("joined voice")
	case voiceLeft:
		b.closeVoiceSession(user, b.now())
	}
}

func (b *Bot) closeVoiceSession(user raffle.UserID, now time.Time) {
	log := logrus.WithField("user", user)

	res, ok := b.engine.PresenceEnd(user, now)
	switch {
	case !ok:
		metrics.SessionClosed(metrics.SessionUnmatched, 0)
		log.Debug("left voice without a tracked join")
	case !res.Accrued:
		metrics.SessionClosed(metrics.SessionBelowUnit, 0)
		log.WithField("duration", res.Duration.Round(time.Second)).Info("left voice, no tickets allotted (not enough time)")
	default:
		metrics.SessionClosed(metrics.SessionAccrued, res.Accrual.Earned)
		metrics.SetParticipants(b.engine.Participants())
		log.WithFields(logrus.Fields{
			"duration": res.Duration.Round(time.Second),
			"earned":   res.Accrual.Earned,
			"total":    res.Accrual.Total,
		}).Info("left voice, tickets allotted")
	}
}

// seedVoiceStates opens intervals for members already in voice when a guild
// becomes available, so a restart does not lose the rest of their session.
// Users the engine already tracks keep their original start.
func (b *Bot) seedVoiceStates(g *discordgo.Guild) int {
	now := b.now()
	seeded := 0
	for _, vs := range g.VoiceStates {
		if vs == nil || vs.ChannelID == "" || isBotMember(vs.Member) {
			continue
		}
		user := raffle.UserID(vs.UserID)
		if b.engine.InVoice(user) {
			continue
		}
		b.engine.PresenceStart(user, now)
		seeded++
	}
	return seeded
}

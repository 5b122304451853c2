package bot

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/commands"
	"github.com/susu3304/rafflebot/internal/metrics"
	"github.com/susu3304/rafflebot/internal/raffle"
)

// Minimal session interface for posting announcements.
type announceSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// StandingsArchive stores the final leaderboard of a week. *db.DB implements it.
type StandingsArchive interface {
	ArchiveStandings(ctx context.Context, weekEnding time.Time, standings []raffle.Standing) error
}

// Notifier announces milestones and resets in a Discord channel. Every send
// runs on its own goroutine so the engine never waits on Discord.
type Notifier struct {
	session    announceSession
	channelID  string
	archive    StandingsArchive
	now        func() time.Time
	newBackOff func() backoff.BackOff

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

const (
	sendAttemptTimeout = 12 * time.Second
	sendMaxRetries     = 3
)

func NewNotifier(session announceSession, channelID string, archive StandingsArchive) *Notifier {
	return &Notifier{
		session:   session,
		channelID: channelID,
		archive:   archive,
		now:       time.Now,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

func (n *Notifier) MilestoneCrossed(user raffle.UserID, milestone, total int) {
	metrics.MilestoneCrossed(milestone)
	logrus.WithFields(logrus.Fields{
		"user":      user,
		"milestone": milestone,
		"total":     total,
	}).Info("milestone crossed")

	n.post(commands.Reply{Embed: commands.MilestoneEmbed(user, milestone, total)})
}

// LeaderboardReset archives final under the weekly boundary it closes. An
// unscheduled reset is filed under the current time.
func (n *Notifier) LeaderboardReset(boundary time.Time, final []raffle.Standing) {
	metrics.Reset()
	weekEnding := boundary
	if weekEnding.IsZero() {
		weekEnding = n.now()
	}
	logrus.WithFields(logrus.Fields{
		"participants": len(final),
		"week_ending":  weekEnding.Format(time.RFC3339),
	}).Info("leaderboard reset")

	if n.archive != nil && len(final) > 0 {
		n.spawn(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := n.archive.ArchiveStandings(ctx, weekEnding, final); err != nil {
				logrus.Errorf("failed to archive standings for week ending %s: %v", weekEnding.Format(time.RFC3339), err)
			}
		})
	}

	n.post(commands.Reply{Content: commands.MsgLeaderboardReset})
}

// Close stops accepting new work and blocks until in-flight sends and
// archive writes finish. Events after Close are logged only.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.wg.Wait()
}

// spawn runs f on a tracked goroutine unless the notifier is closed.
func (n *Notifier) spawn(f func()) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return false
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		f()
	}()
	return true
}

func (n *Notifier) post(r commands.Reply) {
	if n.channelID == "" {
		return
	}
	msg := &discordgo.MessageSend{Content: r.Content}
	if r.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{r.Embed}
	}

	ok := n.spawn(func() {
		if err := n.sendWithRetry(context.Background(), msg); err != nil {
			logrus.Errorf("failed to send announcement to channel %s: %v", n.channelID, err)
		}
	})
	if !ok {
		logrus.Warnf("notifier closed, dropping announcement for channel %s", n.channelID)
	}
}

func (n *Notifier) sendWithRetry(ctx context.Context, msg *discordgo.MessageSend) error {
	op := func() error {
		sendCtx, cancel := context.WithTimeout(ctx, sendAttemptTimeout)
		defer cancel()
		_, err := n.session.ChannelMessageSendComplex(n.channelID, msg, discordgo.WithContext(sendCtx))
		if err != nil && !isTemporaryOrTimeout(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logrus.Warnf("announcement send failed, retrying in %s: %v", wait, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(n.newBackOff(), sendMaxRetries), ctx)
	return backoff.RetryNotify(op, b, notify)
}

func isTemporaryOrTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		code := restErr.Response.StatusCode
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	return false
}

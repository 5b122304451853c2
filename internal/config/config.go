package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/raffle"
)

type Config struct {
	// Discord Bot
	DiscordToken      string `env:"DISCORD_TOKEN"`
	CommandPrefix     string `env:"COMMAND_PREFIX" envDefault:","`
	AnnounceChannelID string `env:"ANNOUNCE_CHANNEL_ID"`

	// Tickets
	TicketUnit    time.Duration `env:"TICKET_UNIT" envDefault:"10m"`
	MilestoneList string        `env:"MILESTONES" envDefault:"5,10,25,50,100"`

	// Weekly reset
	ResetWeekday       string        `env:"RESET_WEEKDAY" envDefault:"sunday"`
	ResetTime          string        `env:"RESET_TIME" envDefault:"23:59"`
	ResetTimezone      string        `env:"RESET_TIMEZONE" envDefault:"Local"`
	ResetCheckInterval time.Duration `env:"RESET_CHECK_INTERVAL" envDefault:"1m"`

	// Database (optional standings archive)
	DatabaseURL string `env:"DATABASE_URL"`

	// Discord OAuth2
	DiscordClientID     string `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `env:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `env:"DISCORD_REDIRECT_URI" envDefault:"http://localhost:3000/api/auth/callback"`

	// Web Server
	WebBind      string `env:"WEB_BIND" envDefault:"0.0.0.0:3000"`
	WebUIBaseURL string

	// Session
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-only-change-me"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	milestones   raffle.MilestoneSet
	resetInstant raffle.WeeklyInstant
}

// devJWTSecret is the JWT_SECRET default. It is refused once web login is on.
const devJWTSecret = "dev-only-change-me"

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parsed values and fills in the derived fields.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	if c.TicketUnit <= 0 {
		return fmt.Errorf("invalid TICKET_UNIT: %s (must be positive)", c.TicketUnit)
	}

	values, err := parseMilestones(c.MilestoneList)
	if err != nil {
		return fmt.Errorf("invalid MILESTONES: %w", err)
	}
	if c.milestones, err = raffle.NewMilestoneSet(values...); err != nil {
		return fmt.Errorf("invalid MILESTONES: %w", err)
	}

	if c.resetInstant, err = parseResetInstant(c.ResetWeekday, c.ResetTime, c.ResetTimezone); err != nil {
		return err
	}

	if c.OAuthEnabled() && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set to a private value when DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET are set")
	}

	c.WebUIBaseURL = extractBaseURL(c.DiscordRedirectURI)
	return nil
}

// Milestones is derived from MILESTONES by Validate.
func (c *Config) Milestones() raffle.MilestoneSet {
	return c.milestones
}

// ResetInstant is derived from the RESET_* variables by Validate.
func (c *Config) ResetInstant() raffle.WeeklyInstant {
	return c.resetInstant
}

// OAuthEnabled reports whether the web login flow can be offered.
func (c *Config) OAuthEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

func parseMilestones(list string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one milestone is required")
	}
	return values, nil
}

func parseResetInstant(weekday, hhmm, zone string) (raffle.WeeklyInstant, error) {
	day, err := raffle.ParseWeekday(weekday)
	if err != nil {
		return raffle.WeeklyInstant{}, fmt.Errorf("invalid RESET_WEEKDAY: %w", err)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return raffle.WeeklyInstant{}, fmt.Errorf("invalid RESET_TIME %q (expected HH:MM)", hhmm)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return raffle.WeeklyInstant{}, fmt.Errorf("invalid RESET_TIMEZONE: %w", err)
	}
	return raffle.WeeklyInstant{
		Weekday:  day,
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Location: loc,
	}, nil
}

func extractBaseURL(redirectURI string) string {
	// e.g., "http://localhost:3000/api/auth/callback" -> "http://localhost:3000"
	parsed, err := url.Parse(redirectURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "http://localhost:3000"
	}

	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}

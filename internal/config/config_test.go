package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("RESET_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.CommandPrefix)
	assert.Equal(t, 10*time.Minute, cfg.TicketUnit)
	assert.Equal(t, time.Minute, cfg.ResetCheckInterval)
	assert.Equal(t, []int{5, 10, 25, 50, 100}, cfg.Milestones().Values())
	assert.Equal(t, "0.0.0.0:3000", cfg.WebBind)
	assert.Equal(t, "http://localhost:3000", cfg.WebUIBaseURL)
	assert.False(t, cfg.OAuthEnabled())

	instant := cfg.ResetInstant()
	assert.Equal(t, time.Sunday, instant.Weekday)
	assert.Equal(t, 23, instant.Hour)
	assert.Equal(t, 59, instant.Minute)
	assert.Equal(t, time.UTC, instant.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("TICKET_UNIT", "1m")
	t.Setenv("MILESTONES", "30, 5,15")
	t.Setenv("RESET_WEEKDAY", "mon")
	t.Setenv("RESET_TIME", "09:05")
	t.Setenv("RESET_TIMEZONE", "Asia/Tokyo")
	t.Setenv("DISCORD_CLIENT_ID", "id")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret")
	t.Setenv("JWT_SECRET", "a-private-signing-key")
	t.Setenv("DISCORD_REDIRECT_URI", "https://raffle.example.com/api/auth/callback")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.TicketUnit)
	assert.Equal(t, []int{5, 15, 30}, cfg.Milestones().Values())
	assert.Equal(t, time.Monday, cfg.ResetInstant().Weekday)
	assert.Equal(t, 9, cfg.ResetInstant().Hour)
	assert.Equal(t, 5, cfg.ResetInstant().Minute)
	assert.Equal(t, "Asia/Tokyo", cfg.ResetInstant().Location.String())
	assert.Equal(t, "https://raffle.example.com", cfg.WebUIBaseURL)
	assert.True(t, cfg.OAuthEnabled())
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DiscordToken:  "token",
			CommandPrefix: ",",
			TicketUnit:    10 * time.Minute,
			MilestoneList: "5,10",
			ResetWeekday:  "sunday",
			ResetTime:     "23:59",
			ResetTimezone: "UTC",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "missing token", mutate: func(c *Config) { c.DiscordToken = "" }, want: "DISCORD_TOKEN"},
		{name: "empty prefix", mutate: func(c *Config) { c.CommandPrefix = "" }, want: "COMMAND_PREFIX"},
		{name: "zero unit", mutate: func(c *Config) { c.TicketUnit = 0 }, want: "TICKET_UNIT"},
		{name: "non-numeric milestone", mutate: func(c *Config) { c.MilestoneList = "5,ten" }, want: "MILESTONES"},
		{name: "no milestones", mutate: func(c *Config) { c.MilestoneList = " , " }, want: "MILESTONES"},
		{name: "zero milestone", mutate: func(c *Config) { c.MilestoneList = "0,5" }, want: "MILESTONES"},
		{name: "bad weekday", mutate: func(c *Config) { c.ResetWeekday = "funday" }, want: "RESET_WEEKDAY"},
		{name: "bad time", mutate: func(c *Config) { c.ResetTime = "25:00" }, want: "RESET_TIME"},
		{name: "bad timezone", mutate: func(c *Config) { c.ResetTimezone = "Mars/Olympus" }, want: "RESET_TIMEZONE"},
		{name: "default jwt secret with oauth", mutate: func(c *Config) {
			c.DiscordClientID, c.DiscordClientSecret, c.JWTSecret = "id", "secret", devJWTSecret
		}, want: "JWT_SECRET"},
		{name: "empty jwt secret with oauth", mutate: func(c *Config) {
			c.DiscordClientID, c.DiscordClientSecret, c.JWTSecret = "id", "secret", ""
		}, want: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			require.NoError(t, c.Validate())

			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefaultJWTSecretAllowedWithoutOAuth(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.OAuthEnabled())
}

func TestExtractBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", extractBaseURL("http://localhost:3000/api/auth/callback"))
	assert.Equal(t, "https://example.com", extractBaseURL("https://example.com/cb?x=1"))
	assert.Equal(t, "http://localhost:3000", extractBaseURL("not a url"))
}

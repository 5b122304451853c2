package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/api"
	"github.com/susu3304/rafflebot/internal/bot"
	"github.com/susu3304/rafflebot/internal/config"
	"github.com/susu3304/rafflebot/internal/db"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, logrus.GetLevel())
	}

	// The archive is optional; without it the bot runs purely in memory.
	var (
		database *db.DB
		archive  api.Archive
	)
	if cfg.DatabaseURL != "" {
		database, err = db.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(context.Background()); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		archive = database
	} else {
		logrus.Info("DATABASE_URL not set, standings will not be archived")
	}

	discordBot, err := bot.New(cfg, database)
	if err != nil {
		logrus.Fatalf("Failed to create discord bot: %v", err)
	}

	apiServer := api.New(cfg, discordBot.Engine(), archive)

	if err := discordBot.Start(); err != nil {
		logrus.Fatalf("Failed to start discord bot: %v", err)
	}
	defer func() {
		if err := discordBot.Stop(); err != nil {
			logrus.Warnf("failed to close discord session: %v", err)
		}
	}()

	go func() {
		if err := apiServer.Start(); err != nil {
			logrus.Errorf("API server error: %v", err)
		}
	}()
	if cfg.OAuthEnabled() {
		logrus.Infof("web login enabled for %s", cfg.WebUIBaseURL)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logrus.Warnf("API server shutdown: %v", err)
	}
}

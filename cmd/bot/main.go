// Package main is the entry point for the cup-order Telegram bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cup-order-bot/internal/bot"
	"cup-order-bot/internal/config"
	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/pkg/db"
	"cup-order-bot/internal/pkg/lock"
	"cup-order-bot/internal/repository"
	"cup-order-bot/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	sessionRepo := repository.NewSessionRepository(dbPool.Pool)
	playerLock := lock.NewPlayerLock()

	roundService := service.NewRoundService(sessionRepo, playerLock, service.RoundServiceConfig{
		StartingBalance: cfg.Game.StartingBalance,
		LockTimeout:     cfg.Game.LockTimeout,
		Source:          cuporder.NewTimeSeededSource(),
	})

	log.Info().
		Float64("starting_balance", cfg.Game.StartingBalance).
		Dur("lock_timeout", cfg.Game.LockTimeout).
		Msg("Round service ready")

	telegramBot, err := bot.New(&bot.Dependencies{
		Config:       cfg,
		RoundService: roundService,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

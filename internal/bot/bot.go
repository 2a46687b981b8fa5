// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"cup-order-bot/internal/config"
	"cup-order-bot/internal/handler"
	"cup-order-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot          *tele.Bot
	cfg          *config.Config
	access       *PrivateAccess
	roundHandler *handler.RoundHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config       *config.Config
	RoundService *service.RoundService
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: deps.Config.Bot.PollTimeout},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:          teleBot,
		cfg:          deps.Config,
		access:       NewPrivateAccess(),
		roundHandler: handler.NewRoundHandler(deps.RoundService),
	}

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg, b.access))
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.roundHandler.HandleStart)
	b.bot.Handle("/help", b.roundHandler.HandleHelp)
	b.bot.Handle("/balance", b.roundHandler.HandleBalance)
	b.bot.Handle("/play", b.roundHandler.HandlePlay)
	b.bot.Handle("/check", b.roundHandler.HandleCheck)
	b.bot.Handle("/new", b.roundHandler.HandleNew)
}

// Start starts the bot polling. It blocks until Stop is called.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}

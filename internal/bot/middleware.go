package bot

import (
	"sync"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"cup-order-bot/internal/config"
)

// PrivateAccess remembers players seen in a whitelisted group so they can
// also play in a private chat with the bot.
type PrivateAccess struct {
	mu      sync.RWMutex
	players map[int64]struct{}
}

// NewPrivateAccess creates an empty PrivateAccess.
func NewPrivateAccess() *PrivateAccess {
	return &PrivateAccess{players: make(map[int64]struct{})}
}

// Allow grants private chat access to a player.
func (p *PrivateAccess) Allow(playerID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.players[playerID] = struct{}{}
}

// Allowed reports whether a player may use private chat.
func (p *PrivateAccess) Allowed(playerID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.players[playerID]
	return ok
}

// WhitelistMiddleware drops updates from chats that are not whitelisted.
// Private chats pass when the whitelist is empty or the sender has played in
// a whitelisted group.
func WhitelistMiddleware(cfg *config.Config, access *PrivateAccess) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			sender := c.Sender()

			if chat == nil || sender == nil {
				return nil
			}

			if chat.Type == tele.ChatPrivate {
				if len(cfg.Whitelist.Chats) == 0 || access.Allowed(sender.ID) {
					return next(c)
				}
				log.Debug().
					Int64("user_id", sender.ID).
					Msg("Ignoring private chat from user not seen in a whitelisted group")
				return nil
			}

			if !cfg.IsChatAllowed(chat.ID) {
				log.Debug().
					Int64("chat_id", chat.ID).
					Msg("Ignoring command from non-whitelisted chat")
				return nil
			}

			access.Allow(sender.ID)
			return next(c)
		}
	}
}

// LoggingMiddleware creates a middleware that logs all incoming messages.
func LoggingMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			chat := c.Chat()

			logEvent := log.Debug()
			if sender != nil {
				logEvent = logEvent.
					Int64("user_id", sender.ID).
					Str("username", sender.Username)
			}
			if chat != nil {
				logEvent = logEvent.
					Int64("chat_id", chat.ID).
					Str("chat_type", string(chat.Type))
			}
			logEvent.
				Str("text", c.Text()).
				Msg("Received message")

			return next(c)
		}
	}
}

// RecoveryMiddleware creates a middleware that recovers from panics.
func RecoveryMiddleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("text", c.Text()).
						Msg("Recovered from panic in handler")
					err = c.Reply("❌ Internal error, please try again later")
				}
			}()
			return next(c)
		}
	}
}

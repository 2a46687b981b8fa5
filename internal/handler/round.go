// Package handler provides Telegram bot command handlers.
package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/pkg/lock"
	"cup-order-bot/internal/service"
)

const helpText = "🥤 Cup Order\n\n" +
	"Cups A, B and C are shuffled into slots 1, 2 and 3. Bet on:\n" +
	"• Exact order, pays 5×\n" +
	"• Which of two cups lands first, pays 2×\n" +
	"• One cup in one slot, pays 1.5×\n\n" +
	"Commands:\n" +
	"/play <bets> - play a round\n" +
	"/check <order> - check an exact order, e.g. /check BAC\n" +
	"/balance - show balance and round\n" +
	"/new - start a new session\n" +
	"/help - show this message\n\n" +
	"Usage:\n" + WagerUsage

// RoundHandler handles cup-order commands.
type RoundHandler struct {
	roundService *service.RoundService
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler(roundService *service.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

func displayName(sender *tele.User) string {
	if sender.Username != "" {
		return sender.Username
	}
	return sender.FirstName
}

// HandleStart handles the /start command.
// Creates a session with the starting balance if the player has none.
func (h *RoundHandler) HandleStart(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	session, created, err := h.roundService.EnsureSession(ctx, sender.ID, displayName(sender))
	if err != nil {
		log.Error().Err(err).Int64("player_id", sender.ID).Msg("Failed to ensure session")
		return c.Reply("❌ Could not open your session, please try again later")
	}

	if created {
		return c.Reply(fmt.Sprintf("🎉 Welcome @%s!\n\nYour session starts with %s.\n\n%s",
			displayName(sender), FormatMoney(session.Balance), helpText))
	}

	return c.Reply(fmt.Sprintf("👋 Welcome back @%s!\n\n%s", displayName(sender), RenderSession(session)))
}

// HandleHelp handles the /help command.
func (h *RoundHandler) HandleHelp(c tele.Context) error {
	return c.Reply(helpText)
}

// HandleBalance handles the /balance command.
func (h *RoundHandler) HandleBalance(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	session, _, err := h.roundService.EnsureSession(ctx, sender.ID, displayName(sender))
	if err != nil {
		log.Error().Err(err).Int64("player_id", sender.ID).Msg("Failed to load session")
		return c.Reply("❌ Could not load your balance")
	}

	return c.Reply(RenderSession(session))
}

// HandlePlay handles the /play command.
func (h *RoundHandler) HandlePlay(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	wagers, err := ParseWagers(c.Args())
	if err != nil {
		return c.Reply(fmt.Sprintf("❌ %v\n\nUsage:\n%s", err, WagerUsage))
	}

	if _, _, err := h.roundService.EnsureSession(ctx, sender.ID, displayName(sender)); err != nil {
		log.Error().Err(err).Int64("player_id", sender.ID).Msg("Failed to ensure session")
		return c.Reply("❌ Could not open your session, please try again later")
	}

	result, err := h.roundService.Play(ctx, sender.ID, wagers)
	if err != nil {
		return c.Reply(playErrorMessage(err))
	}

	return c.Reply(RenderResult(result))
}

// playErrorMessage turns a Play error into a reply.
func playErrorMessage(err error) string {
	switch {
	case cuporder.IsRejection(err):
		return "❌ " + err.Error()
	case errors.Is(err, lock.ErrLockTimeout):
		return "⏰ Your previous round is still resolving, try again"
	default:
		log.Error().Err(err).Msg("Round failed")
		return "❌ Round failed, your balance is unchanged"
	}
}

// HandleCheck handles the /check command, giving early feedback on an exact order.
func (h *RoundHandler) HandleCheck(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Reply("❌ Usage: /check <order>\nExample: /check BAC")
	}

	order := strings.ToUpper(strings.TrimSpace(args[0]))
	if !h.roundService.CheckOrder(order) {
		return c.Reply(fmt.Sprintf("❌ %s: %s", order, cuporder.ErrInvalidExactOrder.Reason))
	}
	return c.Reply(fmt.Sprintf("✅ %s is a valid order", order))
}

// HandleNew handles the /new command, discarding the current session.
func (h *RoundHandler) HandleNew(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	if _, _, err := h.roundService.EnsureSession(ctx, sender.ID, displayName(sender)); err != nil {
		log.Error().Err(err).Int64("player_id", sender.ID).Msg("Failed to ensure session")
		return c.Reply("❌ Could not open your session, please try again later")
	}

	session, err := h.roundService.NewSession(ctx, sender.ID)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return c.Reply("⏰ Your previous round is still resolving, try again")
		}
		log.Error().Err(err).Int64("player_id", sender.ID).Msg("Failed to reset session")
		return c.Reply("❌ Could not start a new session")
	}

	return c.Reply("🔄 New session started\n\n" + RenderSession(session))
}

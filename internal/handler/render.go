package handler

import (
	"fmt"
	"strings"

	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/model"
)

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// RenderCups renders an outcome slot by slot, e.g. "1: B  2: A  3: C".
func RenderCups(o cuporder.Outcome) string {
	slots := make([]string, len(o))
	for i, cup := range o {
		slots[i] = fmt.Sprintf("%d: %s", i+1, cup)
	}
	return strings.Join(slots, "  ")
}

// PairDirection phrases a two-cup bet as "X before Y".
func PairDirection(w cuporder.PairWager) string {
	first, second := w.Cups()
	if w.Prediction == cuporder.PredictSecond {
		first, second = second, first
	}
	return fmt.Sprintf("%s before %s", first, second)
}

// RenderBetSummary lists the three bets of a wager set with their multipliers.
func RenderBetSummary(w cuporder.WagerSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Exact (%g×): %s %s\n", cuporder.ExactMultiplier, w.Exact.Order, FormatMoney(w.Exact.Amount))
	fmt.Fprintf(&sb, "Two-Cup (%g×): %s %s\n", cuporder.PairMultiplier, PairDirection(w.Pair), FormatMoney(w.Pair.Amount))
	fmt.Fprintf(&sb, "Single (%g×): %s in position %d %s", cuporder.SingleMultiplier, w.Single.Cup, w.Single.Position, FormatMoney(w.Single.Amount))
	return sb.String()
}

// RenderResult renders a resolved round.
func RenderResult(r *cuporder.RoundResult) string {
	order := make([]string, len(r.Outcome))
	for i, cup := range r.Outcome {
		order[i] = cup.String()
	}

	var sb strings.Builder
	sb.WriteString("🥤 " + RenderCups(r.Outcome) + "\n\n")
	sb.WriteString(RenderBetSummary(r.Wagers) + "\n\n")
	fmt.Fprintf(&sb, "Round %d: order is %s. Stake %s, payout %s.\n",
		r.Round, strings.Join(order, ", "), FormatMoney(r.Stake), FormatMoney(r.Payout.Total))
	fmt.Fprintf(&sb, "Net: %s | New balance: %s", FormatMoney(r.Net), FormatMoney(r.Balance))
	return sb.String()
}

// RenderSession renders a player's balance and the round they are on.
func RenderSession(s *model.Session) string {
	return fmt.Sprintf("💰 Balance: %s\n🎯 Round: %d", FormatMoney(s.Balance), s.Round)
}

package cuporder

import (
	"fmt"
	"math"
	"strings"
)

// ValidateWagers checks the wager set against the structural rules and against
// balance. Rules are applied in a fixed order and the first failure is returned.
// It never mutates anything.
func ValidateWagers(w WagerSet, balance float64) error {
	if !IsValidOrder(w.Exact.Order) {
		return ErrInvalidExactOrder
	}

	if !isValidPair(w.Pair.Pair) {
		return ErrInvalidPair
	}

	if !w.Pair.Prediction.Valid() {
		return ErrInvalidPairPrediction
	}

	if !w.Single.Cup.Valid() {
		return ErrInvalidSingleCup
	}

	if w.Single.Position < 1 || w.Single.Position > 3 {
		return ErrInvalidSinglePosition
	}

	for _, amount := range []float64{w.Exact.Amount, w.Pair.Amount, w.Single.Amount} {
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			return ErrInvalidAmount
		}
	}

	stake := w.Stake()
	if stake <= 0 {
		return ErrNoActiveWager
	}

	if stake > balance {
		return fmt.Errorf("%w: stake %.2f, balance %.2f", ErrInsufficientBalance, stake, balance)
	}

	return nil
}

func isValidPair(pair string) bool {
	for _, p := range Pairs {
		if pair == p {
			return true
		}
	}
	return false
}

// ExactWins reports whether the outcome matches the target order slot for slot.
func ExactWins(outcome Outcome, order string) bool {
	return outcome.String() == strings.ToUpper(order)
}

// PairWins reports whether a two-cup prediction holds for the outcome.
// Direction is taken from the declared pair order, not the alphabet: for pair
// "AC", PredictFirst means A lands before C.
func PairWins(outcome Outcome, w PairWager) bool {
	first, second := w.Cups()
	firstBeforeSecond := outcome.Slot(first) < outcome.Slot(second)

	switch w.Prediction {
	case PredictFirst:
		return firstBeforeSecond
	case PredictSecond:
		return !firstBeforeSecond
	default:
		return false
	}
}

// SingleWins reports whether the cup occupies exactly the named slot.
func SingleWins(outcome Outcome, w SingleWager) bool {
	return outcome.Slot(w.Cup) == w.Position
}

// EvaluatePayout computes winnings for a wager set against a drawn outcome.
// It depends only on its arguments. Zero-amount and losing wagers contribute 0.
func EvaluatePayout(outcome Outcome, w WagerSet) Payout {
	var p Payout

	if w.Exact.Amount > 0 && ExactWins(outcome, w.Exact.Order) {
		p.Exact = w.Exact.Amount * ExactMultiplier
	}

	if w.Pair.Amount > 0 && PairWins(outcome, w.Pair) {
		p.Pair = w.Pair.Amount * PairMultiplier
	}

	if w.Single.Amount > 0 && SingleWins(outcome, w.Single) {
		p.Single = w.Single.Amount * SingleMultiplier
	}

	p.Total = p.Exact + p.Pair + p.Single
	return p
}
